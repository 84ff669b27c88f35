package roster

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsed birth years must land in [minYear, maxYear]. Numeric cells up to
// maxBareYear are read as bare years rather than spreadsheet serials.
const (
	minYear     = 1900
	maxYear     = 2025
	maxBareYear = 2100

	maxAge = 150
)

// Spreadsheet serial day-counts are relative to 1899-12-30 (the Lotus/Excel
// epoch including the phantom 1900 leap day).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var nowFunc = time.Now // mockable

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var (
	bareYearRegex  = regexp.MustCompile(`^\d{4}$`)
	monthNameRegex = regexp.MustCompile(`^(\d{1,2})[-/]([A-Za-z]+)[-/](\d{2}|\d{4})$`)
	dayFirstRegex  = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{2}|\d{4})$`)
	isoLikeRegex   = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
)

// textParsers are tried in order; the first match wins.
var textParsers = []func(string) (time.Time, bool){
	parseBareYear,
	parseMonthName,
	parseDayFirst,
	parseISOLike,
	parseGeneric,
}

// ParseDate converts a heterogeneous spreadsheet birth-date value into a
// calendar date. It accepts an already-structured time.Time, a numeric cell
// (bare year or serial day-count) or one of several text forms. Failure is
// soft: ok is false and no error is raised.
func ParseDate(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case float64:
		return parseNumeric(v)
	case float32:
		return parseNumeric(float64(v))
	case int:
		return parseNumeric(float64(v))
	case int64:
		return parseNumeric(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, parse := range textParsers {
			if t, ok := parse(s); ok {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Age derives a year-based age from a birth date. Day and month are ignored
// on purpose: rosters usually carry only the birth year reliably, and the
// downstream system groups by year anyway.
func Age(birth time.Time, referenceYear int) (int, bool) {
	age := referenceYear - birth.Year()
	if age < 0 || age > maxAge {
		return 0, false
	}
	return age, true
}

// CurrentYear is the default reference year for Age.
func CurrentYear() int {
	return nowFunc().Year()
}

// FormatDate renders a date as DD/MM/YYYY for record output.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// midYear anchors a bare year at July 1, minimizing the expected
// age-calculation error.
func midYear(year int) time.Time {
	return time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func parseNumeric(f float64) (time.Time, bool) {
	n := int(f)
	if n >= minYear && n <= maxBareYear {
		return midYear(n), true
	}
	// serial day-count
	t := serialEpoch.AddDate(0, 0, n)
	if t.Year() < minYear || t.Year() > maxYear {
		return time.Time{}, false
	}
	return t, true
}

func parseBareYear(s string) (time.Time, bool) {
	if !bareYearRegex.MatchString(s) {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(s)
	if year < minYear || year > maxYear {
		return time.Time{}, false
	}
	return midYear(year), true
}

func parseMonthName(s string) (time.Time, bool) {
	m := monthNameRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthNames[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	return makeDate(expandYear(m[3]), month, day)
}

func parseDayFirst(s string) (time.Time, bool) {
	m := dayFirstRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return makeDate(expandYear(m[3]), time.Month(month), day)
}

func parseISOLike(s string) (time.Time, bool) {
	m := isoLikeRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return makeDate(year, time.Month(month), day)
}

// parseGeneric is the last-resort attempt against common date-text layouts.
func parseGeneric(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
		"2 January 2006",
		"02.01.2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() < minYear || t.Year() > maxYear {
				return time.Time{}, false
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// expandYear maps 2-digit years: 00-30 to 2000s, 31-99 to 1900s.
func expandYear(s string) int {
	year, _ := strconv.Atoi(s)
	if len(s) == 4 {
		return year
	}
	if year <= 30 {
		return 2000 + year
	}
	return 1900 + year
}

// makeDate builds a date and rejects out-of-bound years and non-existent
// calendar days (time.Date would silently normalize 31/02 to 02/03).
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if year < minYear || year > maxYear {
		return time.Time{}, false
	}
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
