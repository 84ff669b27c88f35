package roster

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   time.Time
		wantOK bool
	}{
		{name: "nil", value: nil},
		{name: "structured date", value: date(2015, time.April, 6), want: date(2015, time.April, 6), wantOK: true},
		{name: "zero time rejected", value: time.Time{}},

		// numeric cells
		{name: "numeric bare year", value: 2018, want: midYear(2018), wantOK: true},
		{name: "numeric bare year float", value: float64(1995), want: midYear(1995), wantOK: true},
		{name: "serial day count", value: 43608, want: date(2019, time.May, 23), wantOK: true},
		{name: "serial float", value: float64(43608), want: date(2019, time.May, 23), wantOK: true},
		{name: "serial below epoch bound", value: -10},

		// text: bare year
		{name: "text year", value: "2018", want: midYear(2018), wantOK: true},
		{name: "text year too old", value: "1899"},
		{name: "text year too new", value: "2026"},

		// text: day-monthname-year
		{name: "D-Mon-YY", value: "23-May-19", want: date(2019, time.May, 23), wantOK: true},
		{name: "D-Mon-YY late century", value: "23-May-95", want: date(1995, time.May, 23), wantOK: true},
		{name: "D-Mon-YYYY", value: "5-Dec-2007", want: date(2007, time.December, 5), wantOK: true},
		{name: "month name case-insensitive", value: "1/JAN/05", want: date(2005, time.January, 1), wantOK: true},
		{name: "full month name", value: "14-august-2010", want: date(2010, time.August, 14), wantOK: true},
		{name: "unknown month name", value: "14-lun-2010"},

		// text: day-first numeric
		{name: "D/M/YYYY is day first", value: "6/4/2015", want: date(2015, time.April, 6), wantOK: true},
		{name: "D-M-YY", value: "6-4-15", want: date(2015, time.April, 6), wantOK: true},
		{name: "two digit year 30 maps to 2030", value: "1/2/30", want: date(2030, time.February, 1), wantOK: true},
		{name: "two digit year 31 maps to 1931", value: "1/2/31", want: date(1931, time.February, 1), wantOK: true},
		{name: "nonexistent day", value: "31/2/2001"},
		{name: "month out of range", value: "6/13/2015"},

		// text: ISO-like
		{name: "ISO dashes", value: "2015-04-06", want: date(2015, time.April, 6), wantOK: true},
		{name: "ISO slashes", value: "2015/4/6", want: date(2015, time.April, 6), wantOK: true},
		{name: "ISO out of bound", value: "2030-01-01"},

		// generic fallback
		{name: "generic layout", value: "Jan 2, 2006", want: date(2006, time.January, 2), wantOK: true},
		{name: "garbage", value: "not a date"},
		{name: "blank", value: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%v) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name    string
		birth   time.Time
		refYear int
		want    int
		wantOK  bool
	}{
		{name: "simple", birth: date(2015, time.April, 6), refYear: 2024, want: 9, wantOK: true},
		{name: "born this year", birth: date(2024, time.March, 1), refYear: 2024, want: 0, wantOK: true},
		{name: "future birth rejected", birth: date(2025, time.January, 1), refYear: 2024},
		{name: "absurdly old rejected", birth: date(1850, time.January, 1), refYear: 2024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Age(tt.birth, tt.refYear)
			if ok != tt.wantOK {
				t.Fatalf("Age() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Age is year-based on purpose: day and month never shift the result.
func TestAgeIgnoresMonthAndDay(t *testing.T) {
	jan, _ := Age(date(2010, time.January, 1), 2024)
	dec, _ := Age(date(2010, time.December, 31), 2024)
	if jan != dec {
		t.Errorf("same birth year gave different ages: %d vs %d", jan, dec)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(date(2019, time.May, 23)); got != "23/05/2019" {
		t.Errorf("FormatDate() = %q, want %q", got, "23/05/2019")
	}
}
