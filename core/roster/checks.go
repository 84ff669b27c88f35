package roster

import (
	"fmt"
	"strings"
	"unicode"
)

// CheckKind classifies a field diagnostic. Required means the record cannot
// be produced at all; Format and Plausibility only annotate it for review.
type CheckKind int

const (
	KindRequired CheckKind = iota
	KindFormat
	KindPlausibility
)

// Check is one non-fatal field diagnostic attached to a record's warning.
type Check struct {
	Kind    CheckKind
	Field   string
	Message string
}

func (c Check) String() string { return c.Message }

// suspiciousAge flags students that look too old for a school roster.
const suspiciousAge = 16

// JoinChecks concatenates diagnostics into a single warning string.
func JoinChecks(checks []*Check) string {
	msgs := make([]string, 0, len(checks))
	for _, c := range checks {
		if c != nil {
			msgs = append(msgs, c.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// CheckFullName allows Unicode letters, digits and whitespace.
func CheckFullName(name string) *Check {
	return checkCharClass("full name", name, KindFormat, isUnicodeNameRune)
}

// CheckDisplayName applies the same character class as CheckFullName.
func CheckDisplayName(name string) *Check {
	return checkCharClass("display name", name, KindFormat, isUnicodeNameRune)
}

// CheckGrade allows ASCII letters and digits only.
func CheckGrade(grade string) *Check {
	return checkCharClass("grade", grade, KindFormat, isASCIIAlnumRune)
}

// CheckUsername allows ASCII letters and digits only.
func CheckUsername(username string) *Check {
	return checkCharClass("username", username, KindFormat, isASCIIAlnumRune)
}

// CheckClassName allows ASCII letters, digits and underscores.
func CheckClassName(className string) *Check {
	return checkCharClass("class name", className, KindFormat, func(r rune) bool {
		return isASCIIAlnumRune(r) || r == '_'
	})
}

// CheckBirthDate flags unparseable dates and implausibly high ages. A nil
// or empty value is fine: birth dates are optional.
func CheckBirthDate(value interface{}, referenceYear int) *Check {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	birth, ok := ParseDate(value)
	if !ok {
		return &Check{
			Kind:    KindFormat,
			Field:   "birth_date",
			Message: fmt.Sprintf("unrecognized birth date %q", fmt.Sprint(value)),
		}
	}
	if age, ok := Age(birth, referenceYear); ok && age >= suspiciousAge {
		return &Check{
			Kind:    KindPlausibility,
			Field:   "birth_date",
			Message: fmt.Sprintf("age %d looks too high for a student", age),
		}
	}
	return nil
}

// checkCharClass reports the unique offending characters of value, in input
// order. Empty values pass: required-ness is the batch processor's call.
func checkCharClass(field, value string, kind CheckKind, allowed func(rune) bool) *Check {
	var bad []rune
	seen := make(map[rune]bool)
	for _, r := range value {
		if !allowed(r) && !seen[r] {
			seen[r] = true
			bad = append(bad, r)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	quoted := make([]string, len(bad))
	for i, r := range bad {
		quoted[i] = fmt.Sprintf("%q", string(r))
	}
	return &Check{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf("%s contains invalid characters: %s", field, strings.Join(quoted, ", ")),
	}
}

func isUnicodeNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)
}

func isASCIIAlnumRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
