package roster

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	usernameMinLen    = 6
	usernameMaxLen    = 20
	displayNameMaxLen = 20

	// teacherMark sits between the school prefix and the grade in teacher
	// usernames ("gv" = giáo viên).
	teacherMark = "gv"
)

var randIntn = rand.Intn // mockable

func init() {
	rand.Seed(time.Now().UnixNano())
}

// GenerateUsername builds an ASCII username from a full name:
// prefix + last name + initials of the remaining words, lowercased.
// Short candidates absorb whole words from the back of the name before
// being zero-padded to 6; long ones are cut at 20.
func GenerateUsername(fullName, schoolPrefix string) string {
	words := strings.Fields(Normalize(fullName))
	if len(words) == 0 {
		return ""
	}
	lastName := words[len(words)-1]
	otherWords := words[:len(words)-1]

	// Each pass moves one word out of otherWords, so the loop terminates.
	for {
		var initials strings.Builder
		for _, w := range otherWords {
			initials.WriteString(string([]rune(w)[:1]))
		}
		candidate := strings.ToLower(schoolPrefix + lastName + initials.String())
		switch {
		case len(candidate) < usernameMinLen && len(otherWords) > 0:
			lastName = otherWords[len(otherWords)-1] + lastName
			otherWords = otherWords[:len(otherWords)-1]
		case len(candidate) < usernameMinLen:
			return candidate + strings.Repeat("0", usernameMinLen-len(candidate))
		case len(candidate) > usernameMaxLen:
			return candidate[:usernameMaxLen]
		default:
			return candidate
		}
	}
}

// GenerateDisplayName keeps the last two words of the full name with
// diacritics intact (the last word alone for one-word names). Results
// longer than 20 characters fall back to the final word, then to a hard
// cut.
func GenerateDisplayName(fullName string) string {
	words := strings.Fields(fullName)
	if len(words) == 0 {
		return ""
	}
	last := words[len(words)-1]
	name := last
	if len(words) >= 2 {
		name = words[len(words)-2] + " " + last
	}
	if runeLen(name) <= displayNameMaxLen {
		return name
	}
	if runeLen(last) <= displayNameMaxLen {
		return last
	}
	return string([]rune(last)[:displayNameMaxLen])
}

// GenerateClassName builds PREFIX_GRADE_YEAR, uppercased.
func GenerateClassName(schoolPrefix, grade string, year int) string {
	return strings.ToUpper(schoolPrefix + "_" + grade + "_" + strconv.Itoa(year))
}

// TeacherUsername builds the teacher account username for a grade; an
// empty grade yields the general school account.
func TeacherUsername(schoolPrefix, grade string) string {
	return strings.ToLower(schoolPrefix + teacherMark + grade)
}

// GeneratePassword returns a uniformly random 4-digit numeric string in
// [1000, 9999]; the range excludes leading zeros by construction.
func GeneratePassword() string {
	return strconv.Itoa(1000 + randIntn(9000))
}

func runeLen(s string) int {
	return len([]rune(s))
}
