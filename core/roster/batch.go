package roster

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
)

// Two rows whose normalized names are at least this similar are flagged as
// possible duplicates for human review.
const duplicateNameRatio = 0.9

// Processor folds the normalization pipeline over a row list. Zero values
// for ClassYear and ReferenceYear mean "current calendar year".
type Processor struct {
	SchoolPrefix  string
	ClassYear     int
	ReferenceYear int
}

func NewProcessor(schoolPrefix string) *Processor {
	return &Processor{SchoolPrefix: schoolPrefix}
}

type seenName struct {
	norm string
	row  int
}

// Process converts rows into student and teacher records, resolving
// identifier conflicts against the supplied existing sets. Failures are
// per-row and never abort the batch; the result always carries exactly one
// general teacher account, even for empty input.
func (p *Processor) Process(rows []Row, existingUsernames, existingDisplayNames []string) Batch {
	batch := Batch{
		ID:       uuid.New().String(),
		Students: []StudentRecord{},
		Teachers: []TeacherRecord{},
		Errors:   []RowError{},
	}

	usernames := NewUsedSet(existingUsernames...)
	displayNames := NewUsedSet(existingDisplayNames...)

	classYear := p.ClassYear
	if classYear == 0 {
		classYear = CurrentYear()
	}
	refYear := p.ReferenceYear
	if refYear == 0 {
		refYear = CurrentYear()
	}

	gradeSeen := make(map[string]bool)
	var seen []seenName

	for i, row := range rows {
		rowNum := i + 1
		p.processRow(&batch, row, rowNum, usernames, displayNames, classYear, refYear, gradeSeen, &seen)
	}

	// the general school account, present regardless of input size
	general := p.newTeacher("", strings.ToUpper(p.SchoolPrefix), usernames, displayNames)
	batch.Teachers = append(batch.Teachers, general)

	return batch
}

// processRow runs steps 1-8 for a single row. Panics are caught at the row
// boundary and recorded as a RowError so the batch always completes.
func (p *Processor) processRow(
	batch *Batch,
	row Row,
	rowNum int,
	usernames, displayNames *UsedSet,
	classYear, refYear int,
	gradeSeen map[string]bool,
	seen *[]seenName,
) {
	defer func() {
		if r := recover(); r != nil {
			batch.Errors = append(batch.Errors, RowError{Row: rowNum, Message: fmt.Sprint(r)})
		}
	}()

	fullName := strings.TrimSpace(row.FullName)
	if fullName == "" {
		batch.Errors = append(batch.Errors, RowError{Row: rowNum, Message: "full name is required"})
		return
	}
	grade := strings.ToUpper(strings.TrimSpace(row.Grade))
	if grade == "" {
		batch.Errors = append(batch.Errors, RowError{Row: rowNum, Message: "grade is required"})
		return
	}

	username := usernames.Resolve(GenerateUsername(fullName, p.SchoolPrefix), usernameMaxLen)
	displayName := displayNames.Resolve(GenerateDisplayName(fullName), displayNameMaxLen)
	className := GenerateClassName(p.SchoolPrefix, grade, classYear)

	checks := []*Check{
		CheckFullName(fullName),
		CheckGrade(grade),
		CheckUsername(username),
		CheckClassName(className),
		CheckDisplayName(displayName),
		CheckBirthDate(row.BirthDate, refYear),
	}

	norm := strings.ToLower(Normalize(fullName))
	if dup := duplicateOf(norm, *seen); dup > 0 {
		checks = append(checks, &Check{
			Kind:    KindPlausibility,
			Field:   "full_name",
			Message: fmt.Sprintf("full name closely matches row %d, possible duplicate", dup),
		})
	}
	*seen = append(*seen, seenName{norm: norm, row: rowNum})

	rec := StudentRecord{
		FullName:    fullName,
		Grade:       grade,
		PhoneNumber: strings.TrimSpace(row.PhoneNumber),
		Username:    username,
		DisplayName: displayName,
		Password:    GeneratePassword(),
		ClassName:   className,
		Warning:     JoinChecks(checks),
	}
	if birth, ok := ParseDate(row.BirthDate); ok {
		rec.BirthDate = FormatDate(birth)
		if age, ok := Age(birth, refYear); ok {
			a := age
			rec.Age = &a
		}
	}
	batch.Students = append(batch.Students, rec)

	// first row of a grade creates its teacher; later rows do not
	if !gradeSeen[grade] {
		gradeSeen[grade] = true
		teacher := p.newTeacher(grade, GenerateClassName(p.SchoolPrefix, grade, classYear), usernames, displayNames)
		batch.Teachers = append(batch.Teachers, teacher)
	}
}

// newTeacher synthesizes a teacher account for a grade ("" for the general
// school account). The username doubles as the display name; both are
// registered in the shared used-sets.
func (p *Processor) newTeacher(grade, className string, usernames, displayNames *UsedSet) TeacherRecord {
	username := usernames.Resolve(TeacherUsername(p.SchoolPrefix, grade), usernameMaxLen)
	displayNames.Add(username)

	checks := []*Check{
		CheckUsername(username),
		CheckClassName(className),
	}
	return TeacherRecord{
		Username:    username,
		DisplayName: username,
		Password:    GeneratePassword(),
		Grade:       grade,
		ClassName:   className,
		Warning:     JoinChecks(checks),
	}
}

// duplicateOf returns the earlier row whose normalized name is close enough
// to norm, or 0 when there is none.
func duplicateOf(norm string, seen []seenName) int {
	chars := strings.Split(norm, "")
	for _, s := range seen {
		if s.norm == norm {
			return s.row
		}
		ratio := difflib.NewMatcher(chars, strings.Split(s.norm, "")).QuickRatio()
		if ratio >= duplicateNameRatio {
			return s.row
		}
	}
	return 0
}
