package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lophoc/roster/core"
)

// StudentsCSV renders the student records of a batch for review, one line
// per account in input order.
func StudentsCSV(students []StudentRecord) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := []string{"full_name", "grade", "phone_number", "username", "display_name", "password", "class_name", "birth_date", "age", "warning"}
	if err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, "writing students CSV header")
	}
	for _, s := range students {
		age := ""
		if s.Age != nil {
			age = strconv.Itoa(*s.Age)
		}
		rec := []string{s.FullName, s.Grade, s.PhoneNumber, s.Username, s.DisplayName, s.Password, s.ClassName, s.BirthDate, age, s.Warning}
		if err := w.Write(rec); err != nil {
			return nil, errors.Wrap(err, "writing students CSV")
		}
	}
	w.Flush()
	return buf, w.Error()
}

// TeachersCSV renders the teacher records of a batch.
func TeachersCSV(teachers []TeacherRecord) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := []string{"username", "display_name", "password", "grade", "class_name", "warning"}
	if err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, "writing teachers CSV header")
	}
	for _, t := range teachers {
		rec := []string{t.Username, t.DisplayName, t.Password, t.Grade, t.ClassName, t.Warning}
		if err := w.Write(rec); err != nil {
			return nil, errors.Wrap(err, "writing teachers CSV")
		}
	}
	w.Flush()
	return buf, w.Error()
}

// ReportMessage builds the batch summary email with both CSVs attached.
func ReportMessage(batch Batch, to mail.Address) (*core.EmailMessage, error) {
	studentsCSV, err := StudentsCSV(batch.Students)
	if err != nil {
		return nil, err
	}
	teachersCSV, err := TeachersCSV(batch.Teachers)
	if err != nil {
		return nil, err
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Batch %s processed.\n\n", batch.ID)
	fmt.Fprintf(&body, "Students: %d\n", len(batch.Students))
	fmt.Fprintf(&body, "Teachers: %d\n", len(batch.Teachers))
	fmt.Fprintf(&body, "Row errors: %d\n", len(batch.Errors))
	if len(batch.Errors) > 0 {
		body.WriteString("\nRows needing attention:\n")
		for _, re := range batch.Errors {
			fmt.Fprintf(&body, "  row %d: %s\n", re.Row, re.Message)
		}
	}

	return &core.EmailMessage{
		To:      []mail.Address{to},
		Subject: fmt.Sprintf("Roster batch %s", batch.ID),
		BodyStr: body.String(),
		Attachments: []core.Attachment{
			{Content: studentsCSV, ContentType: "text/csv", Filename: "students.csv"},
			{Content: teachersCSV, ContentType: "text/csv", Filename: "teachers.csv"},
		},
	}, nil
}
