// Package spreadsheet reads roster rows from XLSX and CSV files.
package spreadsheet

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/lophoc/roster/core/roster"
)

var ErrNoHeader = errors.New("no recognizable header row found")

// column identifies a roster field in the header row. Header cells are
// matched after diacritics stripping and lowercasing, so both "Họ và tên"
// and "Full Name" resolve to the name column.
type columns struct {
	name  int
	grade int
	phone int
	birth int
}

var (
	nameAliases  = []string{"name", "ten", "ho va ten", "hoten"}
	gradeAliases = []string{"grade", "class", "lop", "khoi"}
	phoneAliases = []string{"phone", "sdt", "dien thoai", "so dien thoai"}
	birthAliases = []string{"birth", "dob", "ngay sinh", "namsinh", "nam sinh"}
)

// ReadFile loads roster rows from path, dispatching on the file extension.
func ReadFile(path string) ([]roster.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening roster file")
	}
	defer func() { _ = f.Close() }()

	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return ReadCSV(f)
	}
	return ReadXLSX(f)
}

// ReadXLSX reads the first sheet of an XLSX workbook.
func ReadXLSX(r io.Reader) ([]roster.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "reading sheet")
	}
	return fromRecords(records)
}

// ReadCSV reads comma-separated roster rows.
func ReadCSV(r io.Reader) ([]roster.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rosters are ragged in practice
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV")
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) ([]roster.Row, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	cols, ok := matchHeader(records[0])
	if !ok {
		return nil, ErrNoHeader
	}

	rows := make([]roster.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := roster.Row{
			FullName: cell(rec, cols.name),
			Grade:    cell(rec, cols.grade),
		}
		if cols.phone >= 0 {
			row.PhoneNumber = cell(rec, cols.phone)
		}
		if cols.birth >= 0 {
			row.BirthDate = birthValue(cell(rec, cols.birth))
		}
		if row.FullName == "" && row.Grade == "" && row.PhoneNumber == "" && row.BirthDate == nil {
			continue // trailing blank line
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// matchHeader locates the roster columns; name and grade are mandatory.
func matchHeader(header []string) (columns, bool) {
	cols := columns{name: -1, grade: -1, phone: -1, birth: -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(roster.Normalize(h)))
		switch {
		case cols.name < 0 && matchesAny(key, nameAliases):
			cols.name = i
		case cols.grade < 0 && matchesAny(key, gradeAliases):
			cols.grade = i
		case cols.phone < 0 && matchesAny(key, phoneAliases):
			cols.phone = i
		case cols.birth < 0 && matchesAny(key, birthAliases):
			cols.birth = i
		}
	}
	return cols, cols.name >= 0 && cols.grade >= 0
}

func matchesAny(key string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(key, alias) {
			return true
		}
	}
	return false
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// birthValue forwards numeric-looking cells as numbers so spreadsheet
// serial dates and bare years reach the right parser branch.
func birthValue(s string) interface{} {
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
