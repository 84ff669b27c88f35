// Package roster turns raw spreadsheet rows into validated, conflict-free
// account records ready for provisioning.
package roster

// Row is one raw spreadsheet record. BirthDate may be a string, a numeric
// cell value (bare year or spreadsheet serial) or a time.Time; it may also
// be absent (nil).
type Row struct {
	FullName    string      `json:"full_name"`
	Grade       string      `json:"grade"`
	PhoneNumber string      `json:"phone_number"`
	BirthDate   interface{} `json:"birth_date,omitempty"`
}

// StudentRecord is a fully generated student account. Immutable once emitted.
type StudentRecord struct {
	FullName    string `json:"full_name"`
	Grade       string `json:"grade"` // trimmed, uppercased
	PhoneNumber string `json:"phone_number,omitempty"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"` // 4-digit numeric string
	ClassName   string `json:"class_name"`
	BirthDate   string `json:"birth_date,omitempty"` // DD/MM/YYYY
	Age         *int   `json:"age,omitempty"`        // whole years
	Warning     string `json:"warning,omitempty"`    // "; "-joined diagnostics
}

// TeacherRecord is a synthesized teacher account. One exists per distinct
// grade in a batch, plus exactly one general account with an empty Grade.
type TeacherRecord struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"` // == Username
	Password    string `json:"password"`
	Grade       string `json:"grade"` // "" for the general account
	ClassName   string `json:"class_name"`
	Warning     string `json:"warning,omitempty"`
}

// RowError reports a row that could not produce a record.
type RowError struct {
	Row     int    `json:"row"` // 1-based input index
	Message string `json:"message"`
}

// Batch is the result of processing a row list. Owned by the caller.
type Batch struct {
	ID       string          `json:"id"`
	Students []StudentRecord `json:"students"`
	Teachers []TeacherRecord `json:"teachers"`
	Errors   []RowError      `json:"errors"`
}
