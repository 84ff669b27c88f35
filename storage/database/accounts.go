package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lophoc/roster/core/roster"
)

type AccountRepository struct {
	db *sqlx.DB
}

var _ roster.Repository = (*AccountRepository)(nil)

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// accountRow maps roster records onto the roster_account table.
type accountRow struct {
	BatchID     string      `db:"batch_id"`
	Kind        string      `db:"kind"`
	FullName    string      `db:"full_name"`
	Grade       string      `db:"grade"`
	PhoneNumber string      `db:"phone_number"`
	Username    string      `db:"username"`
	DisplayName string      `db:"display_name"`
	Password    string      `db:"password"`
	ClassName   string      `db:"class_name"`
	BirthDate   null.String `db:"birth_date"`
	Age         null.Int    `db:"age"`
	Warning     string      `db:"warning"`
}

const insertAccount = `
INSERT INTO roster_account
    (batch_id, kind, full_name, grade, phone_number, username, display_name, password, class_name, birth_date, age, warning)
VALUES
    (:batch_id, :kind, :full_name, :grade, :phone_number, :username, :display_name, :password, :class_name, :birth_date, :age, :warning)`

func (repo *AccountRepository) QueryUsedUsernames(ctx context.Context) ([]string, error) {
	var usernames []string
	err := repo.db.SelectContext(ctx, &usernames, "SELECT username FROM roster_account")
	return usernames, errors.Wrap(err, "querying used usernames")
}

func (repo *AccountRepository) QueryUsedDisplayNames(ctx context.Context) ([]string, error) {
	var displayNames []string
	err := repo.db.SelectContext(ctx, &displayNames, "SELECT display_name FROM roster_account")
	return displayNames, errors.Wrap(err, "querying used display names")
}

// SaveBatch persists every record of a batch in one transaction.
func (repo *AccountRepository) SaveBatch(ctx context.Context, batch roster.Batch) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range batch.Students {
		row := accountRow{
			BatchID:     batch.ID,
			Kind:        "student",
			FullName:    s.FullName,
			Grade:       s.Grade,
			PhoneNumber: s.PhoneNumber,
			Username:    s.Username,
			DisplayName: s.DisplayName,
			Password:    s.Password,
			ClassName:   s.ClassName,
			BirthDate:   null.NewString(s.BirthDate, s.BirthDate != ""),
			Warning:     s.Warning,
		}
		if s.Age != nil {
			row.Age = null.IntFrom(*s.Age)
		}
		if _, err = tx.NamedExecContext(ctx, insertAccount, row); err != nil {
			return errors.Wrapf(err, "saving student %s", s.Username)
		}
	}

	for _, t := range batch.Teachers {
		row := accountRow{
			BatchID:     batch.ID,
			Kind:        "teacher",
			Grade:       t.Grade,
			Username:    t.Username,
			DisplayName: t.DisplayName,
			Password:    t.Password,
			ClassName:   t.ClassName,
			Warning:     t.Warning,
		}
		if _, err = tx.NamedExecContext(ctx, insertAccount, row); err != nil {
			return errors.Wrapf(err, "saving teacher %s", t.Username)
		}
	}

	return errors.Wrap(tx.Commit(), "committing batch")
}
