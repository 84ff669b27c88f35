package main

import (
	"github.com/lophoc/roster/core"
	"github.com/lophoc/roster/storage/database"
)

// initDB creates the database and its app user if needed, then applies the
// embedded migrations.
func initDB(conf *core.Config) error {
	if err := database.CreateIfNotExist(conf); err != nil {
		return err
	}
	db, err := database.Open(conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return database.Migrate(db)
}
