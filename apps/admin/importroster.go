package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lophoc/roster/core/roster"
)

func (cli *commandLine) importRoster(file, prefix string, dryRun bool, outDir, emailTo string) error {
	rows, err := readRosterFunc(file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var batch roster.Batch
	if dryRun {
		batch, err = cli.svc.Process(ctx, rows, prefix, nil, nil)
	} else {
		batch, err = cli.svc.ProcessAndSave(ctx, rows, prefix, nil, nil)
	}
	if err != nil {
		return err
	}

	fmt.Printf("batch %s: %d students, %d teachers, %d row errors\n",
		batch.ID, len(batch.Students), len(batch.Teachers), len(batch.Errors))
	for _, re := range batch.Errors {
		fmt.Printf("  row %d: %s\n", re.Row, re.Message)
	}

	if outDir != "" {
		if err = writeCSVs(batch, outDir); err != nil {
			return err
		}
	}

	if err = cli.svc.EmailReport(batch, emailTo); err != nil {
		return err
	}
	// sends are async; the process exits right after run() returns
	cli.mailSvc.Flush()
	return nil
}

// writeCSVs drops students.csv and teachers.csv into dir for manual review.
func writeCSVs(batch roster.Batch, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	students, err := roster.StudentsCSV(batch.Students)
	if err != nil {
		return err
	}
	teachers, err := roster.TeachersCSV(batch.Teachers)
	if err != nil {
		return err
	}
	if err = os.WriteFile(filepath.Join(dir, "students.csv"), students.Bytes(), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "teachers.csv"), teachers.Bytes(), 0o644)
}
