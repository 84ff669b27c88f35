package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/lophoc/roster/core"
	"github.com/lophoc/roster/core/roster"
	"github.com/lophoc/roster/services/spreadsheet"
)

var (
	readRosterFunc = spreadsheet.ReadFile // mockable
	initDBFunc     = initDB               // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf    *core.Config
	svc     *roster.Service
	mailSvc core.EmailService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  import -file FILE [-prefix PREFIX] [-dry-run] [-out DIR] [-email TO] - process a roster spreadsheet")
	fmt.Println("  initdb - create the database and apply migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "Path to the roster spreadsheet (.xlsx or .csv).")
	importPrefix := importCmd.String("prefix", "", "School prefix for generated usernames. Defaults to the configured one.")
	importDryRun := importCmd.Bool("dry-run", false, "Process the file without saving any record.")
	importOut := importCmd.String("out", "", "Directory to write students.csv and teachers.csv to.")
	importEmail := importCmd.String("email", "", "Send the batch report to this address.")

	switch args[1] {
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		if *importPrefix == "" && cli.conf.SchoolPrefix == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importRoster(*importFile, *importPrefix, *importDryRun, *importOut, *importEmail)
	case "initdb":
		return initDBFunc(cli.conf)
	default:
		cli.printUsage()
		return errHelp
	}
}
