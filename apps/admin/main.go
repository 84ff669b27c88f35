package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lophoc/roster/core"
	"github.com/lophoc/roster/core/roster"
	emailsvc "github.com/lophoc/roster/services/email"
	logsvc "github.com/lophoc/roster/services/logger"
	"github.com/lophoc/roster/storage/database"
	"github.com/lophoc/roster/storage/database/inmem"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()
	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
		logger.Enable(!conf.Debug)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// use the database when an app user is configured; otherwise keep
	// everything in memory (dry local runs)
	var repo roster.Repository
	if conf.Database.User != "" {
		db, err := database.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
		}
		defer func() { _ = db.Close() }()
		repo = database.NewAccountRepository(db)
	} else {
		repo = inmem.NewAccountRepository()
	}

	cli := commandLine{
		conf:    conf,
		svc:     roster.NewService(repo, mailSvc, conf, logger),
		mailSvc: mailSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
