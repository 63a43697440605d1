package main

import (
	"log"
	"os"

	"github.com/earlysignal/earlysignal/core"
	"github.com/earlysignal/earlysignal/core/prediction"
	"github.com/earlysignal/earlysignal/core/student"
	emailsvc "github.com/earlysignal/earlysignal/services/email"
	logsvc "github.com/earlysignal/earlysignal/services/logger"
	"github.com/earlysignal/earlysignal/storage/database/mongodb"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := mongodb.Open(conf)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
	defer db.Close()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	alerter := student.NewAlerter(mailSvc, conf.Debug || conf.SendgridApiKey != "", conf.AlertRecipient)
	engine := prediction.NewEngine(conf.ModelDir, logger)
	svc := student.NewService(mongodb.NewStudentRepository(db), engine, alerter, logger)

	// start CLI
	cli := commandLine{svc: svc}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
