package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/earlysignal/earlysignal/core/prediction"
	"github.com/earlysignal/earlysignal/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	svc *student.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  analyze - run risk analysis across all students")
	fmt.Println("  sendalerts -level LEVEL [-recipient EMAIL] - dispatch alerts for a risk tier")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	sendAlertsCmd := flag.NewFlagSet("sendalerts", flag.ExitOnError)
	sendAlertsLevel := sendAlertsCmd.String("level", "high", "The risk tier to alert on: low, medium or high.")
	sendAlertsRecipient := sendAlertsCmd.String("recipient", "", "Recipient inbox; defaults to the configured mentor address.")

	switch args[1] {
	case "analyze":
		return cli.analyze()
	case "sendalerts":
		if err := sendAlertsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.sendAlerts(*sendAlertsLevel, *sendAlertsRecipient)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) analyze() error {
	report, err := cli.svc.AnalyzeAll()
	if err != nil {
		return err
	}
	fmt.Printf("analyzed %d/%d students (%d failed)\n", report.Analyzed, report.Total, report.Failed)
	return nil
}

func (cli *commandLine) sendAlerts(level, recipient string) error {
	riskLevel, err := prediction.ParseRiskLevel(level)
	if err != nil {
		return err
	}

	results, err := cli.svc.SendAlerts(riskLevel, recipient)
	if err != nil {
		return err
	}
	var sent, skipped, failed int
	for _, res := range results {
		switch res.Status {
		case student.AlertSent:
			sent++
		case student.AlertSkipped:
			skipped++
		default:
			failed++
		}
	}
	fmt.Printf("alerts: %d sent, %d skipped, %d failed\n", sent, skipped, failed)
	return nil
}
