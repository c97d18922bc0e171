package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"webcron/internal/app"
	"webcron/internal/config"
)

var version = "dev"

func main() {
	cliApp := cli.App{
		Name:      "webcron",
		HelpName:  "webcron",
		Usage:     "fires HTTP requests on six-field cron schedules with second precision",
		UsageText: "webcron [command] [arguments...]",
		Version:   version,
		Flags:     runFlags,
		Action:    run,
		Commands: []cli.Command{
			{
				Name:   "run",
				Usage:  "run the scheduler (default command)",
				Action: run,
				Flags:  runFlags,
			},
			{
				Name:   "check",
				Usage:  "validate configuration and list the parsed jobs",
				Action: check,
				Flags:  runFlags,
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "webcron: %s\n", err)
		os.Exit(1)
	}
}

var runFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "path to YAML/JSON config file (SECRET and CRON_JOBS env override it)",
	},
}

func run(c *cli.Context) error {
	a, err := app.New(c.String("config"))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return a.Run(ctx)
}

func check(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	for _, j := range cfg.JobList {
		fmt.Printf("%-7s %s  [%s]", j.Method, j.URL, j.Schedule)
		if len(j.Headers) > 0 {
			fmt.Printf("  headers=%d", len(j.Headers))
		}
		if j.Body != "" {
			fmt.Printf("  body=%dB", len(j.Body))
		}
		fmt.Println()
	}
	fmt.Printf("configuration OK: %d job(s)\n", len(cfg.JobList))
	return nil
}
