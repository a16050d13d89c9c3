// Package main is the entry point for tactical, a stock buy-signal tool.
//
// It fetches fundamentals and daily prices from Alpha Vantage, derives RSI and
// recent performance, and applies a fixed threshold policy. Three commands
// share the same wiring:
//   - check: one evaluation, printed to stdout
//   - serve: HTTP API
//   - watch: cron-scheduled re-evaluation, logged
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "tactical"
	app.Usage = "decide whether now is a good time to buy a stock"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "debug, info, warn or error (overrides LOG_LEVEL)",
			EnvVar: "TACTICAL_LOG_LEVEL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "check",
			Usage:     "evaluate a symbol once and print the decision",
			ArgsUsage: "[SYMBOL]",
			Action:    checkAction,
		},
		{
			Name:   "serve",
			Usage:  "run the HTTP API",
			Action: serveAction,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port",
					Usage: "listen port (overrides GO_PORT)",
				},
			},
		},
		{
			Name:      "watch",
			Usage:     "re-evaluate a symbol on a cron schedule",
			ArgsUsage: "[SYMBOL]",
			Action:    watchAction,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "schedule",
					Usage: "cron schedule with seconds field (overrides TACTICAL_SCHEDULE)",
				},
				cli.BoolFlag{
					Name:  "now",
					Usage: "evaluate once immediately before waiting for the schedule",
				},
			},
		},
	}
	return app
}
