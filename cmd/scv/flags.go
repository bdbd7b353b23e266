// Package main provides CLI flag definitions for scv.
package main

import (
	"fmt"

	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "Override the data directory",
		},
		&urfavecli.IntFlag{
			Name:  "frame-rate",
			Usage: "Override the render loop frame rate (ticks per second)",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.BoolFlag{
			Name:  "show-themes",
			Usage: "List available UI themes",
		},
	}
}

// completeGlobalFlags provides basic completion for global flags.
// Note: urfave/cli/v2 has limited flag completion support.
func completeGlobalFlags(c *urfavecli.Context) {
	if c.NArg() == 0 {
		for _, cmd := range c.App.Commands {
			fmt.Println(cmd.Name)
		}
		for _, name := range subcommandNames() {
			fmt.Println(name)
		}
	}
}
