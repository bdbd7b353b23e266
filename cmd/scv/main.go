// Package main is the entry point for the scv application.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/asp2131/rusty-scv/internal/app"
	"github.com/asp2131/rusty-scv/internal/buildinfo"
	"github.com/asp2131/rusty-scv/internal/config"
	"github.com/asp2131/rusty-scv/internal/log"
	"github.com/asp2131/rusty-scv/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	// Data subcommands run on urfave/cli/v3 and are dispatched before
	// the TUI app sees the arguments.
	if handled, err := dispatchSubcommand(os.Args); handled {
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	urfavecli.VersionPrinter = func(c *urfavecli.Context) {
		fmt.Println(buildinfo.String())
	}

	cliApp := &urfavecli.App{
		Name:                 "scv",
		Usage:                "A TUI tool to track student GitHub activity",
		Version:              buildinfo.Version(),
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			completionCommand(),
		},

		Before: func(c *urfavecli.Context) error {
			// Handle early exit flags
			// Note: --version is handled automatically by urfave/cli
			if c.Bool("show-themes") {
				printThemes()
				os.Exit(0)
			}
			return nil
		},

		Action: runTUI,

		BashComplete: completeGlobalFlags,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(c *urfavecli.Context) error {
	// Set up debug logging before loading config
	if debugLog := c.String("debug-log"); debugLog != "" {
		if err := log.SetFile(debugLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", debugLog, err)
		}
	}

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// If debug log wasn't set via flag, check if it's in the config
	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			if err := log.SetFile(cfg.DebugLog); err != nil {
				fmt.Fprintf(os.Stderr, "Error opening debug log file from config %q: %v\n", cfg.DebugLog, err)
			}
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	} else {
		cfg.DebugLog = c.String("debug-log")
	}

	if err := applyThemeConfig(cfg, c.String("theme")); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	if err := applyDataDirConfig(cfg, c.String("data-dir")); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	if rate := c.Int("frame-rate"); rate != 0 {
		cfg.FrameRate = clampFrameRate(rate)
	}

	model := app.NewModel(cfg, c.String("config-file"))
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = log.Close()
		return err
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}

	return nil
}

// applyDataDirConfig overrides the data directory from the command line.
// The repos directory follows along when it was derived from the old
// data directory rather than set explicitly.
func applyDataDirConfig(cfg *config.AppConfig, dataDirFlag string) error {
	if dataDirFlag == "" {
		return nil
	}

	abs, err := filepath.Abs(dataDirFlag)
	if err != nil {
		return fmt.Errorf("error resolving data-dir: %w", err)
	}

	derivedRepos := filepath.Join(cfg.DataDir, "repos")
	cfg.DataDir = abs
	if cfg.ReposDir == derivedRepos {
		cfg.ReposDir = filepath.Join(abs, "repos")
	}
	return nil
}

// applyThemeConfig applies theme configuration from command line flag.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}

	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q", themeName)
	}

	cfg.Theme = normalized
	return nil
}

func clampFrameRate(rate int) int {
	if rate < config.MinFrameRate {
		return config.MinFrameRate
	}
	if rate > config.MaxFrameRate {
		return config.MaxFrameRate
	}
	return rate
}

// printThemes prints available UI themes.
func printThemes() {
	names := theme.AvailableThemes()
	sort.Strings(names)
	fmt.Println("Available themes:")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
}
