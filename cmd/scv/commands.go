// Package main provides CLI command definitions for scv.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/asp2131/rusty-scv/internal/config"
	"github.com/asp2131/rusty-scv/internal/export"
	"github.com/asp2131/rusty-scv/internal/github"
	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/store"
	appiCli "github.com/urfave/cli/v3"
)

// subcommandNames lists the subcommands handled by the cli/v3 dispatcher.
func subcommandNames() []string {
	return []string{"classes", "ls", "export"}
}

// dispatchSubcommand runs the data subcommands when the first argument
// names one. Returns false when the arguments belong to the TUI app.
func dispatchSubcommand(args []string) (bool, error) {
	if len(args) < 2 || !slices.Contains(subcommandNames(), args[1]) {
		return false, nil
	}

	root := &appiCli.Command{
		Name:  "scv",
		Usage: "A TUI tool to track student GitHub activity",
		Commands: []*appiCli.Command{
			classesCommand(),
			exportCommand(),
		},
	}
	return true, root.Run(context.Background(), args)
}

// dataFlags are the global flags shared by the data subcommands.
func dataFlags() []appiCli.Flag {
	return []appiCli.Flag{
		&appiCli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&appiCli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "Override the data directory",
		},
	}
}

func classesCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:    "classes",
		Aliases: []string{"ls"},
		Usage:   "List classes and their rosters",
		Action: func(ctx context.Context, cmd *appiCli.Command) error {
			return handleClassesAction(ctx, cmd)
		},
		Flags: append(dataFlags(),
			&appiCli.BoolFlag{
				Name:    "pristine",
				Aliases: []string{"p"},
				Usage:   "Output class names only (one per line, suitable for scripting)",
			},
			&appiCli.BoolFlag{
				Name:    "students",
				Aliases: []string{"s"},
				Usage:   "Include the student roster for each class",
			},
			&appiCli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		),
	}
}

func exportCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:      "export",
		Usage:     "Export week activity for a class to an Excel file",
		ArgsUsage: "<class-name>",
		Action: func(ctx context.Context, cmd *appiCli.Command) error {
			return handleExportAction(ctx, cmd)
		},
		Flags: append(dataFlags(),
			&appiCli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to {data-dir}/{class}-activity.xlsx)",
			},
		),
	}
}

// loadCLIConfig loads the application configuration for CLI mode.
func loadCLIConfig(cmd *appiCli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if err := applyDataDirConfig(cfg, cmd.String("data-dir")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateClassesFlags(cmd *appiCli.Command) error {
	pristine := cmd.Bool("pristine")
	if pristine && cmd.Bool("json") {
		return fmt.Errorf("--pristine and --json are mutually exclusive")
	}
	if pristine && cmd.Bool("students") {
		return fmt.Errorf("--pristine and --students are mutually exclusive")
	}
	return nil
}

// classJSON represents the JSON output format for a class.
type classJSON struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Students  int      `json:"students"`
	CreatedAt string   `json:"created_at"`
	Roster    []string `json:"roster,omitempty"`
}

func handleClassesAction(_ context.Context, cmd *appiCli.Command) error {
	if err := validateClassesFlags(cmd); err != nil {
		return err
	}
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(cfg.DataDir)
	classes, err := st.ListClasses()
	if err != nil {
		return err
	}

	if cmd.Bool("pristine") {
		for _, class := range classes {
			fmt.Println(class.Name)
		}
		return nil
	}

	withStudents := cmd.Bool("students")
	rosters := make(map[int64][]models.Student, len(classes))
	for _, class := range classes {
		students, err := st.ListStudents(class.ID)
		if err != nil {
			return err
		}
		rosters[class.ID] = students
	}

	if cmd.Bool("json") {
		return outputClassesJSON(classes, rosters, withStudents)
	}
	return outputClassesTable(classes, rosters, withStudents)
}

func outputClassesJSON(classes []models.Class, rosters map[int64][]models.Student, withStudents bool) error {
	output := make([]classJSON, 0, len(classes))
	for _, class := range classes {
		entry := classJSON{
			ID:        class.ID,
			Name:      class.Name,
			Students:  len(rosters[class.ID]),
			CreatedAt: class.CreatedAt.Format(time.RFC3339),
		}
		if withStudents {
			for _, student := range rosters[class.ID] {
				entry.Roster = append(entry.Roster, student.Username)
			}
		}
		output = append(output, entry)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputClassesTable(classes []models.Class, rosters map[int64][]models.Student, withStudents bool) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTUDENTS\tCREATED")
	for _, class := range classes {
		roster := rosters[class.ID]
		fmt.Fprintf(w, "%s\t%d\t%s\n", class.Name, len(roster), class.CreatedAt.Format("2006-01-02"))
		if withStudents {
			for _, student := range roster {
				fmt.Fprintf(w, "  %s\t%s\t\n", student.Username, student.RepoName())
			}
		}
	}
	return w.Flush()
}

func handleExportAction(ctx context.Context, cmd *appiCli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("usage: scv export <class-name> [--out FILE]")
	}
	className := cmd.Args().Get(0)

	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(cfg.DataDir)
	class, err := findClassByName(st, className)
	if err != nil {
		return err
	}

	students, err := st.ListStudents(class.ID)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		return fmt.Errorf("class %q has no students", class.Name)
	}

	now := time.Now()
	days := make([]string, 0, 5)
	for _, day := range github.PastWeekdays(now, 5) {
		days = append(days, github.WeekdayLabel(day))
	}

	gh := github.NewClient(config.ResolveGitHubToken(cfg))
	activities := make([]models.WeekActivity, 0, len(students))
	for _, student := range students {
		activities = append(activities, gh.WeekActivity(ctx, student, now))
	}

	var path string
	if out := cmd.String("out"); out != "" {
		if err := export.WriteWeekActivityFile(out, class.Name, days, activities); err != nil {
			return err
		}
		path = out
	} else {
		path, err = export.WriteWeekActivity(class.Name, days, activities, cfg.DataDir)
		if err != nil {
			return err
		}
	}

	fmt.Println(path)
	return nil
}

func findClassByName(st *store.Store, name string) (*models.Class, error) {
	classes, err := st.ListClasses()
	if err != nil {
		return nil, err
	}
	for _, class := range classes {
		if strings.EqualFold(class.Name, name) {
			return &class, nil
		}
	}
	return nil, fmt.Errorf("class %q not found", name)
}
