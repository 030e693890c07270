package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mchevalier/stagetrack/internal/config"
	"github.com/mchevalier/stagetrack/internal/derive"
	"github.com/mchevalier/stagetrack/internal/export"
	"github.com/mchevalier/stagetrack/internal/prefs"
	"github.com/mchevalier/stagetrack/internal/repo"
	"github.com/mchevalier/stagetrack/internal/store"
	"github.com/mchevalier/stagetrack/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	// Global flags
	dbPath  string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "stagetrack",
	Short:   "Suivi des stagiaires et de leurs tâches, dans le terminal",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive UI owns the terminal, so it runs without a logger.
		if cmd.Parent() == nil {
			return nil
		}
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		app := ui.NewApp(repo.New(s), prefs.New(s))
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run application: %w", err)
		}
		return nil
	},
}

var (
	exportTrack  string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporte la liste des stagiaires au format CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		repos := repo.New(s)

		interns, err := repos.Interns.List()
		if err != nil {
			return err
		}
		tasks, err := repos.Tasks.List()
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := export.WriteRoster(out, interns, tasks, exportTrack); err != nil {
			return err
		}
		logger.Info("roster exported",
			zap.Int("interns", len(interns)),
			zap.String("track", exportTrack),
			zap.String("output", exportOutput))
		return nil
	},
}

var listSearch string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Affiche les stagiaires ou les tâches",
}

var listInternsCmd = &cobra.Command{
	Use:   "interns",
	Short: "Affiche la liste des stagiaires",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		interns, err := repo.New(s).Interns.List()
		if err != nil {
			return err
		}
		interns = derive.SearchInterns(interns, listSearch)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NOM\tFILIÈRE\tEMAIL\tPÉRIODE")
		for _, i := range interns {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s → %s\n",
				i.FullName(), i.Track, i.Email, i.StartDate, i.EndDate)
		}
		return w.Flush()
	},
}

var listTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Affiche la liste des tâches",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		tasks, err := repo.New(s).Tasks.List()
		if err != nil {
			return err
		}
		tasks = derive.SearchTasks(tasks, listSearch)
		tasks = derive.SortTasks(tasks, derive.SortByDate)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITRE\tSTATUT\tÉCHÉANCE")
		for _, t := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Title, t.Status, t.DueDate)
		}
		return w.Flush()
	},
}

// openStore resolves the database path from flags, environment and defaults,
// then opens it and runs pending migrations.
func openStore() (*store.SQLite, error) {
	path := dbPath
	if path == "" {
		path = config.Load().DBPath
	}
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}
	return store.Open(path)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "chemin du fichier de base de données")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "journalisation détaillée")

	exportCmd.Flags().StringVar(&exportTrack, "track", "", "ne garder qu'une filière")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "fichier de sortie (défaut: stdout)")

	listCmd.PersistentFlags().StringVar(&listSearch, "search", "", "filtre de recherche")
	listCmd.AddCommand(listInternsCmd, listTasksCmd)

	rootCmd.AddCommand(exportCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
