package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/ids"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose         bool
	Format          string // "json" | "text"
	ConfigPath      string
	Database        string
	Driver          string
	MetricsTextfile string

	// Now, IDs and Getenv override the clock, the id generator and the
	// environment lookup (for testing). Nil means the real ones.
	Now    func() time.Time
	IDs    ids.Generator
	Getenv func(string) string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the researchhub CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "researchhub",
		Short: "ResearchHub - a personal research tracker",
		Long: `Track research projects, their tasks on a kanban board, and a reading list
of papers. Everything is stored in one local SQLite file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(opts, cmd)
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default <user config dir>/researchhub/config.yaml)")
	flags.StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config and RESEARCHHUB_DB)")
	flags.StringVar(&opts.Driver, "driver", "", "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
	flags.StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file on exit")

	cmd.AddCommand(NewProjectCommand(opts))
	cmd.AddCommand(NewTaskCommand(opts))
	cmd.AddCommand(NewPaperCommand(opts))
	cmd.AddCommand(NewBoardCommand(opts))
	cmd.AddCommand(NewDashboardCommand(opts))
	cmd.AddCommand(NewDeadlinesCommand(opts))
	cmd.AddCommand(NewChartCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewThemeCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))

	return cmd
}

// setupLogging installs a text handler on stderr, at debug level when
// --verbose is set.
func setupLogging(opts *RootOptions, cmd *cobra.Command) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
