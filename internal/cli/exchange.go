package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/codec"
	"github.com/roach88/researchhub/internal/confirm"
	"github.com/roach88/researchhub/internal/model"
)

// Counts summarizes a document.
type Counts struct {
	Projects int `json:"projects"`
	Tasks    int `json:"tasks"`
	Papers   int `json:"papers"`
}

func countsOf(doc model.Document) Counts {
	return Counts{Projects: len(doc.Projects), Tasks: len(doc.Tasks), Papers: len(doc.Papers)}
}

func (c Counts) String() string {
	return fmt.Sprintf("%d project(s), %d task(s), %d paper(s)", c.Projects, c.Tasks, c.Papers)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the whole document as JSON",
		Long: `Write the whole document as indented JSON. The file defaults to
export_file from the config (researchhub_export.json); "-" writes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				path := a.cfg.ExportFile
				if len(args) == 1 {
					path = args[0]
				}
				data, err := a.hub.Export(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				if path == "-" {
					_, err := a.out.Writer.Write(data)
					return err
				}
				if err := codec.WriteFileAtomic(path, data, 0o644); err != nil {
					return a.out.FailWith(ExitCommandError, ErrCodeWriteFailed, fmt.Errorf("writing export: %w", err))
				}
				a.out.VerboseLog("wrote %s to %s", humanize.Bytes(uint64(len(data))), path)
				return a.out.Result(map[string]any{"file": path, "bytes": len(data)}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Exported to %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
					return err
				})
			})
		},
	}
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole document with an exported file",
		Long: `Replace the whole document with the contents of an exported JSON file.
A file that is not a valid export leaves the current data untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				data, err := os.ReadFile(args[0])
				if errors.Is(err, fs.ErrNotExist) {
					return a.out.FailWith(ExitCommandError, ErrCodeNotFound, fmt.Errorf("import file not found: %s", args[0]))
				}
				if err != nil {
					return a.out.FailWith(ExitCommandError, ErrCodeGeneric, fmt.Errorf("reading import file: %w", err))
				}
				doc, err := a.hub.Import(cmd.Context(), data)
				if err != nil {
					return a.out.Fail(err)
				}
				counts := countsOf(doc)
				return a.out.Result(counts, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Imported %s\n", counts)
					return err
				})
			})
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase every project, task and paper",
		Long: `Erase every project, task and paper and start from an empty document.
Asks for confirmation on a terminal; elsewhere --yes is required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				req := confirm.New("reset", "Erase all projects, tasks and papers?")
				switch {
				case yes:
					req.Approve()
				case isInteractive(cmd.InOrStdin()):
					if err := confirm.Ask(req, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
						return a.out.FailWith(ExitCommandError, ErrCodeGeneric, err)
					}
				default:
					a.out.VerboseLog("stdin is not a terminal; pass --yes to reset")
					req.Deny()
				}

				var doc model.Document
				err := req.Run(func() error {
					var err error
					doc, err = a.hub.ResetAll(cmd.Context())
					return err
				})
				if err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(map[string]string{"createdAt": doc.Meta.CreatedAt}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, "All data erased.")
					return err
				})
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// isInteractive reports whether r can answer a prompt: a terminal, or any
// reader that is not a file at all.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into an empty document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				seeded, err := a.hub.Seed(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				doc, err := a.hub.Load(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				counts := countsOf(doc)
				data := map[string]any{"seeded": seeded, "counts": counts}
				return a.out.Result(data, func(w io.Writer) error {
					if !seeded {
						_, err := fmt.Fprintf(w, "Document already holds %s; nothing seeded.\n", counts)
						return err
					}
					_, err := fmt.Fprintf(w, "Loaded demo data: %s\n", counts)
					return err
				})
			})
		},
	}
}
