package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/query"
)

// paperFlags are shared by paper add and paper edit.
type paperFlags struct {
	title, authors, year, tags, link, notes string
	rating                                  int
}

func (pf *paperFlags) register(cmd *cobra.Command, edit bool) {
	flags := cmd.Flags()
	if edit {
		flags.StringVar(&pf.title, "title", "", "new title")
	}
	flags.StringVar(&pf.authors, "authors", "", "author list")
	flags.StringVar(&pf.year, "year", "", "publication year")
	flags.IntVar(&pf.rating, "rating", 0, "rating from 1 to 5 (default 3 on add)")
	flags.StringVar(&pf.tags, "tags", "", "comma separated tags")
	flags.StringVar(&pf.link, "link", "", "URL or DOI")
	flags.StringVar(&pf.notes, "notes", "", "free-form notes")
}

// ratingFlag rejects an explicit --rating 0, which would otherwise read as
// "not given".
func ratingFlag(cmd *cobra.Command, rating int) error {
	if cmd.Flags().Changed("rating") && rating == 0 {
		return model.NewValidationError("rating",
			fmt.Sprintf("rating %d is outside %d-%d", rating, model.MinRating, model.MaxRating))
	}
	return nil
}

// NewPaperCommand creates the paper command group.
func NewPaperCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paper",
		Short: "Manage the reading list",
	}
	cmd.AddCommand(newPaperAddCommand(rootOpts))
	cmd.AddCommand(newPaperEditCommand(rootOpts))
	cmd.AddCommand(newPaperRmCommand(rootOpts))
	cmd.AddCommand(newPaperLsCommand(rootOpts))
	cmd.AddCommand(newPaperCiteCommand(rootOpts))
	return cmd
}

func newPaperAddCommand(rootOpts *RootOptions) *cobra.Command {
	pf := &paperFlags{}
	cmd := &cobra.Command{
		Use:     "add <title>",
		Short:   "Add a paper",
		Example: `  researchhub paper add "Attention Is All You Need" --authors "Vaswani et al." --year 2017 --rating 5 --tags AI,NLP`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				if err := ratingFlag(cmd, pf.rating); err != nil {
					return a.out.Fail(err)
				}
				created, err := a.hub.CreatePaper(cmd.Context(), model.Paper{
					Title:   args[0],
					Authors: pf.authors,
					Year:    pf.year,
					Rating:  pf.rating,
					Tags:    model.ParseTags(pf.tags),
					Link:    pf.link,
					Notes:   pf.notes,
				})
				if err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Added paper %s: %s\n", created.ID, created.Title)
					return err
				})
			})
		},
	}
	pf.register(cmd, false)
	return cmd
}

func newPaperEditCommand(rootOpts *RootOptions) *cobra.Command {
	pf := &paperFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				if err := ratingFlag(cmd, pf.rating); err != nil {
					return a.out.Fail(err)
				}
				var f model.PaperFields
				flags := cmd.Flags()
				if flags.Changed("title") {
					f.Title = &pf.title
				}
				if flags.Changed("authors") {
					f.Authors = &pf.authors
				}
				if flags.Changed("year") {
					f.Year = &pf.year
				}
				if flags.Changed("rating") {
					f.Rating = &pf.rating
				}
				if flags.Changed("tags") {
					f.Tags = model.Ptr(model.ParseTags(pf.tags))
				}
				if flags.Changed("link") {
					f.Link = &pf.link
				}
				if flags.Changed("notes") {
					f.Notes = &pf.notes
				}
				updated, err := a.hub.UpdatePaper(cmd.Context(), args[0], f)
				if err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(updated, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Updated paper %s: %s\n", updated.ID, updated.Title)
					return err
				})
			})
		},
	}
	pf.register(cmd, true)
	return cmd
}

func newPaperRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				if err := a.hub.DeletePaper(cmd.Context(), args[0]); err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(map[string]string{"id": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted paper %s\n", args[0])
					return err
				})
			})
		},
	}
}

func newPaperLsCommand(rootOpts *RootOptions) *cobra.Command {
	var search string
	var minRating int
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List papers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				doc, err := a.hub.Load(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				papers := query.SearchPapers(doc.Papers, search, minRating)
				return a.out.Result(papers, func(w io.Writer) error {
					return writePapers(w, papers)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title, authors or tags (case-insensitive)")
	cmd.Flags().IntVar(&minRating, "min-rating", 0, "only papers rated at least this (0 = any)")
	return cmd
}

func writePapers(w io.Writer, papers []model.Paper) error {
	if len(papers) == 0 {
		_, err := fmt.Fprintln(w, "No papers.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHORS\tYEAR\tRATING\tTAGS")
	for _, p := range papers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, orDash(p.Authors), orDash(p.Year), stars(p.Rating), orDash(strings.Join(p.Tags, ", ")))
	}
	return tw.Flush()
}

// stars renders a rating as filled and empty stars.
func stars(rating int) string {
	rating = min(max(rating, 0), model.MaxRating)
	return strings.Repeat("\u2605", rating) + strings.Repeat("\u2606", model.MaxRating-rating)
}

func newPaperCiteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cite <id>",
		Short: "Print the citation line of a paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				doc, err := a.hub.Load(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				i := doc.PaperIndex(args[0])
				if i < 0 {
					return a.out.Fail(model.NewNotFoundError(model.KindPaper, args[0]))
				}
				citation := doc.Papers[i].Citation()
				return a.out.Result(map[string]string{"id": args[0], "citation": citation}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, citation)
					return err
				})
			})
		},
	}
}
