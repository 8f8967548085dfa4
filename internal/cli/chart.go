package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/chart"
	"github.com/roach88/researchhub/internal/codec"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/stats"
)

// textBarWidth is the longest bar drawn by the terminal chart.
const textBarWidth = 30

// ChartView is the JSON shape of the chart commands.
type ChartView struct {
	Series []chart.Item `json:"series"`
	Bars   []chart.Bar  `json:"bars"`
	SVG    string       `json:"svg_file,omitempty"`
}

type chartOptions struct {
	svgPath string
	width   float64
	height  float64
}

// NewChartCommand creates the chart command group.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	co := &chartOptions{}
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the dashboard bar charts",
		Long: `Draw a dashboard bar chart in the terminal, or as an SVG file with --svg.
The SVG uses the current theme (see "researchhub theme").`,
	}
	cmd.PersistentFlags().StringVar(&co.svgPath, "svg", "", "write the chart as SVG to this file")
	cmd.PersistentFlags().Float64Var(&co.width, "width", 0, "SVG width in pixels (default from config)")
	cmd.PersistentFlags().Float64Var(&co.height, "height", 0, "SVG height in pixels (default from config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "tasks",
		Short: "Tasks per kanban column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(rootOpts, co, cmd, stats.StatusDistribution, false)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "projects",
		Short: "Completion percentage per project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(rootOpts, co, cmd, stats.ProgressSeries, true)
		},
	})
	return cmd
}

func runChart(opts *RootOptions, co *chartOptions, cmd *cobra.Command, series func(model.Document) []chart.Item, percent bool) error {
	return withApp(opts, cmd, func(a *app) error {
		doc, err := a.hub.Load(cmd.Context())
		if err != nil {
			return a.out.Fail(err)
		}

		width, height := a.cfg.Chart.Width, a.cfg.Chart.Height
		if co.width > 0 {
			width = co.width
		}
		if co.height > 0 {
			height = co.height
		}

		items := series(doc)
		view := ChartView{Series: items, Bars: chart.LayoutBars(items, width, height)}

		if co.svgPath != "" {
			theme, err := a.prefs.Theme(cmd.Context())
			if err != nil {
				return a.out.Fail(err)
			}
			svg := chart.RenderSVG(view.Bars, chart.Options{
				Width:   width,
				Height:  height,
				Theme:   string(theme),
				Percent: percent,
			})
			if err := codec.WriteFileAtomic(co.svgPath, []byte(svg), 0o644); err != nil {
				return a.out.FailWith(ExitCommandError, ErrCodeWriteFailed, fmt.Errorf("writing chart: %w", err))
			}
			view.SVG = co.svgPath
			a.out.VerboseLog("wrote %d bar(s) to %s", len(view.Bars), co.svgPath)
		}

		return a.out.Result(view, func(w io.Writer) error {
			if view.SVG != "" {
				_, err := fmt.Fprintf(w, "Wrote %s\n", view.SVG)
				return err
			}
			return writeTextChart(w, items, percent)
		})
	})
}

// writeTextChart draws horizontal bars scaled like LayoutBars: against the
// largest value, at least 1.
func writeTextChart(w io.Writer, items []chart.Item, percent bool) error {
	scale := 1.0
	for _, it := range items {
		scale = math.Max(scale, it.Value)
	}
	suffix := ""
	if percent {
		suffix = "%"
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, it := range items {
		n := int(math.Round(textBarWidth * math.Max(0, it.Value) / scale))
		fmt.Fprintf(tw, "%s\t%s\t%g%s\n", it.Label, strings.Repeat("#", n), it.Value, suffix)
	}
	return tw.Flush()
}
