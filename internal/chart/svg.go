package chart

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// GridLines is the number of horizontal guides drawn behind the bars.
const GridLines = 4

// Palette holds the colors of one theme.
type Palette struct {
	Background string
	Stroke     string
	Text       string
	Muted      string
	Primary    string
}

var (
	darkPalette = Palette{
		Background: "#0b1020",
		Stroke:     "rgba(255,255,255,.14)",
		Text:       "#fff",
		Muted:      "rgba(255,255,255,.7)",
		Primary:    "#7c3aed",
	}
	lightPalette = Palette{
		Background: "#f7f7fb",
		Stroke:     "rgba(15,23,42,.12)",
		Text:       "#0f172a",
		Muted:      "rgba(15,23,42,.65)",
		Primary:    "#6d28d9",
	}
)

// PaletteFor returns the palette of a theme name; anything but "light"
// gets the dark palette.
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return lightPalette
	}
	return darkPalette
}

// Options control RenderSVG.
type Options struct {
	Width   float64
	Height  float64
	Theme   string
	Percent bool // suffix value labels with "%"
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// RenderSVG paints bars produced by LayoutBars with the same width and
// height. The output is a standalone SVG document ending in a newline.
func RenderSVG(bars []Bar, opts Options) string {
	opts = opts.withDefaults()
	pal := PaletteFor(opts.Theme)
	w, h := opts.Width, opts.Height

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(w), num(h), num(w), num(h))
	fmt.Fprintf(&sb, `  <style>.value{font:700 12px system-ui;fill:%s}.label{font:12px system-ui;fill:%s}</style>`+"\n",
		pal.Text, pal.Muted)
	fmt.Fprintf(&sb, `  <rect width="%s" height="%s" fill="%s"/>`+"\n", num(w), num(h), pal.Background)

	for i := 0; i < GridLines; i++ {
		y := Padding + (h-2*Padding)*float64(i)/float64(GridLines-1)
		fmt.Fprintf(&sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			num(Padding), num(y), num(w-Padding), num(y), pal.Stroke)
	}

	for _, b := range bars {
		radius := math.Min(10, math.Min(b.Width/2, b.Height/2))
		fmt.Fprintf(&sb, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" fill-opacity="0.65"/>`+"\n",
			num(b.X), num(b.Y), num(b.Width), num(b.Height), num(radius), pal.Primary)

		value := num(b.Value)
		if opts.Percent {
			value += "%"
		}
		fmt.Fprintf(&sb, `  <text x="%s" y="%s" class="value">%s</text>`+"\n",
			num(b.X), num(b.Y-6), value)
		fmt.Fprintf(&sb, `  <text x="%s" y="%s" class="label">%s</text>`+"\n",
			num(b.X), num(h-6), html.EscapeString(b.Label))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
