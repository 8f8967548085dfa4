// Package chart lays out and paints the dashboard bar charts.
//
// LayoutBars is pure geometry: it turns a series into bar rectangles that
// share a baseline, in input order, with no notion of colors or themes.
// RenderSVG paints those bars.
package chart

import "math"

// Layout constants, in pixels.
const (
	Padding       = 16
	Gap           = 10
	MinBarWidth   = 18
	DefaultWidth  = 640
	DefaultHeight = 220
)

// Item is one category of a series.
type Item struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Bar is the draw instruction for one Item. Y is the top edge; every bar
// ends on the baseline height-Padding.
type Bar struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutBars computes one bar per item.
//
// Bars are scaled against the largest value (at least 1) and are never
// narrower than MinBarWidth, so a crowded chart may overflow width.
// Negative values are drawn with zero height.
func LayoutBars(items []Item, width, height float64) []Bar {
	scale := 1.0
	for _, it := range items {
		scale = math.Max(scale, it.Value)
	}

	plotHeight := height - 2*Padding
	slot := math.Max(MinBarWidth, (width-2*Padding)/float64(max(1, len(items)))-Gap)
	baseline := height - Padding

	bars := make([]Bar, len(items))
	for i, it := range items {
		h := plotHeight * math.Max(0, it.Value) / scale
		bars[i] = Bar{
			Label:  it.Label,
			Value:  it.Value,
			X:      Padding + float64(i)*(slot+Gap),
			Y:      baseline - h,
			Width:  slot,
			Height: h,
		}
	}
	return bars
}
