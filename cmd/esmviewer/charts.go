package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/scaleupinstitute/EuropeanScaleupMonitor/cmd/esmviewer/uihelpers"
	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/logging"
	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/scaleup"
)

// seriesPalette is the categorical palette (tab10). The i-th selected country
// always gets the i-th color, cycling past ten.
var seriesPalette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

func paletteColor(i int) drawing.Color {
	return seriesPalette[i%len(seriesPalette)]
}

func toRGBA(c drawing.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// trendYAxisMax leaves headroom above the highest point for its annotation.
func trendYAxisMax(maxPercent float64) float64 {
	if maxPercent <= 0 {
		return 1
	}
	return maxPercent * 1.1
}

// comparisonXAxisMax leaves room past the longest bar for its value label.
func comparisonXAxisMax(maxPercent float64) float64 {
	if maxPercent <= 0 {
		return 1
	}
	return maxPercent * 1.2
}

// yearTicks pins the X axis to exactly the five window years.
func yearTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, len(scaleup.Years))
	for _, y := range scaleup.Years {
		ticks = append(ticks, chart.Tick{Value: float64(y), Label: fmt.Sprintf("%d", y)})
	}
	return ticks
}

const legendRowHeight = 16

// legendStripHeight reserves bottom padding for the wrapped legend.
func legendStripHeight(countries int) int {
	cols := uihelpers.LegendColumns(countries)
	if cols == 0 {
		return 0
	}
	return uihelpers.LegendRows(countries, cols)*legendRowHeight + 12
}

// renderTrendChart draws the multi-line trend chart: one line per selected
// country in selection order, per-point percentage annotations, Y axis
// anchored at zero, X ticks fixed to the five years, legend strip below.
func renderTrendChart(tr scaleup.Trend, width, height int) image.Image {
	names := make([]string, len(tr.Series))
	for i, s := range tr.Series {
		names[i] = s.Country
	}
	stripH := legendStripHeight(len(names))

	if !tr.HasData() {
		// No plottable points anywhere; countries still get their legend slots.
		return drawLegendStrip(blank(width, height), names, stripH)
	}

	series := []chart.Series{}
	for i, s := range tr.Series {
		var xs, ys []float64
		var anns []chart.Value2
		for _, p := range s.Points {
			if p.Missing {
				continue
			}
			xs = append(xs, float64(p.Year))
			ys = append(ys, p.Percent)
			anns = append(anns, chart.Value2{
				XValue: float64(p.Year),
				YValue: p.Percent,
				Label:  uihelpers.FormatPercent(p.Percent),
			})
		}
		if len(xs) == 0 {
			continue
		}
		col := paletteColor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Country,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2.5,
				DotColor:    col,
				DotWidth:    4,
			},
		})
		series = append(series, chart.AnnotationSeries{
			Annotations: anns,
			Style: chart.Style{
				FontSize:    9,
				StrokeColor: col,
				FillColor:   drawing.Color{R: 255, G: 255, B: 255, A: 200},
			},
		})
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("Trend Analysis: %s (2019-2023)", tr.Metric.Label()),
		Background: chart.Style{Padding: chart.Box{Top: 16, Left: 16, Right: 16, Bottom: stripH + 8}},
		Width:      width,
		Height:     height,
		XAxis: chart.XAxis{
			Name:  "Year",
			Ticks: yearTicks(),
			Range: &chart.ContinuousRange{Min: 2018.6, Max: 2023.4},
		},
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("Percentage of %ss (%%)", tr.Metric.Label()),
			Range: &chart.ContinuousRange{Min: 0, Max: trendYAxisMax(tr.MaxPercent)},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		logging.Errorf("trend chart render: %v", err)
		return drawLegendStrip(blank(width, height), names, stripH)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		logging.Errorf("trend chart decode: %v", err)
		return drawLegendStrip(blank(width, height), names, stripH)
	}
	return drawLegendStrip(img, names, stripH)
}

// drawLegendStrip draws the horizontal legend centered below the plot,
// wrapped at min(5, n) entries per row, in image space.
func drawLegendStrip(src image.Image, names []string, stripH int) image.Image {
	b := src.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, src, b.Min, draw.Src)
	cols := uihelpers.LegendColumns(len(names))
	if cols == 0 || stripH <= 0 {
		return rgba
	}
	rows := uihelpers.LegendRows(len(names), cols)

	face := basicfont.Face7x13
	text := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{R: 40, G: 40, B: 40, A: 255}),
		Face: face,
	}
	cellW := 0
	for _, n := range names {
		if w := text.MeasureString(n).Ceil(); w > cellW {
			cellW = w
		}
	}
	cellW += 26 // color box plus gaps

	baseY := b.Max.Y - stripH + (stripH-rows*legendRowHeight)/2 + 11
	for i, name := range names {
		row, col := i/cols, i%cols
		inRow := cols
		if row == rows-1 {
			if r := len(names) - row*cols; r > 0 {
				inRow = r
			}
		}
		x0 := b.Min.X + (b.Dx()-inRow*cellW)/2 + col*cellW
		y := baseY + row*legendRowHeight
		box := image.NewUniform(toRGBA(paletteColor(i)))
		draw.Draw(rgba, image.Rect(x0, y-9, x0+10, y+1), box, image.Point{}, draw.Src)
		text.Dot = fixed.P(x0+16, y)
		text.DrawString(name)
	}
	return rgba
}

// renderComparisonChart draws the latest-year horizontal bar chart: bars in
// sorted order top to bottom, each annotated just past its end, X axis
// anchored at zero with fixed headroom. go-chart only draws vertical bars, so
// this chart is composed directly in image space.
func renderComparisonChart(c scaleup.Comparison, width, height int) image.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)
	if len(c.Rows) == 0 {
		return rgba
	}

	face := basicfont.Face7x13
	text := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{R: 40, G: 40, B: 40, A: 255}),
		Face: face,
	}

	title := fmt.Sprintf("Comparison of %ss in %d", c.Metric.Label(), c.Year)
	text.Dot = fixed.P((width-text.MeasureString(title).Ceil())/2, 18)
	text.DrawString(title)

	maxNameW := 0
	for _, r := range c.Rows {
		if w := text.MeasureString(r.Country).Ceil(); w > maxNameW {
			maxNameW = w
		}
	}
	left := 16 + maxNameW + 10
	right := width - 80
	top := 34
	bottom := height - 26
	if right <= left || bottom <= top {
		return rgba
	}
	plotW := right - left
	xmax := comparisonXAxisMax(c.MaxPercent)

	grid := image.NewUniform(color.RGBA{R: 214, G: 214, B: 214, A: 255})
	for _, tv := range uihelpers.BuildPercentTicks(xmax, 6) {
		x := left + int(float64(plotW)*tv/xmax)
		draw.Draw(rgba, image.Rect(x, top, x+1, bottom), grid, image.Point{}, draw.Src)
		lbl := uihelpers.FormatTick(tv)
		text.Dot = fixed.P(x-text.MeasureString(lbl).Ceil()/2, bottom+16)
		text.DrawString(lbl)
	}

	slot := float64(bottom-top) / float64(len(c.Rows))
	barH := int(slot * 0.7)
	if barH < 8 {
		barH = 8
	}
	for i, row := range c.Rows {
		y0 := top + int(float64(i)*slot+(slot-float64(barH))/2)
		barW := int(float64(plotW) * row.Percent / xmax)
		bar := image.NewUniform(toRGBA(paletteColor(i)))
		draw.Draw(rgba, image.Rect(left, y0, left+barW, y0+barH), bar, image.Point{}, draw.Src)

		baseline := y0 + barH/2 + 4
		text.Dot = fixed.P(left-10-text.MeasureString(row.Country).Ceil(), baseline)
		text.DrawString(row.Country)
		text.Dot = fixed.P(left+barW+6, baseline)
		text.DrawString(uihelpers.FormatPercent(row.Percent))
	}

	axis := image.NewUniform(color.RGBA{R: 120, G: 120, B: 120, A: 255})
	draw.Draw(rgba, image.Rect(left, bottom, right, bottom+1), axis, image.Point{}, draw.Src)
	return rgba
}

// blank returns a plain background placeholder at the requested size.
func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}
