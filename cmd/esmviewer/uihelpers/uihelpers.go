// Package uihelpers holds the pure chart-geometry math for the viewer so it
// can be tested without a display.
package uihelpers

import (
	"fmt"
	"math"
	"strconv"
)

// ComputeChartDimensions applies the width/height clamp rules for the trend
// chart. Input is the desired raw width (usually the window canvas width).
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.5)
	if h < 340 {
		h = 340
	}
	if h > 680 {
		h = 680
	}
	return w, h
}

// ComputeComparisonHeight grows the bar chart with the number of bars, the
// way the source dashboard scaled its figure height with the country count.
func ComputeComparisonHeight(bars int) int {
	h := 140 + bars*48
	if h < 340 {
		h = 340
	}
	if h > 760 {
		h = 760
	}
	return h
}

// LegendColumns is the wrap width of the bottom legend: at most five entries
// per row, fewer when fewer countries are selected.
func LegendColumns(n int) int {
	if n < 5 {
		return n
	}
	return 5
}

// LegendRows returns how many legend rows n entries occupy at cols per row.
func LegendRows(n, cols int) int {
	if n <= 0 || cols <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}

// FormatPercent renders a percentage value the way both charts annotate it.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// BuildPercentTicks generates up to ~n tick positions from 0 to max using the
// 1/2/2.5/5 step pattern. The comparison axis is always zero-anchored.
func BuildPercentTicks(max float64, n int) []float64 {
	if n < 2 || max <= 0 || math.IsNaN(max) {
		return []float64{0, 1}
	}
	rawStep := max / float64(n-1)
	mag := math.Pow(10, math.Floor(math.Log10(rawStep)))
	norm := rawStep / mag
	step := mag
	switch {
	case norm <= 1:
		step = 1 * mag
	case norm <= 2:
		step = 2 * mag
	case norm <= 2.5:
		step = 2.5 * mag
	case norm <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	var out []float64
	for v := 0.0; v <= max+step*1e-6; v += step {
		out = append(out, math.Round(v*1e6)/1e6)
	}
	if len(out) < 2 {
		out = []float64{0, max}
	}
	return out
}

// FormatTick provides a compact axis-tick label.
func FormatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case v == 0:
		return "0"
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}
