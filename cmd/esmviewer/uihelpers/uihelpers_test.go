package uihelpers

import (
	"math"
	"testing"
)

func TestComputeChartDimensionsClamps(t *testing.T) {
	w, h := ComputeChartDimensions(200)
	if w != 800 {
		t.Fatalf("narrow width should clamp to 800, got %d", w)
	}
	if h < 340 || h > 680 {
		t.Fatalf("height out of bounds: %d", h)
	}
	w, h = ComputeChartDimensions(2000)
	if w != 2000 {
		t.Fatalf("wide width should pass through, got %d", w)
	}
	if h != 680 {
		t.Fatalf("height should clamp to 680, got %d", h)
	}
}

func TestComputeComparisonHeightGrowsWithBars(t *testing.T) {
	if h := ComputeComparisonHeight(2); h != 340 {
		t.Fatalf("few bars should hit the floor: %d", h)
	}
	h5, h10 := ComputeComparisonHeight(5), ComputeComparisonHeight(10)
	if h10 <= h5 {
		t.Fatalf("height should grow with bar count: %d vs %d", h5, h10)
	}
	if h := ComputeComparisonHeight(100); h != 760 {
		t.Fatalf("many bars should hit the ceiling: %d", h)
	}
}

func TestLegendColumnsWrapAtFive(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 3: 3, 5: 5, 8: 5, 20: 5}
	for n, want := range cases {
		if got := LegendColumns(n); got != want {
			t.Fatalf("LegendColumns(%d)=%d want %d", n, got, want)
		}
	}
}

func TestLegendRows(t *testing.T) {
	cases := []struct{ n, cols, want int }{
		{0, 5, 0},
		{3, 3, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
	}
	for _, c := range cases {
		if got := LegendRows(c.n, c.cols); got != c.want {
			t.Fatalf("LegendRows(%d,%d)=%d want %d", c.n, c.cols, got, c.want)
		}
	}
}

func TestFormatPercentTwoDecimals(t *testing.T) {
	if got := FormatPercent(15.0); got != "15.00%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPercent(7.125); got != "7.12%" && got != "7.13%" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildPercentTicksZeroAnchoredAndCovering(t *testing.T) {
	ticks := BuildPercentTicks(18.0, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected ticks, got %v", ticks)
	}
	if ticks[0] != 0 {
		t.Fatalf("first tick must be 0, got %v", ticks[0])
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Fatalf("ticks not increasing: %v", ticks)
		}
		if ticks[i] > 18.0+1e-6 {
			t.Fatalf("tick beyond max: %v", ticks)
		}
	}
	// last tick should land close to the max, not far short of it
	if last := ticks[len(ticks)-1]; last < 18.0*0.7 {
		t.Fatalf("ticks stop too early: %v", ticks)
	}
}

func TestBuildPercentTicksDegenerateMax(t *testing.T) {
	for _, max := range []float64{0, -3, math.NaN()} {
		ticks := BuildPercentTicks(max, 6)
		if len(ticks) != 2 || ticks[0] != 0 {
			t.Fatalf("degenerate max %v: got %v", max, ticks)
		}
	}
}

func TestFormatTick(t *testing.T) {
	cases := map[float64]string{
		0:     "0",
		250:   "250",
		12.34: "12.3",
		1.5:   "1.50",
	}
	for v, want := range cases {
		if got := FormatTick(v); got != want {
			t.Fatalf("FormatTick(%v)=%q want %q", v, got, want)
		}
	}
}
