package scaleup

import (
	"fmt"
	"sort"

	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/dataset"
	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/logging"
)

// Selection is the ephemeral per-render state: the countries the user picked,
// in pick order, and exactly one metric. It is rebuilt on every render pass.
type Selection struct {
	Countries []string
	Metric    Metric
}

// Point is one extracted (country, year) observation. Percent is scaled to
// 0..100 for display; the dataset stores fractions. Missing marks an absent
// row, column or cell, which is an expected state, never an error.
type Point struct {
	Country      string
	Year         int
	Percent      float64
	Missing      bool
	Count        float64
	Observations float64
	HasCounts    bool
}

// Extract looks up the percentage, count and observation columns for one
// (metric, country, year) and returns the point, with missing markers where
// the dataset has no value.
func Extract(t *dataset.Table, m Metric, country string, year int) Point {
	p := Point{Country: country, Year: year, Missing: true}
	if v, ok := t.Value(country, m.ColumnName(year, KindPercent)); ok {
		p.Percent = v * 100
		p.Missing = false
	}
	num, okNum := t.Value(country, m.ColumnName(year, KindCount))
	obs, okObs := t.Value(country, m.ColumnName(year, KindObservations))
	if okNum && okObs {
		p.Count = num
		p.Observations = obs
		p.HasCounts = true
	}
	return p
}

// CountrySeries is one trend line: the five fixed years for one country.
type CountrySeries struct {
	Country string
	Points  []Point
}

// HasData reports whether at least one year carries a value. A country with
// no data draws no points but still occupies its legend slot.
func (s CountrySeries) HasData() bool {
	for _, p := range s.Points {
		if !p.Missing {
			return true
		}
	}
	return false
}

// Trend is the model behind the multi-line trend chart: one series per
// selected country, in selection order.
type Trend struct {
	Metric     Metric
	Series     []CountrySeries
	MaxPercent float64
}

// HasData reports whether any series plots at least one point.
func (tr Trend) HasData() bool {
	for _, s := range tr.Series {
		if s.HasData() {
			return true
		}
	}
	return false
}

// BuildTrend extracts one series per selected country across the fixed year
// window. MaxPercent is computed over non-missing points only.
func BuildTrend(t *dataset.Table, sel Selection) Trend {
	tr := Trend{Metric: sel.Metric}
	for _, country := range sel.Countries {
		s := CountrySeries{Country: country}
		for _, year := range Years {
			p := Extract(t, sel.Metric, country, year)
			if !p.Missing && p.Percent > tr.MaxPercent {
				tr.MaxPercent = p.Percent
			}
			s.Points = append(s.Points, p)
		}
		tr.Series = append(tr.Series, s)
	}
	return tr
}

// ComparisonOutcome says whether the comparison view has something to draw.
type ComparisonOutcome int

const (
	// ComparisonOK means at least one country survived extraction.
	ComparisonOK ComparisonOutcome = iota
	// ComparisonTooFewCountries means fewer than two countries were selected.
	ComparisonTooFewCountries
	// ComparisonNoData means every selected country lacked complete data.
	ComparisonNoData
)

// ComparisonRow is one surviving country in the latest-year comparison.
type ComparisonRow struct {
	Country      string
	Percent      float64
	Count        float64
	Observations float64
}

// Comparison is the model behind the latest-year bar chart. Rows are sorted
// descending by percentage; ties keep selection order. Countries lacking any
// of the three columns are excluded and reported in Warnings.
type Comparison struct {
	Metric     Metric
	Year       int
	Outcome    ComparisonOutcome
	Rows       []ComparisonRow
	Warnings   []string
	MaxPercent float64
}

// BuildComparison extracts the latest-year triple for each selected country.
// A country missing its percentage, count or observation value is dropped
// with a warning; extraction continues for the rest. Whether a country with
// a percentage but no counts should really be dropped is an open question
// inherited from the source data pipeline; the behavior is kept as-is.
func BuildComparison(t *dataset.Table, sel Selection) Comparison {
	c := Comparison{Metric: sel.Metric, Year: LatestYear}
	if len(sel.Countries) < 2 {
		c.Outcome = ComparisonTooFewCountries
		return c
	}
	for _, country := range sel.Countries {
		p := Extract(t, sel.Metric, country, LatestYear)
		if p.Missing || !p.HasCounts {
			w := fmt.Sprintf("Data for %s in %d is incomplete.", country, LatestYear)
			c.Warnings = append(c.Warnings, w)
			logging.Warnf(w)
			continue
		}
		if p.Percent > c.MaxPercent {
			c.MaxPercent = p.Percent
		}
		c.Rows = append(c.Rows, ComparisonRow{
			Country:      country,
			Percent:      p.Percent,
			Count:        p.Count,
			Observations: p.Observations,
		})
	}
	if len(c.Rows) == 0 {
		c.Outcome = ComparisonNoData
		return c
	}
	sort.SliceStable(c.Rows, func(i, j int) bool {
		return c.Rows[i].Percent > c.Rows[j].Percent
	})
	return c
}

// Result bundles everything one render pass needs. Preview is set when no
// countries are selected: the UI shows a dataset preview instead of charts.
type Result struct {
	Preview    bool
	Trend      Trend
	Comparison Comparison
}

// Build is the pure (dataset, selection) -> render-model function. It never
// mutates the table and never fails: load errors belong to the repository,
// missing data points to the models.
func Build(t *dataset.Table, sel Selection) Result {
	if len(sel.Countries) == 0 {
		return Result{Preview: true}
	}
	return Result{
		Trend:      BuildTrend(t, sel),
		Comparison: BuildComparison(t, sel),
	}
}
