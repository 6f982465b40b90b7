// Package scaleup holds the growth-metric catalog and the pure extraction
// logic that turns the loaded dataset plus a user selection into the trend
// and comparison models the viewer draws.
package scaleup

import "fmt"

// Metric is one of the eight fixed growth classifications.
type Metric int

const (
	MetricScaler Metric = iota
	MetricHighGrowthFirm
	MetricConsistentHighGrowthFirm
	MetricConsistentHypergrower
	MetricGazelle
	MetricMatureHighGrowthFirm
	MetricScaleup
	MetricSuperstar
)

// Years is the fixed observation window, ascending.
var Years = []int{2019, 2020, 2021, 2022, 2023}

// LatestYear is the year the comparison view reports on.
const LatestYear = 2023

// ColumnKind selects one of the three per-metric-per-year dataset columns.
type ColumnKind string

const (
	KindPercent      ColumnKind = "%"
	KindCount        ColumnKind = "Num"
	KindObservations ColumnKind = "Obs"
)

type metricInfo struct {
	label       string
	prefix      string
	description string
}

// Catalog order is fixed; it is the order metrics appear in the UI.
var catalog = [...]metricInfo{
	MetricScaler:                   {"Scaler", "Scaler", "Companies with average annual growth rate of 10% in past three years"},
	MetricHighGrowthFirm:           {"High Growth Firm", "HighGrowthFirm", "Companies with average annual growth rate of 20% in past three years"},
	MetricConsistentHighGrowthFirm: {"Consistent High Growth Firm", "ConsistentHighGrowthFirm", "High growth companies that grew 20% in at least 2 of the past three years"},
	MetricConsistentHypergrower:    {"Consistent Hypergrower", "VeryHighGrowthFirm", "High growth companies that grew 40% in at least 2 of the past three years"},
	MetricGazelle:                  {"Gazelle", "Gazelle", "Consistent high growth firm that is younger than 10 years"},
	MetricMatureHighGrowthFirm:     {"Mature High Growth Firm", "Mature", "Consistent high growth firm that is older than 10 years"},
	MetricScaleup:                  {"Scaleup", "Scaleup", "Consistent hypergrower that is younger than 10 years"},
	MetricSuperstar:                {"Superstar", "Superstar", "Consistent hypergrower that is older than 10 years"},
}

// All returns the metrics in catalog order.
func All() []Metric {
	out := make([]Metric, len(catalog))
	for i := range catalog {
		out[i] = Metric(i)
	}
	return out
}

// Labels returns the display labels in catalog order.
func Labels() []string {
	out := make([]string, len(catalog))
	for i, m := range catalog {
		out[i] = m.label
	}
	return out
}

// ByLabel resolves a display label back to its metric.
func ByLabel(label string) (Metric, bool) {
	for i, m := range catalog {
		if m.label == label {
			return Metric(i), true
		}
	}
	return 0, false
}

// Label returns the user-facing name.
func (m Metric) Label() string { return catalog[m].label }

// Prefix returns the dataset column-name prefix.
func (m Metric) Prefix() string { return catalog[m].prefix }

// Description returns the static definition shown in the sidebar.
func (m Metric) Description() string { return catalog[m].description }

// ColumnName builds the dataset lookup key "<prefix> <year> <kind>".
func (m Metric) ColumnName(year int, kind ColumnKind) string {
	return fmt.Sprintf("%s %d %s", catalog[m].prefix, year, kind)
}
