// Package dataset loads the aggregate country spreadsheet and exposes it as an
// immutable in-memory table keyed by country and year-metric columns.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/logging"
)

// Error kinds for the two terminal load failures. Callers decide whether to
// halt or degrade; nothing in this package stops the process.
var (
	// ErrUnavailable means the spreadsheet file is missing.
	ErrUnavailable = errors.New("dataset unavailable")
	// ErrMalformed means the file exists but could not be parsed into a table.
	ErrMalformed = errors.New("dataset malformed")
)

// CountryColumn is the required key column. Every row holds one country and
// there is at most one row per country.
const CountryColumn = "Country"

// DefaultPath is where the viewer looks for the spreadsheet when no path is
// given on the command line or in the config file.
const DefaultPath = "Aggregate country with country.xlsx"

// Table is a read-only view of the loaded spreadsheet. Absence of a column
// for a given metric/year combination is a legal no-data state, not an error.
type Table struct {
	columns   []string
	colIndex  map[string]int
	rows      []tableRow
	byCountry map[string]int
}

type tableRow struct {
	country string
	raw     []string
	values  map[int]float64
}

// Load reads the spreadsheet at path into a Table. The first sheet's first
// row is the column space; remaining rows are country records.
func Load(path string) (*Table, error) {
	defer logging.TimeTrack(time.Now(), "dataset load")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %q needs a header and at least one data row", ErrMalformed, sheet)
	}

	header := rows[0]
	t := &Table{
		colIndex:  make(map[string]int, len(header)),
		byCountry: make(map[string]int),
	}
	countryIdx := -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		t.columns = append(t.columns, name)
		if _, dup := t.colIndex[name]; !dup && name != "" {
			t.colIndex[name] = i
		}
		if name == CountryColumn {
			countryIdx = i
		}
	}
	if countryIdx < 0 {
		return nil, fmt.Errorf("%w: missing %q column", ErrMalformed, CountryColumn)
	}

	for rix := 1; rix < len(rows); rix++ {
		cells := rows[rix]
		country := ""
		if countryIdx < len(cells) {
			country = strings.TrimSpace(cells[countryIdx])
		}
		if country == "" {
			continue // trailing blank rows are common in exported sheets
		}
		if _, dup := t.byCountry[country]; dup {
			return nil, fmt.Errorf("%w: duplicate row for country %q", ErrMalformed, country)
		}
		r := tableRow{
			country: country,
			raw:     make([]string, len(t.columns)),
			values:  make(map[int]float64),
		}
		for i := range t.columns {
			if i >= len(cells) {
				break
			}
			cell := strings.TrimSpace(cells[i])
			r.raw[i] = cell
			if cell == "" || i == countryIdx {
				continue
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				r.values[i] = v
			}
		}
		t.byCountry[country] = len(t.rows)
		t.rows = append(t.rows, r)
	}
	if len(t.rows) == 0 {
		return nil, fmt.Errorf("%w: no country rows in sheet %q", ErrMalformed, sheet)
	}
	logging.Infof("loaded dataset %s: %d countries, %d columns", path, len(t.rows), len(t.columns))
	return t, nil
}

// Countries returns the unique country names, sorted.
func (t *Table) Countries() []string {
	out := make([]string, 0, len(t.byCountry))
	for c := range t.byCountry {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Columns returns the column names in sheet order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the named column exists in the sheet.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIndex[name]
	return ok
}

// HasCountry reports whether a row exists for the country.
func (t *Table) HasCountry(country string) bool {
	_, ok := t.byCountry[country]
	return ok
}

// Value returns the numeric cell for (country, column). The second return is
// false when the row, the column, or the cell value is absent.
func (t *Table) Value(country, column string) (float64, bool) {
	rix, ok := t.byCountry[country]
	if !ok {
		return 0, false
	}
	cix, ok := t.colIndex[column]
	if !ok {
		return 0, false
	}
	v, ok := t.rows[rix].values[cix]
	return v, ok
}

// Preview returns up to n raw data rows (cells as displayed in the sheet),
// in sheet order, for the zero-selection data preview.
func (t *Table) Preview(n int) [][]string {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	out := make([][]string, 0, n)
	for _, r := range t.rows[:n] {
		row := make([]string, len(r.raw))
		copy(row, r.raw)
		out = append(out, row)
	}
	return out
}
