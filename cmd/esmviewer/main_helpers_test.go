package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/dataset"
	"github.com/scaleupinstitute/EuropeanScaleupMonitor/src/scaleup"
)

func TestMergeSelectionKeepsPickOrder(t *testing.T) {
	// user picked France, then Germany; the widget reports alphabetically
	prev := []string{"France", "Germany"}
	cur := []string{"Belgium", "France", "Germany"}
	got := mergeSelection(prev, cur)
	want := []string{"France", "Germany", "Belgium"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestMergeSelectionDropsUnchecked(t *testing.T) {
	prev := []string{"France", "Germany", "Belgium"}
	cur := []string{"Belgium", "France"}
	got := mergeSelection(prev, cur)
	want := []string{"France", "Belgium"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestMergeSelectionEmptyCases(t *testing.T) {
	if got := mergeSelection(nil, nil); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	if got := mergeSelection([]string{"France"}, nil); len(got) != 0 {
		t.Fatalf("unchecking everything should empty the selection: %v", got)
	}
	got := mergeSelection(nil, []string{"Austria", "Belgium"})
	if !reflect.DeepEqual(got, []string{"Austria", "Belgium"}) {
		t.Fatalf("got %v", got)
	}
}

func TestLoadErrorMessageByKind(t *testing.T) {
	msg := loadErrorMessage(fmt.Errorf("open: %w", dataset.ErrUnavailable))
	if !strings.Contains(msg, "not found") {
		t.Fatalf("unavailable message: %q", msg)
	}
	msg = loadErrorMessage(fmt.Errorf("row 3: %w", dataset.ErrMalformed))
	if !strings.Contains(msg, "Error loading data") {
		t.Fatalf("malformed message: %q", msg)
	}
	msg = loadErrorMessage(errors.New("boom"))
	if !strings.Contains(msg, "boom") {
		t.Fatalf("generic message should carry the cause: %q", msg)
	}
}

func TestDefaultMetricFallsBack(t *testing.T) {
	if m := defaultMetric("Gazelle"); m != scaleup.MetricGazelle {
		t.Fatalf("got %v", m)
	}
	if m := defaultMetric("No Such Metric"); m != scaleup.MetricScaler {
		t.Fatalf("unknown label should fall back to Scaler, got %v", m)
	}
}

func TestTruncatePath(t *testing.T) {
	short := "data.xlsx"
	if got := truncatePath(short, 48); got != short {
		t.Fatalf("short path should pass through: %q", got)
	}
	long := "/very/long/nested/directory/structure/holding/the/aggregate/data.xlsx"
	got := truncatePath(long, 32)
	if len(got) > 32 {
		t.Fatalf("truncated path too long: %d %q", len(got), got)
	}
	if !strings.HasSuffix(got, "data.xlsx") {
		t.Fatalf("base name must survive truncation: %q", got)
	}
}
