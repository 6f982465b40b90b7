package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestWarnfLiteralPercentNotReformatted(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved }()

	SetLevelName("info")

	msg := "Data for France in 2023 is incomplete (Scaler 2023 % missing)"
	Warnf(msg)

	out := buf.String()
	if !strings.Contains(out, "(Scaler 2023 % missing)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!m(MISSING)") {
		t.Fatalf("log output shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	savedLevel := GetLevel()
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved; SetLevel(savedLevel) }()

	SetLevel(LevelWarn)
	Infof("hidden")
	Warnf("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should have been filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{" Warning ", LevelWarn, true},
		{"ERROR", LevelError, true},
		{"verbose", LevelInfo, false},
	}
	for _, c := range cases {
		got, ok := ParseLevel(c.in)
		if ok != c.ok {
			t.Fatalf("ParseLevel(%q) ok=%v want %v", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ParseLevel(%q)=%v want %v", c.in, got, c.want)
		}
	}
}
