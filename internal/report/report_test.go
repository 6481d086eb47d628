package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/fatih/color"
)

const exportJSON = `{
	"2024-03-01": {"severity": 2, "foods": ["Milch", "Brot"]},
	"2024-03-02": {"severity": 5, "foods": ["Brot"]},
	"2024-03-03": {"severity": 1, "foods": ["Reis"]},
	"2024-03-04": {"severity": 2, "foods": ["Milch"]},
	"2024-03-05": {"severity": 4, "foods": ["Reis"]},
	"2024-03-06": {"severity": 2, "foods": ["Brot"]},
	"2024-03-07": {"severity": 1, "foods": ["Milch", "Reis"]},
	"2024-03-08": {"severity": 5, "foods": []},
	"2024-03-09": {"severity": 2, "foods": ["Brot"], "notes": "ok"}
}`

func TestLoadExport(t *testing.T) {
	entries, err := LoadExport(strings.NewReader(exportJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 9 {
		t.Fatalf("expected 9 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if !entries[i-1].Date.Before(entries[i].Date) {
			t.Fatalf("entries not sorted at %d", i)
		}
	}
	if entries[8].Notes != "ok" {
		t.Errorf("notes not decoded: %q", entries[8].Notes)
	}
	if entries[7].Foods == nil {
		t.Error("expected empty foods, got nil")
	}
}

func TestLoadExport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "malformed date key", input: `{"03/01/2024": {"severity": 2}}`, wantErr: domain.ErrInvalidDate},
		{name: "not json", input: `[`},
		{name: "severity above scale", input: `{"2024-03-01": {"severity": 9}}`, wantErr: domain.ErrInvalidInput},
		{name: "severity below scale", input: `{"2024-03-01": {"severity": 0}}`, wantErr: domain.ErrInvalidInput},
		{name: "stress out of range", input: `{"2024-03-01": {"severity": 2, "stress_level": 6}}`, wantErr: domain.ErrInvalidInput},
		{name: "sleep out of range", input: `{"2024-03-01": {"sleep_quality": -1}}`, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadExport(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBuildAndRender(t *testing.T) {
	color.NoColor = true

	entries, err := LoadExport(strings.NewReader(exportJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := Build(entries, Options{Days: 30, DelayDays: 1, Threshold: 4})
	if got := domain.FormatDate(r.Today); got != "2024-03-09" {
		t.Errorf("today = %s, want 2024-03-09", got)
	}
	if r.Statistics.TotalEntries != 9 {
		t.Errorf("expected 9 entries in period, got %d", r.Statistics.TotalEntries)
	}

	var milch *domain.PatternResult
	for i := range r.Triggers {
		if r.Triggers[i].TriggerLabel == "Milch" {
			milch = &r.Triggers[i]
		}
	}
	if milch == nil {
		t.Fatal("expected a Milch pattern")
	}
	if milch.Probability != 100 {
		t.Errorf("Milch probability = %v, want 100", milch.Probability)
	}

	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Flare report", "Entries:          9", "Possible triggers", "Milch", "100.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no ANSI escapes with NoColor")
	}
}

func TestRender_Empty(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	if err := Render(&buf, Build(nil, Options{Days: 7, DelayDays: 2, Threshold: 4})); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No entries in this period.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
