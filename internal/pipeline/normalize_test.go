package pipeline

import (
	"testing"

	"github.com/rs/zerolog"

	"donorpulse/internal/table"
)

func stringColumn(values ...string) []table.Cell {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		cells[i] = table.String(v)
	}
	return cells
}

func TestNormalizeIndustry(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tech synonym", in: "tech", want: "Technology"},
		{name: "technology synonym", in: "Technology", want: "Technology"},
		{name: "software stays separate", in: "SOFTWARE", want: "Software"},
		{name: "ai uppercased", in: "ai", want: "AI"},
		{name: "unknown keeps lowercased form", in: " Healthcare ", want: "healthcare"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tbl := table.New(1)
			_ = tbl.SetColumn(ColIndustry, stringColumn(tc.in))
			if err := (normalizeStage{}).Apply(Context{Log: zerolog.Nop()}, tbl); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got := tbl.Cell(ColIndustry, 0).Str; got != tc.want {
				t.Fatalf("industry = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeNumbers(t *testing.T) {
	tbl := table.New(3)
	_ = tbl.SetColumn(ColLifetimeGiving, stringColumn("1,200,000", "800", "not a number"))
	if err := (normalizeStage{}).Apply(Context{Log: zerolog.Nop()}, tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := tbl.Cell(ColLifetimeGiving, 0); !got.Valid || got.Int != 1200000 {
		t.Fatalf("thousands separator not handled: %#v", got)
	}
	if got := tbl.Cell(ColLifetimeGiving, 1); !got.Valid || got.Int != 800 {
		t.Fatalf("plain integer mishandled: %#v", got)
	}
	if got := tbl.Cell(ColLifetimeGiving, 2); got.Valid {
		t.Fatalf("malformed value should be missing, got %#v", got)
	}
}

func TestNormalizeDates(t *testing.T) {
	tbl := table.New(2)
	_ = tbl.SetColumn(ColFirstGiftDate, stringColumn("2020-06-15", "15/06/2020"))
	_ = tbl.SetColumn(ColLastContactDate, stringColumn("15/06/2025", "2025-06-15"))
	if err := (normalizeStage{}).Apply(Context{Log: zerolog.Nop()}, tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Each column has one fixed layout; the other row's format must not parse.
	if got := tbl.Cell(ColFirstGiftDate, 0); !got.Valid || got.Date.Year() != 2020 || got.Date.Month() != 6 {
		t.Fatalf("iso first gift date mishandled: %#v", got)
	}
	if got := tbl.Cell(ColFirstGiftDate, 1); got.Valid {
		t.Fatalf("day-first value must not parse as iso: %#v", got)
	}
	if got := tbl.Cell(ColLastContactDate, 0); !got.Valid || got.Date.Day() != 15 || got.Date.Month() != 6 {
		t.Fatalf("day-first contact date mishandled: %#v", got)
	}
	if got := tbl.Cell(ColLastContactDate, 1); got.Valid {
		t.Fatalf("iso value must not parse as day-first: %#v", got)
	}
}

func TestNormalizeGeographyDashVariants(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "en-dash", in: "US – CA"},
		{name: "em-dash", in: "US — CA"},
		{name: "ascii hyphen", in: "  US - CA  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tbl := table.New(1)
			_ = tbl.SetColumn(ColGeography, stringColumn(tc.in))
			if err := (normalizeStage{}).Apply(Context{Log: zerolog.Nop()}, tbl); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got := tbl.Cell(ColGeography, 0).Str; got != "US - CA" {
				t.Fatalf("geography = %q, want %q", got, "US - CA")
			}
		})
	}
}

func TestNormalizeSkipsAbsentColumns(t *testing.T) {
	tbl := table.New(1)
	_ = tbl.SetColumn(ColDonorID, stringColumn("D001"))
	if err := (normalizeStage{}).Apply(Context{Log: zerolog.Nop()}, tbl); err != nil {
		t.Fatalf("absent columns must not fail the stage: %v", err)
	}
	if len(tbl.Columns()) != 1 {
		t.Fatalf("no columns should be added, got %#v", tbl.Columns())
	}
}
