package pipeline

import (
	"testing"

	"github.com/rs/zerolog"

	"donorpulse/internal/table"
)

func TestSignalExtraction(t *testing.T) {
	tests := []struct {
		name         string
		notes        string
		wantRisk     bool
		wantCapacity bool
	}{
		{name: "risk keyword", notes: "Giving has been quieter lately", wantRisk: true},
		{name: "case insensitive", notes: "DORMANT since the leadership turnover", wantRisk: true},
		{name: "capacity keyword", notes: "High net worth family, legacy pledge discussed", wantCapacity: true},
		{name: "both signals", notes: "Enthusiastic donor but responses are slow", wantRisk: true, wantCapacity: true},
		{name: "substring match", notes: "Disengaged board member", wantCapacity: true},
		{name: "no signals", notes: "Met at the spring gala"},
		{name: "empty notes", notes: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tbl := table.New(1)
			cells := []table.Cell{table.String(tc.notes)}
			if tc.notes == "" {
				cells[0] = table.Missing(table.KindString)
			}
			_ = tbl.SetColumn(ColNotes, cells)
			if err := (signalStage{}).Apply(Context{Log: zerolog.Nop()}, tbl); err != nil {
				t.Fatalf("Apply: %v", err)
			}

			if got := tbl.Cell(ColHasRiskSignal, 0).Bool; got != tc.wantRisk {
				t.Fatalf("risk signal = %v, want %v", got, tc.wantRisk)
			}
			if got := tbl.Cell(ColHasCapacitySignal, 0).Bool; got != tc.wantCapacity {
				t.Fatalf("capacity signal = %v, want %v", got, tc.wantCapacity)
			}
		})
	}
}

func TestSignalsSkipWithoutNotes(t *testing.T) {
	tbl := table.New(1)
	_ = tbl.SetColumn(ColDonorID, stringColumn("D001"))
	if err := (signalStage{}).Apply(Context{Log: zerolog.Nop()}, tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tbl.Has(ColHasRiskSignal) || tbl.Has(ColHasCapacitySignal) {
		t.Fatalf("signal columns should not exist: %#v", tbl.Columns())
	}
}
