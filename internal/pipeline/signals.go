package pipeline

import (
	"regexp"

	"donorpulse/internal/table"
)

// Keyword alternations are precompiled once; notes fields are scanned with a
// plain case-insensitive substring match, no tokenization.
var (
	riskSignalPattern     = regexp.MustCompile(`(?i)dormant|turnover|slow|unclear|inactive|quieter`)
	capacitySignalPattern = regexp.MustCompile(`(?i)legacy|high net worth|upgrade|committed|enthusiastic|engaged`)
)

// signalStage flags risk and capacity language in the free-text notes.
// The two flags are independent; a row may set both, either, or neither.
// Missing notes read as the empty string and match nothing.
type signalStage struct{}

func (signalStage) Name() string { return "signals" }

func (signalStage) Apply(pc Context, t *table.Table) error {
	if !t.Has(ColNotes) {
		pc.Log.Warn().Msg("notes column absent, skipping signal extraction")
		return nil
	}

	n := t.Len()
	risk := make([]table.Cell, n)
	capacity := make([]table.Cell, n)
	riskCount, capacityCount := 0, 0
	for row := 0; row < n; row++ {
		notes := ""
		if c := t.Cell(ColNotes, row); c.Valid {
			notes = c.Str
		}
		hasRisk := riskSignalPattern.MatchString(notes)
		hasCapacity := capacitySignalPattern.MatchString(notes)
		risk[row] = table.Bool(hasRisk)
		capacity[row] = table.Bool(hasCapacity)
		if hasRisk {
			riskCount++
		}
		if hasCapacity {
			capacityCount++
		}
	}

	if err := t.SetColumn(ColHasRiskSignal, risk); err != nil {
		return err
	}
	if err := t.SetColumn(ColHasCapacitySignal, capacity); err != nil {
		return err
	}

	pc.Log.Info().
		Int("risk_signals", riskCount).
		Int("capacity_signals", capacityCount).
		Msg("notes signals extracted")
	return nil
}
