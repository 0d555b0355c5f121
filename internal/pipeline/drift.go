package pipeline

import (
	"donorpulse/internal/table"
)

// DriftStatus classifies a donor's giving velocity against their own
// historical baseline.
type DriftStatus string

const (
	DriftAccelerating DriftStatus = "Accelerating"
	DriftStable       DriftStatus = "Stable"
	DriftDrifting     DriftStatus = "Drifting"
	DriftDormant      DriftStatus = "High Risk / Dormant"
)

// CategorizeDrift maps a drift ratio onto its status band. The bands are
// inclusive on the lower edge and exclusive on the upper, partitioning the
// whole non-negative line with no gaps.
func CategorizeDrift(ratio float64) DriftStatus {
	switch {
	case ratio >= 1.1:
		return DriftAccelerating
	case ratio >= 0.8:
		return DriftStable
	case ratio >= 0.3:
		return DriftDrifting
	default:
		return DriftDormant
	}
}

// driftStage computes Drift_Ratio and Drift_Status. The ratio is zero
// whenever the donor's annualized lifetime value is zero or missing, so the
// division never fires on an empty denominator.
type driftStage struct{}

func (driftStage) Name() string { return "drift" }

func (driftStage) Apply(pc Context, t *table.Table) error {
	if !t.Has(ColRecentAnnualized) || !t.Has(ColAnnualizedLTV) {
		pc.Log.Warn().Msg("annualized giving columns absent, skipping drift metrics")
		return nil
	}

	n := t.Len()
	ratios := make([]table.Cell, n)
	statuses := make([]table.Cell, n)
	counts := make(map[DriftStatus]int, 4)
	for row := 0; row < n; row++ {
		ratio := 0.0
		if ltv, ok := intAt(t, ColAnnualizedLTV, row); ok && ltv > 0 {
			recent, _ := intAt(t, ColRecentAnnualized, row)
			ratio = float64(recent) / float64(ltv)
		}
		status := CategorizeDrift(ratio)
		ratios[row] = table.Float(ratio)
		statuses[row] = table.String(string(status))
		counts[status]++
	}

	if err := t.SetColumn(ColDriftRatio, ratios); err != nil {
		return err
	}
	if err := t.SetColumn(ColDriftStatus, statuses); err != nil {
		return err
	}

	pc.Log.Info().
		Int("accelerating", counts[DriftAccelerating]).
		Int("stable", counts[DriftStable]).
		Int("drifting", counts[DriftDrifting]).
		Int("dormant", counts[DriftDormant]).
		Msg("drift status distribution")
	return nil
}
