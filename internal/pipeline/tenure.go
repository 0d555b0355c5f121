package pipeline

import (
	"donorpulse/internal/table"
)

// minYearsActive floors donor tenure so annualization denominators never
// explode for brand-new donors. A missing first gift date also resolves to
// this floor: the most conservative possible tenure.
const minYearsActive = 0.5

// recentWindowYears caps the denominator used to annualize trailing-24-month
// giving. Donors younger than the window are annualized over their actual
// tenure instead, so a short observation window does not read as velocity.
const recentWindowYears = 2.0

const daysPerYear = 365.25

// annualizeStage computes Years_Active, Annualized_Lifetime_Value and
// Recent_Annualized_Giving.
type annualizeStage struct{}

func (annualizeStage) Name() string { return "annualize" }

func (annualizeStage) Apply(pc Context, t *table.Table) error {
	if !t.Has(ColFirstGiftDate) {
		pc.Log.Warn().Msg("first gift dates absent, skipping tenure and annualization")
		return nil
	}

	n := t.Len()
	years := make([]table.Cell, n)
	for row := 0; row < n; row++ {
		y := minYearsActive
		if d, ok := dateAt(t, ColFirstGiftDate, row); ok {
			days := int(pc.Now.Sub(d).Hours() / 24)
			if v := float64(days) / daysPerYear; v > y {
				y = v
			}
		}
		years[row] = table.Float(y)
	}
	if err := t.SetColumn(ColYearsActive, years); err != nil {
		return err
	}

	if t.Has(ColLifetimeGiving) {
		ltv := make([]table.Cell, n)
		for row := 0; row < n; row++ {
			lg, ok := intAt(t, ColLifetimeGiving, row)
			if !ok {
				ltv[row] = table.Missing(table.KindInt)
				continue
			}
			ltv[row] = table.Int(int64(float64(lg) / years[row].Float))
		}
		if err := t.SetColumn(ColAnnualizedLTV, ltv); err != nil {
			return err
		}
	}

	if t.Has(ColGivingLast24) {
		recent := make([]table.Cell, n)
		for row := 0; row < n; row++ {
			g, ok := intAt(t, ColGivingLast24, row)
			if !ok {
				recent[row] = table.Missing(table.KindInt)
				continue
			}
			denom := clamp(years[row].Float, minYearsActive, recentWindowYears)
			recent[row] = table.Int(int64(float64(g) / denom))
		}
		if err := t.SetColumn(ColRecentAnnualized, recent); err != nil {
			return err
		}
	}

	return nil
}
