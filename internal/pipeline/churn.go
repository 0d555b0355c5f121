package pipeline

import (
	"math"

	"donorpulse/internal/table"
)

// ChurnCategory buckets the composite churn risk score.
type ChurnCategory string

const (
	ChurnHigh   ChurnCategory = "High Risk"
	ChurnMedium ChurnCategory = "Medium Risk"
	ChurnLow    ChurnCategory = "Low Risk"
)

// CategorizeChurn maps a composite score onto its risk band.
func CategorizeChurn(score float64) ChurnCategory {
	switch {
	case score >= 70:
		return ChurnHigh
	case score >= 40:
		return ChurnMedium
	default:
		return ChurnLow
	}
}

// missingContactDays is the sentinel for an unknown last contact. It is a
// policy value, not a day count: unknown must never score better than any
// real contact date.
const missingContactDays = 999

// recencyHorizonDays is the linear decay horizon for the recency score:
// contact today scores 100, contact six years ago scores 0.
const recencyHorizonDays = 2190

// Composite weights: recency dominates, then drift, engagement, giving.
const (
	weightRecency    = 0.40
	weightDrift      = 0.30
	weightEngagement = 0.20
	weightGiving     = 0.10
)

// churnStage computes Days_Since_Last_Contact, Contact_Recency_Score,
// Engagement_Velocity and the weighted composite Churn_Risk_Score.
type churnStage struct{}

func (churnStage) Name() string { return "churn" }

func (churnStage) Apply(pc Context, t *table.Table) error {
	if !t.Has(ColLastContactDate) {
		pc.Log.Warn().Msg("contact dates absent, skipping churn risk metrics")
		return nil
	}

	n := t.Len()
	days := make([]table.Cell, n)
	recency := make([]table.Cell, n)
	for row := 0; row < n; row++ {
		d := missingContactDays
		if contact, ok := dateAt(t, ColLastContactDate, row); ok {
			d = int(pc.Now.Sub(contact).Hours() / 24)
		}
		days[row] = table.Int(int64(d))
		recency[row] = table.Float(recencyScore(d))
	}
	if err := t.SetColumn(ColDaysSinceContact, days); err != nil {
		return err
	}
	if err := t.SetColumn(ColRecencyScore, recency); err != nil {
		return err
	}

	if t.Has(ColTouchpointsLast12) {
		velocity := make([]table.Cell, n)
		for row := 0; row < n; row++ {
			tp, _ := intAt(t, ColTouchpointsLast12, row)
			velocity[row] = table.Float(float64(tp) * recency[row].Float / 100)
		}
		if err := t.SetColumn(ColEngagementVelocity, velocity); err != nil {
			return err
		}
	}

	required := []string{ColRecencyScore, ColDriftRatio, ColEngagementVelocity, ColGivingLast24, ColRecentAnnualized}
	for _, name := range required {
		if !t.Has(name) {
			pc.Log.Warn().Str("column", name).Msg("composite input absent, skipping churn risk score")
			return nil
		}
	}

	scores := make([]table.Cell, n)
	categories := make([]table.Cell, n)
	counts := make(map[ChurnCategory]int, 3)
	for row := 0; row < n; row++ {
		score := compositeRisk(t, row)
		category := CategorizeChurn(score)
		scores[row] = table.Float(score)
		categories[row] = table.String(string(category))
		counts[category]++
	}
	if err := t.SetColumn(ColChurnScore, scores); err != nil {
		return err
	}
	if err := t.SetColumn(ColChurnCategory, categories); err != nil {
		return err
	}

	pc.Log.Info().
		Int("high", counts[ChurnHigh]).
		Int("medium", counts[ChurnMedium]).
		Int("low", counts[ChurnLow]).
		Msg("churn risk distribution")
	return nil
}

// recencyScore decays linearly from 100 at zero days to 0 at the horizon.
// The missing-contact sentinel short-circuits to exactly 0 rather than
// passing through the formula.
func recencyScore(daysSince int) float64 {
	if daysSince >= missingContactDays {
		return 0
	}
	score := 100 * (1 - float64(daysSince)/recencyHorizonDays)
	return round1(clamp(score, 0, 100))
}

// compositeRisk blends the four sub-risks, each clamped to [0,100].
func compositeRisk(t *table.Table, row int) float64 {
	recencyVal, _ := floatAt(t, ColRecencyScore, row)
	recencyRisk := 100 - recencyVal

	// Inherited scoring: a ratio above 1 (an accelerating donor) still raises
	// the composite. Kept as-is pending a product decision on the sign.
	driftRisk := 0.0
	if ratio, ok := floatAt(t, ColDriftRatio, row); ok && ratio > 0 {
		driftRisk = math.Min(ratio*100, 100)
	}

	velocity, _ := floatAt(t, ColEngagementVelocity, row)
	engagementRisk := clamp(100-velocity*10, 0, 100)

	giving24, _ := intAt(t, ColGivingLast24, row)
	givingRisk := 100.0
	if giving24 != 0 {
		recentAnnualized, _ := intAt(t, ColRecentAnnualized, row)
		givingRisk = clamp(100-float64(recentAnnualized)/1000, 0, 100)
	}

	score := weightRecency*recencyRisk +
		weightDrift*driftRisk +
		weightEngagement*engagementRisk +
		weightGiving*givingRisk
	return round1(score)
}
