// Package report aggregates the processed donor table into the portfolio
// figures the reporting consumers read: headline KPIs, the ghost segment,
// and relationship-manager load.
package report

import (
	"sort"
	"time"

	"donorpulse/internal/domain"
	"donorpulse/internal/pipeline"
	"donorpulse/internal/table"
)

// ghostLifetimeFloor is the lifetime-giving threshold for the "dormant
// high-value" segment: donors above it with zero trailing-24-month giving.
const ghostLifetimeFloor = 500000

// missingContactSentinel mirrors the day-count sentinel the churn stage
// writes for donors with no recorded contact date.
const missingContactSentinel = 999

// Summary holds the whole-portfolio aggregates derived from one pipeline run.
type Summary struct {
	GeneratedAt           time.Time      `json:"generated_at"`
	Donors                int            `json:"donors"`
	TotalLifetimeGiving   int64          `json:"total_lifetime_giving"`
	PipelineVelocity      int64          `json:"pipeline_velocity"`
	AtRiskCapital         int64          `json:"at_risk_capital"`
	HighRiskDonors        int            `json:"high_risk_donors"`
	MissingContactDonors  int            `json:"missing_contact_donors"`
	AvgEngagementVelocity float64        `json:"avg_engagement_velocity"`
	DriftBreakdown        map[string]int `json:"drift_breakdown"`
	ChurnBreakdown        map[string]int `json:"churn_breakdown"`
	GhostCount            int            `json:"ghost_count"`
	GhostLifetimeGiving   int64          `json:"ghost_lifetime_giving"`
	RMLoad                []RMStat       `json:"rm_load"`
}

// RMStat is the per-relationship-manager portfolio load.
type RMStat struct {
	AssignedRM     string  `json:"assigned_rm"`
	Donors         int     `json:"donors"`
	LifetimeGiving int64   `json:"lifetime_giving"`
	AvgTouchpoints float64 `json:"avg_touchpoints"`
}

// Build computes the summary from a processed table. generatedAt is the
// pipeline's captured timestamp, so the artifact stays reproducible.
func Build(t *table.Table, generatedAt time.Time) Summary {
	s := Summary{
		GeneratedAt:    generatedAt,
		Donors:         t.Len(),
		DriftBreakdown: make(map[string]int),
		ChurnBreakdown: make(map[string]int),
	}

	velocitySum := 0.0
	velocityRows := 0
	rms := make(map[string]*RMStat)
	touchSums := make(map[string]int64)

	for row := 0; row < t.Len(); row++ {
		lifetime := intOr(t, pipeline.ColLifetimeGiving, row, 0)
		giving24 := intOr(t, pipeline.ColGivingLast24, row, 0)
		s.TotalLifetimeGiving += lifetime
		s.PipelineVelocity += giving24

		if status := t.Cell(pipeline.ColDriftStatus, row); status.Valid {
			s.DriftBreakdown[status.Str]++
			if status.Str == string(pipeline.DriftDormant) {
				s.AtRiskCapital += lifetime
			}
		}
		if cat := t.Cell(pipeline.ColChurnCategory, row); cat.Valid {
			s.ChurnBreakdown[cat.Str]++
			if cat.Str == string(pipeline.ChurnHigh) {
				s.HighRiskDonors++
			}
		}
		if days := t.Cell(pipeline.ColDaysSinceContact, row); days.Valid && days.Int >= missingContactSentinel {
			s.MissingContactDonors++
		}
		if v := t.Cell(pipeline.ColEngagementVelocity, row); v.Valid {
			velocitySum += v.Float
			velocityRows++
		}
		if isGhost(lifetime, giving24) {
			s.GhostCount++
			s.GhostLifetimeGiving += lifetime
		}

		if rm := t.Cell(pipeline.ColAssignedRM, row); rm.Valid && rm.Str != "" {
			stat, ok := rms[rm.Str]
			if !ok {
				stat = &RMStat{AssignedRM: rm.Str}
				rms[rm.Str] = stat
			}
			stat.Donors++
			stat.LifetimeGiving += lifetime
			touchSums[rm.Str] += intOr(t, pipeline.ColTouchpointsLast12, row, 0)
		}
	}

	if velocityRows > 0 {
		s.AvgEngagementVelocity = velocitySum / float64(velocityRows)
	}

	for name, stat := range rms {
		stat.AvgTouchpoints = float64(touchSums[name]) / float64(stat.Donors)
		s.RMLoad = append(s.RMLoad, *stat)
	}
	sort.Slice(s.RMLoad, func(i, j int) bool {
		if s.RMLoad[i].LifetimeGiving != s.RMLoad[j].LifetimeGiving {
			return s.RMLoad[i].LifetimeGiving > s.RMLoad[j].LifetimeGiving
		}
		return s.RMLoad[i].AssignedRM < s.RMLoad[j].AssignedRM
	})

	return s
}

// Ghosts returns the dormant high-value segment, sorted by lifetime giving
// descending: the reactivation hit list.
func Ghosts(t *table.Table) []domain.Donor {
	var out []domain.Donor
	for row := 0; row < t.Len(); row++ {
		lifetime := intOr(t, pipeline.ColLifetimeGiving, row, 0)
		giving24 := intOr(t, pipeline.ColGivingLast24, row, 0)
		if isGhost(lifetime, giving24) {
			out = append(out, DonorAt(t, row))
		}
	}
	sortByLifetime(out)
	return out
}

// AtRisk returns donors whose drift status is High Risk / Dormant, sorted by
// lifetime giving descending.
func AtRisk(t *table.Table) []domain.Donor {
	var out []domain.Donor
	for row := 0; row < t.Len(); row++ {
		if status := t.Cell(pipeline.ColDriftStatus, row); status.Valid && status.Str == string(pipeline.DriftDormant) {
			out = append(out, DonorAt(t, row))
		}
	}
	sortByLifetime(out)
	return out
}

// DonorAt builds the row-level donor view served by the report API.
func DonorAt(t *table.Table, row int) domain.Donor {
	return domain.Donor{
		ID:                  strOr(t, pipeline.ColDonorID, row),
		Industry:            strOr(t, pipeline.ColIndustry, row),
		Geography:           strOr(t, pipeline.ColGeography, row),
		RelationshipStage:   strOr(t, pipeline.ColRelationshipStage, row),
		AssignedRM:          strOr(t, pipeline.ColAssignedRM, row),
		LifetimeGiving:      intOr(t, pipeline.ColLifetimeGiving, row, 0),
		GivingLast24Months:  intOr(t, pipeline.ColGivingLast24, row, 0),
		YearsActive:         floatOr(t, pipeline.ColYearsActive, row),
		DriftRatio:          floatOr(t, pipeline.ColDriftRatio, row),
		DriftStatus:         strOr(t, pipeline.ColDriftStatus, row),
		DaysSinceContact:    intOr(t, pipeline.ColDaysSinceContact, row, 0),
		ContactRecencyScore: floatOr(t, pipeline.ColRecencyScore, row),
		EngagementVelocity:  floatOr(t, pipeline.ColEngagementVelocity, row),
		ChurnRiskScore:      floatOr(t, pipeline.ColChurnScore, row),
		ChurnRiskCategory:   strOr(t, pipeline.ColChurnCategory, row),
		HasRiskSignal:       boolOr(t, pipeline.ColHasRiskSignal, row),
		HasCapacitySignal:   boolOr(t, pipeline.ColHasCapacitySignal, row),
	}
}

// FindDonor locates a donor row by ID, returning domain.ErrNotFound for
// unknown IDs.
func FindDonor(t *table.Table, id string) (domain.Donor, error) {
	for row := 0; row < t.Len(); row++ {
		if c := t.Cell(pipeline.ColDonorID, row); c.Valid && c.Str == id {
			return DonorAt(t, row), nil
		}
	}
	return domain.Donor{}, domain.ErrNotFound
}

func isGhost(lifetime, giving24 int64) bool {
	return lifetime > ghostLifetimeFloor && giving24 == 0
}

func sortByLifetime(donors []domain.Donor) {
	sort.Slice(donors, func(i, j int) bool {
		if donors[i].LifetimeGiving != donors[j].LifetimeGiving {
			return donors[i].LifetimeGiving > donors[j].LifetimeGiving
		}
		return donors[i].ID < donors[j].ID
	})
}

func intOr(t *table.Table, name string, row int, fallback int64) int64 {
	if c := t.Cell(name, row); c.Valid && c.Kind == table.KindInt {
		return c.Int
	}
	return fallback
}

func floatOr(t *table.Table, name string, row int) float64 {
	if c := t.Cell(name, row); c.Valid && c.Kind == table.KindFloat {
		return c.Float
	}
	return 0
}

func strOr(t *table.Table, name string, row int) string {
	if c := t.Cell(name, row); c.Valid && c.Kind == table.KindString {
		return c.Str
	}
	return ""
}

func boolOr(t *table.Table, name string, row int) bool {
	if c := t.Cell(name, row); c.Valid && c.Kind == table.KindBool {
		return c.Bool
	}
	return false
}
