// Package pipeline derives donor engagement metrics over an in-memory table.
// Five ordered stages each consume columns produced by earlier stages and
// append new ones: type normalization, tenure annualization, drift scoring,
// churn risk scoring, and notes signal extraction.
package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"donorpulse/internal/table"
)

// Input column names, as exported by the upstream CRM.
const (
	ColDonorID           = "Donor_ID"
	ColFirstGiftDate     = "First_Gift_Date"
	ColLastContactDate   = "Last_Contact_Date"
	ColLifetimeGiving    = "Lifetime_Giving"
	ColGivingLast24      = "Giving_Last_24_Months"
	ColTouchpointsLast12 = "Touchpoints_Last_12_Months"
	ColIndustry          = "Industry"
	ColGeography         = "Geography"
	ColRelationshipStage = "Relationship_Stage"
	ColAssignedRM        = "Assigned_RM"
	ColNotes             = "Notes"
)

// Derived column names, in output order.
const (
	ColYearsActive        = "Years_Active"
	ColAnnualizedLTV      = "Annualized_Lifetime_Value"
	ColRecentAnnualized   = "Recent_Annualized_Giving"
	ColDriftRatio         = "Drift_Ratio"
	ColDriftStatus        = "Drift_Status"
	ColDaysSinceContact   = "Days_Since_Last_Contact"
	ColRecencyScore       = "Contact_Recency_Score"
	ColEngagementVelocity = "Engagement_Velocity"
	ColChurnScore         = "Churn_Risk_Score"
	ColChurnCategory      = "Churn_Risk_Category"
	ColHasRiskSignal      = "Has_Risk_Signal"
	ColHasCapacitySignal  = "Has_Capacity_Signal"
)

// Context carries the per-run inputs every stage needs. Now is captured once
// when the run starts; stages never read the clock themselves, which keeps
// the transform deterministic for a given input and timestamp.
type Context struct {
	Now time.Time
	Log zerolog.Logger
}

// Stage is one step of the derived-metrics pipeline. Apply mutates the table
// in place, adding derived columns. A stage whose input columns are absent
// skips its features and returns nil; only structural failures are errors.
type Stage interface {
	Name() string
	Apply(pc Context, t *table.Table) error
}

// Stages returns the pipeline stages in dependency order.
func Stages() []Stage {
	return []Stage{
		normalizeStage{},
		annualizeStage{},
		driftStage{},
		churnStage{},
		signalStage{},
	}
}

// Runner executes the full pipeline against a table.
type Runner struct {
	now time.Time
	log zerolog.Logger
}

// NewRunner creates a runner bound to a single observation timestamp.
func NewRunner(now time.Time, log zerolog.Logger) *Runner {
	return &Runner{now: now, log: log}
}

// Run applies every stage in order, mutating t in place.
func (r *Runner) Run(t *table.Table) error {
	pc := Context{Now: r.now, Log: r.log}
	r.log.Info().Int("rows", t.Len()).Int("columns", len(t.Columns())).Msg("pipeline start")

	for _, stage := range Stages() {
		started := time.Now()
		if err := stage.Apply(pc, t); err != nil {
			return fmt.Errorf("pipeline: stage %s: %w", stage.Name(), err)
		}
		r.log.Debug().
			Str("stage", stage.Name()).
			Dur("elapsed", time.Since(started)).
			Msg("stage complete")
	}

	r.log.Info().Int("rows", t.Len()).Int("columns", len(t.Columns())).Msg("pipeline complete")
	return nil
}

// intAt reads an integer cell, reporting presence.
func intAt(t *table.Table, name string, row int) (int64, bool) {
	c := t.Cell(name, row)
	if !c.Valid || c.Kind != table.KindInt {
		return 0, false
	}
	return c.Int, true
}

// floatAt reads a float cell, reporting presence.
func floatAt(t *table.Table, name string, row int) (float64, bool) {
	c := t.Cell(name, row)
	if !c.Valid || c.Kind != table.KindFloat {
		return 0, false
	}
	return c.Float, true
}

// dateAt reads a date cell, reporting presence.
func dateAt(t *table.Table, name string, row int) (time.Time, bool) {
	c := t.Cell(name, row)
	if !c.Valid || c.Kind != table.KindDate {
		return time.Time{}, false
	}
	return c.Date, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round1 rounds to one decimal, the precision the scores are reported at.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
