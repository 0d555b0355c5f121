package domain

// Donor is the row-level view of a processed donor record served to report
// consumers. Zero values stand in for columns the pipeline skipped.
type Donor struct {
	ID                  string  `json:"donor_id"`
	Industry            string  `json:"industry"`
	Geography           string  `json:"geography"`
	RelationshipStage   string  `json:"relationship_stage"`
	AssignedRM          string  `json:"assigned_rm"`
	LifetimeGiving      int64   `json:"lifetime_giving"`
	GivingLast24Months  int64   `json:"giving_last_24_months"`
	YearsActive         float64 `json:"years_active"`
	DriftRatio          float64 `json:"drift_ratio"`
	DriftStatus         string  `json:"drift_status"`
	DaysSinceContact    int64   `json:"days_since_last_contact"`
	ContactRecencyScore float64 `json:"contact_recency_score"`
	EngagementVelocity  float64 `json:"engagement_velocity"`
	ChurnRiskScore      float64 `json:"churn_risk_score"`
	ChurnRiskCategory   string  `json:"churn_risk_category"`
	HasRiskSignal       bool    `json:"has_risk_signal"`
	HasCapacitySignal   bool    `json:"has_capacity_signal"`
}
