package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"donorpulse/internal/http/handlers"
	"donorpulse/internal/http/httpapi"
	"donorpulse/internal/pipeline"
	"donorpulse/internal/report"
	"donorpulse/internal/table"
)

const fixtureCSV = "Donor_ID,First_Gift_Date,Last_Contact_Date,Lifetime_Giving,Giving_Last_24_Months,Touchpoints_Last_12_Months,Assigned_RM,Notes\n" +
	"D001,2019-01-15,,750000,0,0,Alice,dormant foundation\n" +
	"D002,2023-02-01,08/01/2026,30000,30000,10,Ben,engaged and committed\n"

func testApp(t *testing.T) *handlers.App {
	t.Helper()
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	tbl, err := table.ReadCSV(strings.NewReader(fixtureCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if err := pipeline.NewRunner(now, zerolog.Nop()).Run(tbl); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return handlers.NewApp(zerolog.Nop(), tbl, report.Build(tbl, now))
}

func TestPortfolioSummaryHandler(t *testing.T) {
	app := testApp(t)

	rr := httptest.NewRecorder()
	app.PortfolioSummary(rr, httptest.NewRequest("GET", "/v1/summary", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var payload report.Summary
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Donors != 2 {
		t.Fatalf("donors = %d, want 2", payload.Donors)
	}
	if payload.GhostCount != 1 || payload.GhostLifetimeGiving != 750000 {
		t.Fatalf("ghost aggregates wrong: %+v", payload)
	}
}

func TestSegmentGhostsHandler(t *testing.T) {
	app := testApp(t)

	rr := httptest.NewRecorder()
	app.SegmentGhosts(rr, httptest.NewRequest("GET", "/v1/segments/ghosts", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var payload struct {
		Count int `json:"count"`
		Items []struct {
			DonorID        string `json:"donor_id"`
			LifetimeGiving int64  `json:"lifetime_giving"`
		} `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 1 || payload.Items[0].DonorID != "D001" {
		t.Fatalf("unexpected ghost segment: %+v", payload)
	}
}

func TestDonorByIDViaRouter(t *testing.T) {
	app := testApp(t)
	router := httpapi.NewRouter(app, zerolog.Nop(), nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/donors/D002", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var donor struct {
		ID                string `json:"donor_id"`
		ChurnRiskCategory string `json:"churn_risk_category"`
		HasCapacitySignal bool   `json:"has_capacity_signal"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&donor); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if donor.ID != "D002" || !donor.HasCapacitySignal {
		t.Fatalf("unexpected donor payload: %+v", donor)
	}
}

func TestDonorByIDNotFound(t *testing.T) {
	app := testApp(t)
	router := httpapi.NewRouter(app, zerolog.Nop(), nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/donors/D999", nil))

	if rr.Code != 404 {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "not_found" {
		t.Fatalf("error code = %q, want not_found", payload.Error.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	app := testApp(t)

	rr := httptest.NewRecorder()
	app.Health(rr, httptest.NewRequest("GET", "/v1/healthz", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var payload struct {
		Status string `json:"status"`
		Donors int    `json:"donors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "ok" || payload.Donors != 2 {
		t.Fatalf("unexpected health payload: %+v", payload)
	}
}
