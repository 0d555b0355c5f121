package pipeline

import (
	"strconv"
	"strings"
	"time"

	"donorpulse/internal/table"
)

// industrySynonyms maps lower-cased raw industry values to canonical display
// labels. Tech and Technology merge; Software stays its own segment.
var industrySynonyms = map[string]string{
	"tech":       "Technology",
	"technology": "Technology",
	"software":   "Software",
	"ai":         "AI",
}

// Fixed per-column date layouts. Formats are not auto-detected: the CRM
// exports first gift dates in ISO form and contact dates day-first.
const (
	firstGiftLayout   = "2006-01-02"
	lastContactLayout = "02/01/2006"
)

// normalizeStage converts raw string cells into typed cells. Malformed
// values become missing, never errors; columns that are absent altogether
// are skipped so the dependent features simply do not get computed.
type normalizeStage struct{}

func (normalizeStage) Name() string { return "normalize" }

func (normalizeStage) Apply(pc Context, t *table.Table) error {
	if t.Has(ColIndustry) {
		if err := t.SetColumn(ColIndustry, normalizeIndustry(t.Column(ColIndustry))); err != nil {
			return err
		}
	}

	for _, name := range []string{ColLifetimeGiving, ColGivingLast24, ColTouchpointsLast12} {
		if !t.Has(name) {
			pc.Log.Warn().Str("column", name).Msg("numeric column absent, dependent features will be skipped")
			continue
		}
		if err := t.SetColumn(name, normalizeInts(t.Column(name))); err != nil {
			return err
		}
	}

	dateLayouts := []struct {
		name   string
		layout string
	}{
		{ColFirstGiftDate, firstGiftLayout},
		{ColLastContactDate, lastContactLayout},
	}
	for _, dc := range dateLayouts {
		if !t.Has(dc.name) {
			pc.Log.Warn().Str("column", dc.name).Msg("date column absent, dependent features will be skipped")
			continue
		}
		if err := t.SetColumn(dc.name, normalizeDates(t.Column(dc.name), dc.layout)); err != nil {
			return err
		}
	}

	if t.Has(ColGeography) {
		if err := t.SetColumn(ColGeography, normalizeGeography(t.Column(ColGeography))); err != nil {
			return err
		}
	}

	return nil
}

func normalizeIndustry(raw []table.Cell) []table.Cell {
	out := make([]table.Cell, len(raw))
	for i, c := range raw {
		if !c.Valid {
			out[i] = table.Missing(table.KindString)
			continue
		}
		v := strings.TrimSpace(strings.ToLower(c.Str))
		if canonical, ok := industrySynonyms[v]; ok {
			v = canonical
		}
		out[i] = table.String(v)
	}
	return out
}

// normalizeInts parses integer cells, tolerating comma thousands separators.
// Unparseable values become missing and are treated as zero downstream.
func normalizeInts(raw []table.Cell) []table.Cell {
	out := make([]table.Cell, len(raw))
	for i, c := range raw {
		if !c.Valid {
			out[i] = table.Missing(table.KindInt)
			continue
		}
		v := strings.ReplaceAll(strings.TrimSpace(c.Str), ",", "")
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			out[i] = table.Missing(table.KindInt)
			continue
		}
		out[i] = table.Int(n)
	}
	return out
}

func normalizeDates(raw []table.Cell, layout string) []table.Cell {
	out := make([]table.Cell, len(raw))
	for i, c := range raw {
		if !c.Valid {
			out[i] = table.Missing(table.KindDate)
			continue
		}
		d, err := time.Parse(layout, strings.TrimSpace(c.Str))
		if err != nil {
			out[i] = table.Missing(table.KindDate)
			continue
		}
		out[i] = table.Date(d)
	}
	return out
}

// normalizeGeography collapses em-dash and en-dash variants to the ASCII
// hyphen and trims surrounding whitespace, so "US — CA" and "US – CA" both
// match "US - CA" filters downstream.
func normalizeGeography(raw []table.Cell) []table.Cell {
	replacer := strings.NewReplacer("—", "-", "–", "-")
	out := make([]table.Cell, len(raw))
	for i, c := range raw {
		if !c.Valid {
			out[i] = table.Missing(table.KindString)
			continue
		}
		out[i] = table.String(strings.TrimSpace(replacer.Replace(c.Str)))
	}
	return out
}
