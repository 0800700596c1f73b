// Package roi derives profitability metrics from daily performance rows.
// Everything here is pure: no storage, no clock, safe for concurrent use.
package roi

import (
	"time"

	"github.com/shopspring/decimal"

	"adpilot/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Config is the royalty basis used to turn sales attribution into profit.
// Supplied once at startup, read-only afterwards.
type Config struct {
	RoyaltyPerUnit decimal.Decimal
	PageReadRate   decimal.Decimal
	// BreakEvenFallbackACOS is reported when royalty economics exist but the
	// period has zero attributed sales. Heuristic constant, not derived.
	BreakEvenFallbackACOS decimal.Decimal
}

// Totals is the fold of a period's daily rows.
type Totals struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Orders      int64 `json:"orders"`
	UnitsSold   int64 `json:"units_sold"`

	Spend           decimal.Decimal `json:"spend"`
	Sales           decimal.Decimal `json:"sales"`
	PageReadRoyalty decimal.Decimal `json:"page_read_royalty"`
}

// Report is a derived, on-demand view over one subject and date range.
// PeriodStart/PeriodEnd are the min/max dates actually present in the input,
// nil when the period had no rows.
type Report struct {
	CampaignID  string     `json:"campaign_id,omitempty"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`

	Totals Totals `json:"totals"`

	ACOS               decimal.Decimal `json:"acos"`
	ROAS               decimal.Decimal `json:"roas"`
	CTR                decimal.Decimal `json:"ctr"`
	CPC                decimal.Decimal `json:"cpc"`
	ConversionRate     decimal.Decimal `json:"conversion_rate"`
	EstimatedRoyalties decimal.Decimal `json:"estimated_royalties"`
	EstimatedProfit    decimal.Decimal `json:"estimated_profit"`
	ProfitMargin       decimal.Decimal `json:"profit_margin"`
	BreakEvenACOS      decimal.Decimal `json:"break_even_acos"`
}

// Aggregate folds daily rows into period totals. Input order does not
// matter; the reported bounds are the min/max dates present, not the query
// window. Zero rows yield all-zero totals and nil bounds.
func Aggregate(rows []models.DailyMetric) (Totals, *time.Time, *time.Time) {
	totals := Totals{
		Spend:           decimal.Zero,
		Sales:           decimal.Zero,
		PageReadRoyalty: decimal.Zero,
	}
	var start, end *time.Time
	for i := range rows {
		row := rows[i]
		totals.Impressions += row.Impressions
		totals.Clicks += row.Clicks
		totals.Orders += row.Orders
		totals.UnitsSold += row.UnitsSold
		totals.Spend = totals.Spend.Add(row.Spend)
		totals.Sales = totals.Sales.Add(row.Sales)
		totals.PageReadRoyalty = totals.PageReadRoyalty.Add(row.PageReadRoyalty)

		d := row.Date
		if start == nil || d.Before(*start) {
			start = &d
		}
		if end == nil || d.After(*end) {
			end = &d
		}
	}
	return totals, start, end
}

// Compute derives the ratio set from totals. Every ratio uses the same
// zero-guard policy: a zero denominator yields zero, never NaN or Inf.
func Compute(totals Totals, cfg Config) Report {
	r := Report{
		Totals:             totals,
		ACOS:               decimal.Zero,
		ROAS:               decimal.Zero,
		CTR:                decimal.Zero,
		CPC:                decimal.Zero,
		ConversionRate:     decimal.Zero,
		EstimatedRoyalties: decimal.Zero,
		EstimatedProfit:    decimal.Zero,
		ProfitMargin:       decimal.Zero,
		BreakEvenACOS:      decimal.Zero,
	}

	clicks := decimal.NewFromInt(totals.Clicks)
	impressions := decimal.NewFromInt(totals.Impressions)
	orders := decimal.NewFromInt(totals.Orders)
	units := decimal.NewFromInt(totals.UnitsSold)

	if !totals.Sales.IsZero() {
		r.ACOS = totals.Spend.Div(totals.Sales).Mul(hundred)
	}
	if !totals.Spend.IsZero() {
		r.ROAS = totals.Sales.Div(totals.Spend)
	}
	if !impressions.IsZero() {
		r.CTR = clicks.Div(impressions).Mul(hundred)
	}
	if !clicks.IsZero() {
		r.CPC = totals.Spend.Div(clicks)
		r.ConversionRate = orders.Div(clicks).Mul(hundred)
	}

	r.EstimatedRoyalties = units.Mul(cfg.RoyaltyPerUnit).Add(totals.PageReadRoyalty)
	r.EstimatedProfit = r.EstimatedRoyalties.Sub(totals.Spend)
	if !r.EstimatedRoyalties.IsZero() {
		r.ProfitMargin = r.EstimatedProfit.Div(r.EstimatedRoyalties).Mul(hundred)
	}

	switch {
	case totals.Sales.IsPositive():
		r.BreakEvenACOS = r.EstimatedRoyalties.Div(totals.Sales).Mul(hundred)
	case cfg.RoyaltyPerUnit.IsPositive():
		r.BreakEvenACOS = cfg.BreakEvenFallbackACOS
	}

	return r
}
