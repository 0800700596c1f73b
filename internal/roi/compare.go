package roi

import (
	"github.com/shopspring/decimal"
)

// Comparison is the relative change between two independently computed
// reports, as percentages. Pure data; neither input report is touched.
type Comparison struct {
	SpendChangePct       decimal.Decimal `json:"spend_change_pct"`
	SalesChangePct       decimal.Decimal `json:"sales_change_pct"`
	ACOSChangePct        decimal.Decimal `json:"acos_change_pct"`
	ProfitChangePct      decimal.Decimal `json:"profit_change_pct"`
	ImpressionsChangePct decimal.Decimal `json:"impressions_change_pct"`
	ClicksChangePct      decimal.Decimal `json:"clicks_change_pct"`
}

// Compare computes percentage change from previous to current for the
// headline metrics. When previous is zero the change is reported as 100 if
// current is positive and 0 otherwise: "appeared from nothing" signals a
// full jump instead of dividing by zero. Intentional asymmetry, keep as is.
func Compare(current, previous Report) Comparison {
	return Comparison{
		SpendChangePct:       pctChange(current.Totals.Spend, previous.Totals.Spend),
		SalesChangePct:       pctChange(current.Totals.Sales, previous.Totals.Sales),
		ACOSChangePct:        pctChange(current.ACOS, previous.ACOS),
		ProfitChangePct:      pctChange(current.EstimatedProfit, previous.EstimatedProfit),
		ImpressionsChangePct: pctChange(decimal.NewFromInt(current.Totals.Impressions), decimal.NewFromInt(previous.Totals.Impressions)),
		ClicksChangePct:      pctChange(decimal.NewFromInt(current.Totals.Clicks), decimal.NewFromInt(previous.Totals.Clicks)),
	}
}

func pctChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}
