package roi

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCompare_SelfIsAllZero(t *testing.T) {
	r := Compute(Totals{
		Impressions: 1000,
		Clicks:      20,
		Orders:      2,
		UnitsSold:   2,
		Spend:       dec("12.00"),
		Sales:       dec("39.98"),
	}, Config{RoyaltyPerUnit: dec("2.50")})

	c := Compare(r, r)
	for name, v := range map[string]decimal.Decimal{
		"spend":       c.SpendChangePct,
		"sales":       c.SalesChangePct,
		"acos":        c.ACOSChangePct,
		"profit":      c.ProfitChangePct,
		"impressions": c.ImpressionsChangePct,
		"clicks":      c.ClicksChangePct,
	} {
		if !v.IsZero() {
			t.Fatalf("%s change=%s want 0", name, v)
		}
	}
}

func TestCompare_Basic(t *testing.T) {
	prev := Report{Totals: Totals{Spend: dec("100"), Sales: dec("200"), Impressions: 1000, Clicks: 10}}
	cur := Report{Totals: Totals{Spend: dec("150"), Sales: dec("100"), Impressions: 2000, Clicks: 5}}
	c := Compare(cur, prev)
	if c.SpendChangePct.String() != "50" {
		t.Fatalf("spend change=%s want 50", c.SpendChangePct)
	}
	if c.SalesChangePct.String() != "-50" {
		t.Fatalf("sales change=%s want -50", c.SalesChangePct)
	}
	if c.ImpressionsChangePct.String() != "100" {
		t.Fatalf("impressions change=%s want 100", c.ImpressionsChangePct)
	}
	if c.ClicksChangePct.String() != "-50" {
		t.Fatalf("clicks change=%s want -50", c.ClicksChangePct)
	}
}

// A metric appearing from a zero baseline reports a flat 100, and a metric
// that stays at zero reports 0. Negative over a zero baseline also reports 0.
func TestCompare_ZeroBaseline(t *testing.T) {
	prev := Report{Totals: Totals{Spend: decimal.Zero}}
	cur := Report{Totals: Totals{Spend: dec("42")}}
	c := Compare(cur, prev)
	if c.SpendChangePct.String() != "100" {
		t.Fatalf("spend change=%s want 100", c.SpendChangePct)
	}
	if !c.SalesChangePct.IsZero() {
		t.Fatalf("sales change=%s want 0", c.SalesChangePct)
	}

	prev.EstimatedProfit = decimal.Zero
	cur.EstimatedProfit = dec("-5")
	c = Compare(cur, prev)
	if !c.ProfitChangePct.IsZero() {
		t.Fatalf("profit change=%s want 0 for negative over zero baseline", c.ProfitChangePct)
	}
}
