package roi

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"adpilot/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertRound2(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if got.Round(2).String() != want {
		t.Fatalf("%s=%s want %s", name, got.Round(2), want)
	}
}

func TestAggregate_Empty(t *testing.T) {
	totals, start, end := Aggregate(nil)
	if start != nil || end != nil {
		t.Fatalf("bounds should be nil for empty input, got %v %v", start, end)
	}
	if totals.Impressions != 0 || totals.Clicks != 0 || totals.Orders != 0 || totals.UnitsSold != 0 {
		t.Fatalf("counts should be zero, got %+v", totals)
	}
	if !totals.Spend.IsZero() || !totals.Sales.IsZero() || !totals.PageReadRoyalty.IsZero() {
		t.Fatalf("money totals should be zero, got %+v", totals)
	}
}

func TestAggregate_UnorderedRows(t *testing.T) {
	d1 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	rows := []models.DailyMetric{
		{Date: d1, Impressions: 100, Clicks: 3, Spend: dec("1.50"), Sales: dec("9.99")},
		{Date: d2, Impressions: 200, Clicks: 5, Orders: 1, UnitsSold: 1, Spend: dec("2.25"), Sales: dec("0")},
		{Date: d3, Impressions: 50, PagesRead: 400, PageReadRoyalty: dec("1.80")},
	}
	totals, start, end := Aggregate(rows)
	if start == nil || !start.Equal(d2) {
		t.Fatalf("start=%v want %v", start, d2)
	}
	if end == nil || !end.Equal(d1) {
		t.Fatalf("end=%v want %v", end, d1)
	}
	if totals.Impressions != 350 || totals.Clicks != 8 || totals.Orders != 1 || totals.UnitsSold != 1 {
		t.Fatalf("unexpected counts %+v", totals)
	}
	if totals.Spend.String() != "3.75" {
		t.Fatalf("spend=%s want 3.75", totals.Spend)
	}
	if totals.PageReadRoyalty.String() != "1.8" {
		t.Fatalf("pageReadRoyalty=%s want 1.8", totals.PageReadRoyalty)
	}
}

func TestCompute_TypicalMonth(t *testing.T) {
	totals := Totals{
		Impressions: 32830,
		Clicks:      331,
		Orders:      48,
		UnitsSold:   48,
		Spend:       dec("259.40"),
		Sales:       dec("767.52"),
	}
	cfg := Config{
		RoyaltyPerUnit:        dec("2.80"),
		BreakEvenFallbackACOS: dec("30"),
	}
	r := Compute(totals, cfg)

	assertRound2(t, "acos", r.ACOS, "33.8")
	assertRound2(t, "roas", r.ROAS, "2.96")
	assertRound2(t, "ctr", r.CTR, "1.01")
	assertRound2(t, "cpc", r.CPC, "0.78")
	assertRound2(t, "conversion", r.ConversionRate, "14.5")
	if r.EstimatedRoyalties.String() != "134.4" {
		t.Fatalf("royalties=%s want 134.4", r.EstimatedRoyalties)
	}
	if r.EstimatedProfit.String() != "-125" {
		t.Fatalf("profit=%s want -125", r.EstimatedProfit)
	}
	assertRound2(t, "margin", r.ProfitMargin, "-93.01")
	assertRound2(t, "breakEven", r.BreakEvenACOS, "17.51")
}

func TestCompute_ZeroDenominators(t *testing.T) {
	r := Compute(Totals{Spend: decimal.Zero, Sales: decimal.Zero, PageReadRoyalty: decimal.Zero}, Config{})
	for name, v := range map[string]decimal.Decimal{
		"acos":          r.ACOS,
		"roas":          r.ROAS,
		"ctr":           r.CTR,
		"cpc":           r.CPC,
		"conversion":    r.ConversionRate,
		"royalties":     r.EstimatedRoyalties,
		"profit":        r.EstimatedProfit,
		"margin":        r.ProfitMargin,
		"breakEvenAcos": r.BreakEvenACOS,
	} {
		if !v.IsZero() {
			t.Fatalf("%s=%s want 0", name, v)
		}
	}
}

func TestCompute_BreakEvenFallbackWithoutSales(t *testing.T) {
	totals := Totals{
		Clicks:    12,
		UnitsSold: 2,
		Spend:     dec("4.80"),
		Sales:     decimal.Zero,
	}
	cfg := Config{
		RoyaltyPerUnit:        dec("2.10"),
		BreakEvenFallbackACOS: dec("30"),
	}
	r := Compute(totals, cfg)
	if r.BreakEvenACOS.String() != "30" {
		t.Fatalf("breakEven=%s want fallback 30", r.BreakEvenACOS)
	}
	if !r.ACOS.IsZero() {
		t.Fatalf("acos=%s want 0 with zero sales", r.ACOS)
	}
}

func TestCompute_NoRoyaltyBasisNoFallback(t *testing.T) {
	totals := Totals{Spend: dec("10"), Sales: decimal.Zero}
	r := Compute(totals, Config{BreakEvenFallbackACOS: dec("30")})
	if !r.BreakEvenACOS.IsZero() {
		t.Fatalf("breakEven=%s want 0 when no royalty basis", r.BreakEvenACOS)
	}
}

func TestCompute_PageReadRoyaltyInProfit(t *testing.T) {
	totals := Totals{
		UnitsSold:       3,
		Spend:           dec("5.00"),
		Sales:           dec("29.97"),
		PageReadRoyalty: dec("4.50"),
	}
	cfg := Config{RoyaltyPerUnit: dec("2.00")}
	r := Compute(totals, cfg)
	if r.EstimatedRoyalties.String() != "10.5" {
		t.Fatalf("royalties=%s want 10.5", r.EstimatedRoyalties)
	}
	if r.EstimatedProfit.String() != "5.5" {
		t.Fatalf("profit=%s want 5.5", r.EstimatedProfit)
	}
}
