package service

import (
	"context"
	"testing"
	"time"

	"adpilot/internal/client/amazonads"
	"adpilot/internal/models"
)

func TestConvertCampaign(t *testing.T) {
	now := time.Now().UTC()
	in := amazonads.Campaign{
		CampaignID:    778899,
		Name:          "SP - Thriller Box Set",
		State:         "enabled",
		CampaignType:  "sponsoredProducts",
		TargetingType: "manual",
		DailyBudget:   12.5,
		StartDate:     "20260301",
	}
	out := convertCampaign(in, now)
	if out.ID != "778899" {
		t.Fatalf("id=%q want 778899", out.ID)
	}
	if out.DailyBudget.String() != "12.5" {
		t.Fatalf("budget=%s want 12.5", out.DailyBudget)
	}
	if out.StartDate == nil || !out.StartDate.Equal(day(2026, 3, 1)) {
		t.Fatalf("start=%v want 2026-03-01", out.StartDate)
	}
	if out.EndDate != nil {
		t.Fatalf("end=%v want nil for open-ended campaign", out.EndDate)
	}
}

func TestConvertMetricRow(t *testing.T) {
	fallback := day(2026, 4, 10)
	in := amazonads.MetricRow{
		CampaignID:  778899,
		Date:        "20260409",
		Impressions: 500,
		Clicks:      7,
		Cost:        3.21,
		Sales:       9.99,
		Orders:      1,
		UnitsSold:   1,
		PagesRead:   230,
		PageRoyalty: 1.03,
	}
	out, ok := convertMetricRow(in, fallback)
	if !ok {
		t.Fatalf("row dropped")
	}
	if !out.Date.Equal(day(2026, 4, 9)) {
		t.Fatalf("date=%v want report date, not fallback", out.Date)
	}
	if out.PagesRead != 230 || out.PageReadRoyalty.String() != "1.03" {
		t.Fatalf("kenp fields=%d %s", out.PagesRead, out.PageReadRoyalty)
	}

	in.Date = "not-a-date"
	out, ok = convertMetricRow(in, fallback)
	if !ok || !out.Date.Equal(fallback) {
		t.Fatalf("date=%v want fallback on unparseable report date", out.Date)
	}

	in.CampaignID = 0
	if _, ok := convertMetricRow(in, fallback); ok {
		t.Fatalf("row without campaign id must be dropped")
	}
}

func TestSyncWindow_ResumesFromWatermark(t *testing.T) {
	repo := newStubRepo()
	svc := &MetricsSyncService{Repo: repo}
	now := time.Date(2026, 5, 20, 14, 30, 0, 0, time.UTC)

	from, to := svc.window(context.Background(), 7, now)
	if !to.Equal(day(2026, 5, 20)) {
		t.Fatalf("to=%v want today", to)
	}
	if !from.Equal(day(2026, 5, 13)) {
		t.Fatalf("from=%v want lookback start", from)
	}

	// A watermark inside the lookback narrows the window; the watermark day
	// itself is re-pulled.
	watermark := day(2026, 5, 18)
	if err := repo.SaveSyncState(context.Background(), &models.SyncState{Scope: "ads_metrics", WatermarkDate: &watermark}); err != nil {
		t.Fatalf("err=%v", err)
	}
	from, _ = svc.window(context.Background(), 7, now)
	if !from.Equal(watermark) {
		t.Fatalf("from=%v want watermark %v", from, watermark)
	}

	// A stale watermark older than the lookback does not widen the window.
	stale := day(2026, 4, 1)
	if err := repo.SaveSyncState(context.Background(), &models.SyncState{Scope: "ads_metrics", WatermarkDate: &stale}); err != nil {
		t.Fatalf("err=%v", err)
	}
	from, _ = svc.window(context.Background(), 7, now)
	if !from.Equal(day(2026, 5, 13)) {
		t.Fatalf("from=%v want lookback start for stale watermark", from)
	}
}

func TestSync_NoClientIsNoop(t *testing.T) {
	svc := &MetricsSyncService{Repo: newStubRepo()}
	result, err := svc.Sync(context.Background(), SyncOptions{LookbackDays: 7})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if result.Campaigns != 0 || result.MetricDays != 0 {
		t.Fatalf("result=%+v want zero-value noop", result)
	}
}
