package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adpilot/internal/repository"
	"adpilot/internal/roi"
)

// ReportService computes on-demand profitability views from stored daily
// metrics. Reports are never persisted; they are recomputed per request.
type ReportService struct {
	Repo   repository.Repository
	Config roi.Config
}

// ComputeRange builds the ROI report for one campaign (or the synthetic
// all-campaigns aggregate when campaignID is empty) over [from, to].
func (s *ReportService) ComputeRange(ctx context.Context, campaignID string, from, to time.Time) (roi.Report, error) {
	if s == nil || s.Repo == nil {
		return roi.Report{}, fmt.Errorf("report service not configured")
	}
	var idPtr *string
	campaignID = strings.TrimSpace(campaignID)
	if campaignID != "" {
		idPtr = &campaignID
	}
	rows, err := s.Repo.ListDailyMetricsRange(ctx, idPtr, from, to)
	if err != nil {
		return roi.Report{}, err
	}
	totals, start, end := roi.Aggregate(rows)
	report := roi.Compute(totals, s.Config)
	report.CampaignID = campaignID
	report.PeriodStart = start
	report.PeriodEnd = end
	return report, nil
}

type PeriodComparison struct {
	Current    roi.Report     `json:"current"`
	Previous   roi.Report     `json:"previous"`
	Comparison roi.Comparison `json:"comparison"`
}

// ComparePeriods computes two independent reports and their relative change.
func (s *ReportService) ComparePeriods(ctx context.Context, campaignID string, curFrom, curTo, prevFrom, prevTo time.Time) (PeriodComparison, error) {
	current, err := s.ComputeRange(ctx, campaignID, curFrom, curTo)
	if err != nil {
		return PeriodComparison{}, err
	}
	previous, err := s.ComputeRange(ctx, campaignID, prevFrom, prevTo)
	if err != nil {
		return PeriodComparison{}, err
	}
	return PeriodComparison{
		Current:    current,
		Previous:   previous,
		Comparison: roi.Compare(current, previous),
	}, nil
}
