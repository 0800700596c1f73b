package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"adpilot/internal/client/amazonads"
	"adpilot/internal/models"
	"adpilot/internal/repository"
)

const metricsSyncScope = "ads_metrics"

const adsDateLayout = "20060102"

// MetricsSyncService periodically pulls campaigns, keywords and daily
// performance rows from the ad platform and upserts them. It runs on its own
// timer and shares nothing with proposal operations except the repository.
type MetricsSyncService struct {
	Repo   repository.Repository
	Ads    *amazonads.Client
	Logger *zap.Logger
	Flags  *SystemSettingsService
}

type SyncOptions struct {
	LookbackDays int
	PageLimit    int
}

type SyncResult struct {
	Campaigns  int       `json:"campaigns"`
	Keywords   int       `json:"keywords"`
	MetricDays int       `json:"metric_days"`
	MetricRows int       `json:"metric_rows"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
}

func (s *MetricsSyncService) Sync(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	var result SyncResult
	if s == nil || s.Repo == nil || s.Ads == nil {
		return result, nil
	}
	if s.Flags != nil && !s.Flags.IsEnabled(ctx, FeatureMetricsSync, true) {
		return result, nil
	}
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 7
	}

	now := time.Now().UTC()
	if err := s.run(ctx, opts, now, &result); err != nil {
		s.saveState(ctx, now, nil, err, result)
		return result, err
	}
	s.saveState(ctx, now, &result.To, nil, result)
	if s.Logger != nil {
		s.Logger.Info("metrics sync ok",
			zap.Int("campaigns", result.Campaigns),
			zap.Int("keywords", result.Keywords),
			zap.Int("metric_days", result.MetricDays),
			zap.Int("metric_rows", result.MetricRows),
		)
	}
	return result, nil
}

func (s *MetricsSyncService) run(ctx context.Context, opts SyncOptions, now time.Time, result *SyncResult) error {
	campaigns, err := s.Ads.ListCampaigns(ctx, opts.PageLimit)
	if err != nil {
		return err
	}
	campaignRows := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		campaignRows = append(campaignRows, convertCampaign(c, now))
	}
	if err := s.Repo.UpsertCampaigns(ctx, campaignRows); err != nil {
		return err
	}
	result.Campaigns = len(campaignRows)

	keywords, err := s.Ads.ListKeywords(ctx, opts.PageLimit)
	if err != nil {
		return err
	}
	keywordRows := make([]models.Keyword, 0, len(keywords))
	for _, k := range keywords {
		keywordRows = append(keywordRows, convertKeyword(k, now))
	}
	if err := s.Repo.UpsertKeywords(ctx, keywordRows); err != nil {
		return err
	}
	result.Keywords = len(keywordRows)

	from, to := s.window(ctx, opts.LookbackDays, now)
	result.From = from
	result.To = to
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rows, err := s.Ads.CampaignMetrics(ctx, date)
		if err != nil {
			return err
		}
		metricRows := make([]models.DailyMetric, 0, len(rows))
		for _, r := range rows {
			m, ok := convertMetricRow(r, date)
			if ok {
				metricRows = append(metricRows, m)
			}
		}
		if err := s.Repo.UpsertDailyMetrics(ctx, metricRows); err != nil {
			return err
		}
		result.MetricDays++
		result.MetricRows += len(metricRows)
	}
	return nil
}

// window resumes from the stored watermark when it is newer than the
// configured lookback, so restarts do not re-pull the whole range.
func (s *MetricsSyncService) window(ctx context.Context, lookbackDays int, now time.Time) (time.Time, time.Time) {
	to := truncateDay(now)
	from := to.AddDate(0, 0, -lookbackDays)
	state, err := s.Repo.GetSyncState(ctx, metricsSyncScope)
	if err == nil && state != nil && state.WatermarkDate != nil {
		// Re-pull the watermark day itself: its attribution totals keep
		// moving for up to two weeks.
		resume := truncateDay(*state.WatermarkDate)
		if resume.After(from) {
			from = resume
		}
	}
	return from, to
}

func (s *MetricsSyncService) saveState(ctx context.Context, attemptAt time.Time, watermark *time.Time, runErr error, result SyncResult) {
	state := &models.SyncState{
		Scope:         metricsSyncScope,
		LastAttemptAt: &attemptAt,
	}
	if watermark != nil {
		w := truncateDay(*watermark)
		state.WatermarkDate = &w
		state.LastSuccessAt = &attemptAt
	}
	if runErr != nil {
		msg := runErr.Error()
		state.LastError = &msg
	}
	if raw, err := json.Marshal(result); err == nil {
		state.StatsJSON = datatypes.JSON(raw)
	}
	if err := s.Repo.SaveSyncState(ctx, state); err != nil && s.Logger != nil {
		s.Logger.Warn("save sync state failed", zap.Error(err))
	}
}

func convertCampaign(c amazonads.Campaign, now time.Time) models.Campaign {
	item := models.Campaign{
		ID:            strconv.FormatInt(c.CampaignID, 10),
		Name:          c.Name,
		State:         c.State,
		CampaignType:  c.CampaignType,
		TargetingType: c.TargetingType,
		DailyBudget:   decimal.NewFromFloat(c.DailyBudget),
		UpdatedAt:     now,
	}
	if t, err := time.Parse(adsDateLayout, c.StartDate); err == nil {
		item.StartDate = &t
	}
	if t, err := time.Parse(adsDateLayout, c.EndDate); err == nil {
		item.EndDate = &t
	}
	return item
}

func convertKeyword(k amazonads.Keyword, now time.Time) models.Keyword {
	return models.Keyword{
		ID:          strconv.FormatInt(k.KeywordID, 10),
		CampaignID:  strconv.FormatInt(k.CampaignID, 10),
		AdGroupID:   strconv.FormatInt(k.AdGroupID, 10),
		KeywordText: k.KeywordText,
		MatchType:   k.MatchType,
		State:       k.State,
		Bid:         decimal.NewFromFloat(k.Bid),
		UpdatedAt:   now,
	}
}

func convertMetricRow(r amazonads.MetricRow, fallback time.Time) (models.DailyMetric, bool) {
	if r.CampaignID == 0 {
		return models.DailyMetric{}, false
	}
	date := fallback
	if t, err := time.Parse(adsDateLayout, r.Date); err == nil {
		date = t
	}
	return models.DailyMetric{
		CampaignID:      strconv.FormatInt(r.CampaignID, 10),
		Date:            truncateDay(date),
		Impressions:     r.Impressions,
		Clicks:          r.Clicks,
		Orders:          r.Orders,
		UnitsSold:       r.UnitsSold,
		Spend:           decimal.NewFromFloat(r.Cost),
		Sales:           decimal.NewFromFloat(r.Sales),
		PagesRead:       r.PagesRead,
		PageReadRoyalty: decimal.NewFromFloat(r.PageRoyalty),
	}, true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
