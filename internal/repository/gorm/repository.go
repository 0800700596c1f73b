package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adpilot/internal/models"
	"adpilot/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- campaigns & keywords ----------------------------------------------------

func (s *Store) UpsertCampaigns(ctx context.Context, items []models.Campaign) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"state",
			"campaign_type",
			"targeting_type",
			"daily_budget",
			"start_date",
			"end_date",
			"updated_at",
		}),
	}).CreateInBatches(items, 200).Error
}

func (s *Store) GetCampaignByID(ctx context.Context, id string) (*models.Campaign, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Campaign
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListCampaigns(ctx context.Context, params repository.ListCampaignsParams) ([]models.Campaign, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Campaign{})
	query = applyCampaignFilters(query, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "name")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Campaign
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCampaigns(ctx context.Context, params repository.ListCampaignsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Campaign{})
	query = applyCampaignFilters(query, params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyCampaignFilters(query *gorm.DB, params repository.ListCampaignsParams) *gorm.DB {
	if params.State != nil && strings.TrimSpace(*params.State) != "" {
		query = query.Where("state = ?", strings.TrimSpace(*params.State))
	}
	if params.Name != nil && strings.TrimSpace(*params.Name) != "" {
		query = query.Where("name ILIKE ?", "%"+strings.TrimSpace(*params.Name)+"%")
	}
	return query
}

func (s *Store) UpsertKeywords(ctx context.Context, items []models.Keyword) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"campaign_id",
			"ad_group_id",
			"keyword_text",
			"match_type",
			"state",
			"bid",
			"updated_at",
		}),
	}).CreateInBatches(items, 200).Error
}

func (s *Store) GetKeywordByID(ctx context.Context, id string) (*models.Keyword, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Keyword
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListKeywordsByCampaignID(ctx context.Context, campaignID string) ([]models.Keyword, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Keyword
	if err := s.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("keyword_text asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- daily metrics -----------------------------------------------------------

func (s *Store) UpsertDailyMetrics(ctx context.Context, items []models.DailyMetric) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "campaign_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"impressions",
			"clicks",
			"orders",
			"units_sold",
			"spend",
			"sales",
			"pages_read",
			"page_read_royalty",
			"updated_at",
		}),
	}).CreateInBatches(items, 200).Error
}

func (s *Store) ListDailyMetricsRange(ctx context.Context, campaignID *string, from, to time.Time) ([]models.DailyMetric, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.DailyMetric{}).
		Where("date >= ?", from).
		Where("date <= ?", to)
	if campaignID != nil && strings.TrimSpace(*campaignID) != "" {
		query = query.Where("campaign_id = ?", strings.TrimSpace(*campaignID))
	}
	var items []models.DailyMetric
	if err := query.Order("date asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListDailyMetrics(ctx context.Context, params repository.ListDailyMetricsParams) ([]models.DailyMetric, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.DailyMetric{})
	if params.CampaignID != nil && strings.TrimSpace(*params.CampaignID) != "" {
		query = query.Where("campaign_id = ?", strings.TrimSpace(*params.CampaignID))
	}
	if params.From != nil && !params.From.IsZero() {
		query = query.Where("date >= ?", *params.From)
	}
	if params.To != nil && !params.To.IsZero() {
		query = query.Where("date <= ?", *params.To)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "date")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.DailyMetric
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- change proposals ----------------------------------------------------------

func (s *Store) InsertChangeProposal(ctx context.Context, item *models.ChangeProposal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetChangeProposalByID(ctx context.Context, id uint64) (*models.ChangeProposal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.ChangeProposal
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListChangeProposals(ctx context.Context, params repository.ListChangeProposalsParams) ([]models.ChangeProposal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ChangeProposal{})
	query = applyProposalFilters(query, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.ChangeProposal
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountChangeProposals(ctx context.Context, params repository.ListChangeProposalsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ChangeProposal{})
	query = applyProposalFilters(query, params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyProposalFilters(query *gorm.DB, params repository.ListChangeProposalsParams) *gorm.DB {
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.Kind != nil && strings.TrimSpace(*params.Kind) != "" {
		query = query.Where("kind = ?", strings.TrimSpace(*params.Kind))
	}
	if params.TargetID != nil && strings.TrimSpace(*params.TargetID) != "" {
		query = query.Where("target_id = ?", strings.TrimSpace(*params.TargetID))
	}
	return query
}

// TransitionChangeProposalStatus performs the check-and-set in a single
// UPDATE: the WHERE clause carries the expected prior status, so a stale
// transition affects zero rows instead of clobbering a concurrent reviewer.
func (s *Store) TransitionChangeProposalStatus(ctx context.Context, id uint64, from, to string, updates map[string]any) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	values := map[string]any{"status": to}
	for k, v := range updates {
		values[k] = v
	}
	res := s.db.WithContext(ctx).
		Model(&models.ChangeProposal{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --- change history ------------------------------------------------------------

func (s *Store) InsertChangeHistory(ctx context.Context, item *models.ChangeHistoryEntry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListChangeHistoryByProposalID(ctx context.Context, proposalID uint64) ([]models.ChangeHistoryEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.ChangeHistoryEntry
	if err := s.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- sync state ------------------------------------------------------------------

func (s *Store) GetSyncState(ctx context.Context, scope string) (*models.SyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.SyncState
	err := s.db.WithContext(ctx).Where("scope = ?", scope).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveSyncState(ctx context.Context, state *models.SyncState) error {
	if s == nil || s.db == nil || state == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"watermark_date",
			"last_success_at",
			"last_attempt_at",
			"last_error",
			"stats_json",
		}),
	}).Create(state).Error
}

// --- system settings ---------------------------------------------------------------

func (s *Store) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Key) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value",
			"description",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.SystemSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SystemSetting
	if err := s.db.WithContext(ctx).
		Model(&models.SystemSetting{}).
		Order("key asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers -------------------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

var _ repository.Repository = (*Store)(nil)
