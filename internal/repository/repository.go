package repository

import (
	"context"
	"time"

	"adpilot/internal/models"
)

// Repository is the persistence boundary for campaigns, keywords, daily
// metrics, change proposals and the audit trail.
type Repository interface {
	// Campaigns & keywords (keyed upsert from sync / ingestion).
	UpsertCampaigns(ctx context.Context, items []models.Campaign) error
	GetCampaignByID(ctx context.Context, id string) (*models.Campaign, error)
	ListCampaigns(ctx context.Context, params ListCampaignsParams) ([]models.Campaign, error)
	CountCampaigns(ctx context.Context, params ListCampaignsParams) (int64, error)

	UpsertKeywords(ctx context.Context, items []models.Keyword) error
	GetKeywordByID(ctx context.Context, id string) (*models.Keyword, error)
	ListKeywordsByCampaignID(ctx context.Context, campaignID string) ([]models.Keyword, error)

	// Daily metrics (last-write-wins on (campaign, date)).
	UpsertDailyMetrics(ctx context.Context, items []models.DailyMetric) error
	ListDailyMetricsRange(ctx context.Context, campaignID *string, from, to time.Time) ([]models.DailyMetric, error)
	ListDailyMetrics(ctx context.Context, params ListDailyMetricsParams) ([]models.DailyMetric, error)

	// Change proposals.
	InsertChangeProposal(ctx context.Context, item *models.ChangeProposal) error
	GetChangeProposalByID(ctx context.Context, id uint64) (*models.ChangeProposal, error)
	ListChangeProposals(ctx context.Context, params ListChangeProposalsParams) ([]models.ChangeProposal, error)
	CountChangeProposals(ctx context.Context, params ListChangeProposalsParams) (int64, error)
	// TransitionChangeProposalStatus is a conditional update: the status
	// column moves from `from` to `to` (plus extra column updates) only if
	// the stored status still equals `from`. Returns false when the guard
	// failed, so two concurrent reviewers can never both win.
	TransitionChangeProposalStatus(ctx context.Context, id uint64, from, to string, updates map[string]any) (bool, error)

	// Audit trail (append-only).
	InsertChangeHistory(ctx context.Context, item *models.ChangeHistoryEntry) error
	ListChangeHistoryByProposalID(ctx context.Context, proposalID uint64) ([]models.ChangeHistoryEntry, error)

	// Sync state.
	GetSyncState(ctx context.Context, scope string) (*models.SyncState, error)
	SaveSyncState(ctx context.Context, state *models.SyncState) error

	// System settings.
	UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error
	GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error)
}

type ListCampaignsParams struct {
	Limit   int
	Offset  int
	State   *string
	Name    *string
	OrderBy string
	Asc     *bool
}

type ListDailyMetricsParams struct {
	Limit      int
	Offset     int
	CampaignID *string
	From       *time.Time
	To         *time.Time
	OrderBy    string
	Asc        *bool
}

type ListChangeProposalsParams struct {
	Limit    int
	Offset   int
	Status   *string
	Kind     *string
	TargetID *string
	OrderBy  string
	Asc      *bool
}
