package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"adpilot/internal/models"
	"adpilot/internal/repository"
)

// stubRepo is an in-memory Repository for service tests. The status
// transition uses the same compare-and-set contract as the SQL store.
type stubRepo struct {
	mu sync.Mutex

	campaigns map[string]models.Campaign
	keywords  map[string]models.Keyword
	metrics   []models.DailyMetric
	proposals map[uint64]*models.ChangeProposal
	history   []models.ChangeHistoryEntry
	syncState map[string]models.SyncState
	settings  map[string]models.SystemSetting

	nextProposalID uint64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		campaigns: map[string]models.Campaign{},
		keywords:  map[string]models.Keyword{},
		proposals: map[uint64]*models.ChangeProposal{},
		syncState: map[string]models.SyncState{},
		settings:  map[string]models.SystemSetting{},
	}
}

func (r *stubRepo) UpsertCampaigns(_ context.Context, items []models.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.campaigns[item.ID] = item
	}
	return nil
}

func (r *stubRepo) GetCampaignByID(_ context.Context, id string) (*models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.campaigns[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (r *stubRepo) ListCampaigns(_ context.Context, _ repository.ListCampaignsParams) ([]models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Campaign, 0, len(r.campaigns))
	for _, item := range r.campaigns {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubRepo) CountCampaigns(_ context.Context, _ repository.ListCampaignsParams) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.campaigns)), nil
}

func (r *stubRepo) UpsertKeywords(_ context.Context, items []models.Keyword) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.keywords[item.ID] = item
	}
	return nil
}

func (r *stubRepo) GetKeywordByID(_ context.Context, id string) (*models.Keyword, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.keywords[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (r *stubRepo) ListKeywordsByCampaignID(_ context.Context, campaignID string) ([]models.Keyword, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Keyword
	for _, item := range r.keywords {
		if item.CampaignID == campaignID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubRepo) UpsertDailyMetrics(_ context.Context, items []models.DailyMetric) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		replaced := false
		for i := range r.metrics {
			if r.metrics[i].CampaignID == item.CampaignID && r.metrics[i].Date.Equal(item.Date) {
				r.metrics[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			r.metrics = append(r.metrics, item)
		}
	}
	return nil
}

func (r *stubRepo) ListDailyMetricsRange(_ context.Context, campaignID *string, from, to time.Time) ([]models.DailyMetric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DailyMetric
	for _, item := range r.metrics {
		if campaignID != nil && item.CampaignID != *campaignID {
			continue
		}
		if item.Date.Before(from) || item.Date.After(to) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *stubRepo) ListDailyMetrics(_ context.Context, params repository.ListDailyMetricsParams) ([]models.DailyMetric, error) {
	var from, to time.Time
	if params.From != nil {
		from = *params.From
	} else {
		from = time.Time{}
	}
	if params.To != nil {
		to = *params.To
	} else {
		to = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return r.ListDailyMetricsRange(context.Background(), params.CampaignID, from, to)
}

func (r *stubRepo) InsertChangeProposal(_ context.Context, item *models.ChangeProposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextProposalID++
	item.ID = r.nextProposalID
	cp := *item
	r.proposals[item.ID] = &cp
	return nil
}

func (r *stubRepo) GetChangeProposalByID(_ context.Context, id uint64) (*models.ChangeProposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.proposals[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, nil
}

func (r *stubRepo) ListChangeProposals(_ context.Context, params repository.ListChangeProposalsParams) ([]models.ChangeProposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ChangeProposal
	for _, item := range r.proposals {
		if params.Status != nil && item.Status != *params.Status {
			continue
		}
		if params.Kind != nil && item.Kind != *params.Kind {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubRepo) CountChangeProposals(ctx context.Context, params repository.ListChangeProposalsParams) (int64, error) {
	items, err := r.ListChangeProposals(ctx, params)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (r *stubRepo) TransitionChangeProposalStatus(_ context.Context, id uint64, from, to string, updates map[string]any) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.proposals[id]
	if !ok || item.Status != from {
		return false, nil
	}
	item.Status = to
	for col, val := range updates {
		switch strings.ToLower(col) {
		case "reviewed_at":
			if ts, ok := val.(time.Time); ok {
				item.ReviewedAt = &ts
			}
		case "executed_at":
			if ts, ok := val.(time.Time); ok {
				item.ExecutedAt = &ts
			}
		case "error":
			if msg, ok := val.(string); ok {
				item.Error = &msg
			}
		}
	}
	return true, nil
}

func (r *stubRepo) InsertChangeHistory(_ context.Context, item *models.ChangeHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = uint64(len(r.history) + 1)
	r.history = append(r.history, *item)
	return nil
}

func (r *stubRepo) ListChangeHistoryByProposalID(_ context.Context, proposalID uint64) ([]models.ChangeHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ChangeHistoryEntry
	for _, item := range r.history {
		if item.ProposalID == proposalID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubRepo) GetSyncState(_ context.Context, scope string) (*models.SyncState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.syncState[scope]; ok {
		s := state
		return &s, nil
	}
	return nil, nil
}

func (r *stubRepo) SaveSyncState(_ context.Context, state *models.SyncState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncState[state.Scope] = *state
	return nil
}

func (r *stubRepo) UpsertSystemSetting(_ context.Context, item *models.SystemSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.settings[item.Key]; ok {
		item.ID = existing.ID
	} else {
		item.ID = uint64(len(r.settings) + 1)
	}
	r.settings[item.Key] = *item
	return nil
}

func (r *stubRepo) GetSystemSettingByKey(_ context.Context, key string) (*models.SystemSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.settings[key]; ok {
		s := item
		return &s, nil
	}
	return nil, nil
}

func (r *stubRepo) ListSystemSettings(_ context.Context) ([]models.SystemSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SystemSetting, 0, len(r.settings))
	for _, item := range r.settings {
		out = append(out, item)
	}
	return out, nil
}

var _ repository.Repository = (*stubRepo)(nil)
