package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"adpilot/internal/models"
	"adpilot/internal/proposal"
	"adpilot/internal/repository"
)

// ExecutionBackend is the ad-platform mutation surface. Each change kind
// maps to exactly one call. The dependency is nullable: with no backend,
// approvals are recorded for manual application.
type ExecutionBackend interface {
	UpdateKeywordBid(ctx context.Context, keywordID string, bid decimal.Decimal) error
	UpdateCampaignState(ctx context.Context, campaignID string, state string) error
	UpdateCampaignBudget(ctx context.Context, campaignID string, budget decimal.Decimal) error
	CreateNegativeKeyword(ctx context.Context, campaignID, keywordText, matchType string) error
}

// ProposalService owns the change-proposal lifecycle: propose, approve or
// reject, and on approval dispatch the mutation and record the outcome.
// No operation here retries; every failure is terminal for that invocation
// and visible in the audit trail.
type ProposalService struct {
	Repo    repository.Repository
	Backend ExecutionBackend
	Logger  *zap.Logger
	Flags   *SystemSettingsService
}

type ProposeInput struct {
	Kind     proposal.Kind
	Target   proposal.Target
	Current  proposal.Value
	Proposed proposal.Value
	Reason   string
}

func (s *ProposalService) Propose(ctx context.Context, in ProposeInput) (*models.ChangeProposal, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("proposal service not configured")
	}
	if err := in.Target.Validate(); err != nil {
		return nil, err
	}
	if err := in.Current.Validate(in.Kind); err != nil {
		return nil, fmt.Errorf("current value: %w", err)
	}
	if err := in.Proposed.Validate(in.Kind); err != nil {
		return nil, fmt.Errorf("proposed value: %w", err)
	}
	currentRaw, err := proposal.EncodeValue(in.Current)
	if err != nil {
		return nil, err
	}
	proposedRaw, err := proposal.EncodeValue(in.Proposed)
	if err != nil {
		return nil, err
	}
	item := &models.ChangeProposal{
		Kind:          string(in.Kind),
		TargetKind:    strings.TrimSpace(in.Target.Kind),
		TargetID:      strings.TrimSpace(in.Target.ID),
		TargetName:    strings.TrimSpace(in.Target.Name),
		CurrentValue:  currentRaw,
		ProposedValue: proposedRaw,
		Reason:        strings.TrimSpace(in.Reason),
		Status:        string(proposal.StatusPending),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Repo.InsertChangeProposal(ctx, item); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("change proposed",
			zap.Uint64("proposal_id", item.ID),
			zap.String("kind", item.Kind),
			zap.String("target_id", item.TargetID),
		)
	}
	return item, nil
}

// Approve moves a pending proposal to approved and, when an execution
// backend is wired and enabled, synchronously attempts the mutation. The
// pending→approved step is a conditional update against the store, so a
// concurrent double-approve resolves to exactly one execution attempt; the
// loser gets a ConflictError reporting the stored status.
func (s *ProposalService) Approve(ctx context.Context, id uint64) (proposal.Outcome, *models.ChangeProposal, error) {
	if s == nil || s.Repo == nil {
		return "", nil, fmt.Errorf("proposal service not configured")
	}
	item, err := s.Repo.GetChangeProposalByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if item == nil {
		return "", nil, proposal.ErrNotFound
	}

	now := time.Now().UTC()
	ok, err := s.Repo.TransitionChangeProposalStatus(ctx, id,
		string(proposal.StatusPending), string(proposal.StatusApproved),
		map[string]any{"reviewed_at": now})
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, s.conflict(ctx, id)
	}
	item.Status = string(proposal.StatusApproved)
	item.ReviewedAt = &now

	if !s.executionEnabled(ctx) {
		if s.Logger != nil {
			s.Logger.Info("proposal approved without execution backend",
				zap.Uint64("proposal_id", id))
		}
		return proposal.OutcomeApproved, item, nil
	}

	return s.execute(ctx, item)
}

// Reject moves a pending proposal to rejected. Same conditional-update guard
// as Approve; a proposal out of pending is reported as a conflict untouched.
func (s *ProposalService) Reject(ctx context.Context, id uint64) (*models.ChangeProposal, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("proposal service not configured")
	}
	item, err := s.Repo.GetChangeProposalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, proposal.ErrNotFound
	}
	now := time.Now().UTC()
	ok, err := s.Repo.TransitionChangeProposalStatus(ctx, id,
		string(proposal.StatusPending), string(proposal.StatusRejected),
		map[string]any{"reviewed_at": now})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.conflict(ctx, id)
	}
	item.Status = string(proposal.StatusRejected)
	item.ReviewedAt = &now
	if s.Logger != nil {
		s.Logger.Info("proposal rejected", zap.Uint64("proposal_id", id))
	}
	return item, nil
}

// execute runs the mutation for an approved proposal and records the outcome
// on the proposal plus one append-only history entry. Backend errors pass
// through verbatim into both.
func (s *ProposalService) execute(ctx context.Context, item *models.ChangeProposal) (proposal.Outcome, *models.ChangeProposal, error) {
	value, err := proposal.DecodeValue(item.ProposedValue)
	if err != nil {
		return "", nil, fmt.Errorf("decode proposed value: %w", err)
	}

	execErr := s.dispatch(ctx, proposal.Kind(item.Kind), item.TargetID, value)
	now := time.Now().UTC()

	if execErr != nil {
		msg := execErr.Error()
		if _, err := s.Repo.TransitionChangeProposalStatus(ctx, item.ID,
			string(proposal.StatusApproved), string(proposal.StatusFailed),
			map[string]any{"executed_at": now, "error": msg}); err != nil {
			return "", nil, err
		}
		item.Status = string(proposal.StatusFailed)
		item.ExecutedAt = &now
		item.Error = &msg
		if err := s.appendHistory(ctx, item, false, &msg); err != nil {
			return "", nil, err
		}
		if s.Logger != nil {
			s.Logger.Warn("proposal execution failed",
				zap.Uint64("proposal_id", item.ID),
				zap.String("error", msg),
			)
		}
		return proposal.OutcomeFailed, item, nil
	}

	if _, err := s.Repo.TransitionChangeProposalStatus(ctx, item.ID,
		string(proposal.StatusApproved), string(proposal.StatusExecuted),
		map[string]any{"executed_at": now}); err != nil {
		return "", nil, err
	}
	item.Status = string(proposal.StatusExecuted)
	item.ExecutedAt = &now
	if err := s.appendHistory(ctx, item, true, nil); err != nil {
		return "", nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("proposal executed",
			zap.Uint64("proposal_id", item.ID),
			zap.String("kind", item.Kind),
			zap.String("target_id", item.TargetID),
		)
	}
	return proposal.OutcomeExecuted, item, nil
}

// dispatch maps a change kind onto its single backend mutation. The mapping
// is total over the four kinds; propose-time validation makes the default
// branch unreachable.
func (s *ProposalService) dispatch(ctx context.Context, kind proposal.Kind, targetID string, value proposal.Value) error {
	switch kind {
	case proposal.KindBidAdjustment:
		return s.Backend.UpdateKeywordBid(ctx, targetID, value.Bid.Bid)
	case proposal.KindStateChange:
		return s.Backend.UpdateCampaignState(ctx, targetID, value.State.State)
	case proposal.KindBudgetChange:
		return s.Backend.UpdateCampaignBudget(ctx, targetID, value.Budget.Budget)
	case proposal.KindAddNegativeKeyword:
		nk := value.NegativeKeyword
		return s.Backend.CreateNegativeKeyword(ctx, targetID, nk.KeywordText, nk.MatchType)
	default:
		return fmt.Errorf("unhandled change kind %q", kind)
	}
}

func (s *ProposalService) appendHistory(ctx context.Context, item *models.ChangeProposal, applied bool, errText *string) error {
	outcome := "applied"
	if !applied {
		outcome = "failed"
	}
	return s.Repo.InsertChangeHistory(ctx, &models.ChangeHistoryEntry{
		ProposalID: item.ID,
		Kind:       item.Kind,
		TargetID:   item.TargetID,
		Before:     item.CurrentValue,
		After:      item.ProposedValue,
		Outcome:    outcome,
		Error:      errText,
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *ProposalService) executionEnabled(ctx context.Context) bool {
	if s.Backend == nil {
		return false
	}
	if s.Flags != nil && !s.Flags.IsEnabled(ctx, FeatureExecution, true) {
		return false
	}
	return true
}

// conflict re-reads the stored status so the caller sees what the proposal
// actually is, not what it raced against.
func (s *ProposalService) conflict(ctx context.Context, id uint64) error {
	current, err := s.Repo.GetChangeProposalByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return proposal.ErrNotFound
	}
	return &proposal.ConflictError{Status: proposal.Status(current.Status)}
}
