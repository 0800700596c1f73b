package amazonads

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The four mutation calls below are the whole write surface the change
// dispatcher needs. Errors carry the platform's reason text unchanged.

func (c *Client) UpdateKeywordBid(ctx context.Context, keywordID string, bid decimal.Decimal) error {
	id, err := parseID(keywordID)
	if err != nil {
		return err
	}
	payload := []keywordBidUpdate{{KeywordID: id, Bid: bid.InexactFloat64()}}
	var results []mutationResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&results).
		Put("/v2/sp/keywords")
	if err := apiError(resp, err); err != nil {
		return err
	}
	return mutationError(results)
}

func (c *Client) UpdateCampaignState(ctx context.Context, campaignID string, state string) error {
	id, err := parseID(campaignID)
	if err != nil {
		return err
	}
	payload := []campaignStateUpdate{{CampaignID: id, State: state}}
	var results []mutationResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&results).
		Put("/v2/sp/campaigns")
	if err := apiError(resp, err); err != nil {
		return err
	}
	return mutationError(results)
}

func (c *Client) UpdateCampaignBudget(ctx context.Context, campaignID string, budget decimal.Decimal) error {
	id, err := parseID(campaignID)
	if err != nil {
		return err
	}
	payload := []campaignBudgetUpdate{{CampaignID: id, DailyBudget: budget.InexactFloat64()}}
	var results []mutationResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&results).
		Put("/v2/sp/campaigns")
	if err := apiError(resp, err); err != nil {
		return err
	}
	return mutationError(results)
}

func (c *Client) CreateNegativeKeyword(ctx context.Context, campaignID, keywordText, matchType string) error {
	id, err := parseID(campaignID)
	if err != nil {
		return err
	}
	payload := []negativeKeywordCreate{{
		CampaignID:  id,
		KeywordText: keywordText,
		MatchType:   matchType,
		State:       "enabled",
	}}
	var results []mutationResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&results).
		Post("/v2/sp/campaignNegativeKeywords")
	if err := apiError(resp, err); err != nil {
		return err
	}
	return mutationError(results)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entity id %q", raw)
	}
	return id, nil
}

// mutationError lifts per-item failure codes out of a 200 batch response.
func mutationError(results []mutationResult) error {
	for _, r := range results {
		code := strings.ToUpper(strings.TrimSpace(r.Code))
		if code == "" || code == "SUCCESS" {
			continue
		}
		if r.Description != "" {
			return fmt.Errorf("%s: %s", r.Code, r.Description)
		}
		return fmt.Errorf("%s", r.Code)
	}
	return nil
}
