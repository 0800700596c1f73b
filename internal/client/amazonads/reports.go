package amazonads

import (
	"context"
	"strconv"
	"time"
)

const reportDateLayout = "20060102"

func (c *Client) ListCampaigns(ctx context.Context, limit int) ([]Campaign, error) {
	if limit <= 0 {
		limit = 500
	}
	var out []Campaign
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("count", strconv.Itoa(limit)).
		SetResult(&out).
		Get("/v2/sp/campaigns")
	if err := apiError(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListKeywords(ctx context.Context, limit int) ([]Keyword, error) {
	if limit <= 0 {
		limit = 500
	}
	var out []Keyword
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("count", strconv.Itoa(limit)).
		SetResult(&out).
		Get("/v2/sp/keywords")
	if err := apiError(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// CampaignMetrics fetches the per-campaign daily performance report for one
// report date. The platform produces snapshots per day, so multi-day windows
// are pulled date by date.
func (c *Client) CampaignMetrics(ctx context.Context, date time.Time) ([]MetricRow, error) {
	var out []MetricRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("reportDate", date.Format(reportDateLayout)).
		SetResult(&out).
		Get("/v2/sp/campaigns/report")
	if err := apiError(resp, err); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Date == "" {
			out[i].Date = date.Format(reportDateLayout)
		}
	}
	return out, nil
}
