package amazonads

// Wire shapes for the Sponsored Products endpoints. Kept separate from the
// storage models; the sync service converts.

type Campaign struct {
	CampaignID    int64   `json:"campaignId"`
	Name          string  `json:"name"`
	State         string  `json:"state"`
	CampaignType  string  `json:"campaignType"`
	TargetingType string  `json:"targetingType"`
	DailyBudget   float64 `json:"dailyBudget"`
	StartDate     string  `json:"startDate,omitempty"`
	EndDate       string  `json:"endDate,omitempty"`
}

type Keyword struct {
	KeywordID   int64   `json:"keywordId"`
	CampaignID  int64   `json:"campaignId"`
	AdGroupID   int64   `json:"adGroupId"`
	KeywordText string  `json:"keywordText"`
	MatchType   string  `json:"matchType"`
	State       string  `json:"state"`
	Bid         float64 `json:"bid"`
}

// MetricRow is one campaign-day of the performance report.
type MetricRow struct {
	CampaignID  int64   `json:"campaignId"`
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Cost        float64 `json:"cost"`
	Sales       float64 `json:"attributedSales14d"`
	Orders      int64   `json:"attributedConversions14d"`
	UnitsSold   int64   `json:"attributedUnitsOrdered14d"`
	PagesRead   int64   `json:"attributedKindleEditionNormalizedPagesRead14d"`
	PageRoyalty float64 `json:"attributedKindleEditionNormalizedPagesRoyalties14d"`
}

type keywordBidUpdate struct {
	KeywordID int64   `json:"keywordId"`
	Bid       float64 `json:"bid"`
}

type campaignStateUpdate struct {
	CampaignID int64  `json:"campaignId"`
	State      string `json:"state"`
}

type campaignBudgetUpdate struct {
	CampaignID  int64   `json:"campaignId"`
	DailyBudget float64 `json:"dailyBudget"`
}

type negativeKeywordCreate struct {
	CampaignID  int64  `json:"campaignId"`
	KeywordText string `json:"keywordText"`
	MatchType   string `json:"matchType"`
	State       string `json:"state"`
}

type mutationResult struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}
