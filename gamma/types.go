// Copyright (c) 2025 BVK Chaitanya

package gamma

// Tag classifies catalog events, e.g. "nba" or "soccer".
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// Market is one tradeable question inside a catalog event. Outcomes,
// OutcomePrices and ClobTokenIDs are JSON-encoded string arrays on the
// wire.
type Market struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	ConditionID   string `json:"conditionId"`
	Slug          string `json:"slug"`
	Outcomes      string `json:"outcomes"`
	OutcomePrices string `json:"outcomePrices"`
	ClobTokenIDs  string `json:"clobTokenIds"`
	Volume        string `json:"volume"`
	Liquidity     string `json:"liquidity"`
	GameStartTime string `json:"gameStartTime"`
	Active        bool   `json:"active"`
	Closed        bool   `json:"closed"`
}

// Event is one catalog entry grouping related markets.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Image       string    `json:"image"`
	Icon        string    `json:"icon"`
	Active      bool      `json:"active"`
	Closed      bool      `json:"closed"`
	Markets     []*Market `json:"markets"`
	Tags        []*Tag    `json:"tags"`
}
