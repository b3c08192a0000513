package intelligence

import "time"

// SyncResponse is the outcome of one sync cycle. It is always served with 200.
type SyncResponse struct {
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// ProjectResponse represents a project in listings
type ProjectResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	ClientID       string    `json:"clientId"`
	EstimatedValue float64   `json:"estimatedValue"`
	ActualCost     float64   `json:"actualCost"`
	ProfitMargin   float64   `json:"profitMargin"`
	TimelineHealth string    `json:"timelineHealth"`
	Priority       string    `json:"priority"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PortfolioSummaryResponse aggregates a project listing
type PortfolioSummaryResponse struct {
	Total      int     `json:"total"`
	OnTrack    int     `json:"onTrack"`
	AtRisk     int     `json:"atRisk"`
	Overdue    int     `json:"overdue"`
	TotalValue float64 `json:"totalValue"`
}

// ProjectListResponse represents a filtered project listing
type ProjectListResponse struct {
	Projects []*ProjectResponse       `json:"projects"`
	Summary  PortfolioSummaryResponse `json:"summary"`
}

// DocumentListResponse lists published meeting documents
type DocumentListResponse struct {
	Documents []string `json:"documents"`
	Count     int      `json:"count"`
}
