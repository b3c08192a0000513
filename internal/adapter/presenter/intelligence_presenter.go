package presenter

import (
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/dto/intelligence"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/dashboard"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/ingest"
)

// ToSyncResponse converts a sync result to its wire form; per-item outcomes
// stay in the logs
func ToSyncResponse(r ingest.SyncResult) *intelligence.SyncResponse {
	return &intelligence.SyncResponse{
		Count:   r.Count,
		Message: r.Message,
		Error:   r.Error,
		Details: r.Details,
	}
}

// ToProjectResponse converts a Project entity to ProjectResponse DTO
func ToProjectResponse(p *entities.Project) *intelligence.ProjectResponse {
	if p == nil {
		return nil
	}
	return &intelligence.ProjectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Status:         string(p.Status),
		ClientID:       p.ClientID,
		EstimatedValue: p.EstimatedValue,
		ActualCost:     p.ActualCost,
		ProfitMargin:   p.ProfitMargin,
		TimelineHealth: string(p.TimelineHealth),
		Priority:       p.Priority,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProjectListResponse converts a project listing
func ToProjectListResponse(l *dashboard.ProjectList) *intelligence.ProjectListResponse {
	resp := &intelligence.ProjectListResponse{
		Projects: make([]*intelligence.ProjectResponse, 0, len(l.Projects)),
		Summary: intelligence.PortfolioSummaryResponse{
			Total:      l.Summary.Total,
			OnTrack:    l.Summary.OnTrack,
			AtRisk:     l.Summary.AtRisk,
			Overdue:    l.Summary.Overdue,
			TotalValue: l.Summary.TotalValue,
		},
	}
	for _, p := range l.Projects {
		resp.Projects = append(resp.Projects, ToProjectResponse(p))
	}
	return resp
}

// ToDocumentListResponse wraps document keys
func ToDocumentListResponse(keys []string) *intelligence.DocumentListResponse {
	if keys == nil {
		keys = []string{}
	}
	return &intelligence.DocumentListResponse{Documents: keys, Count: len(keys)}
}
