package intelligence

// DashboardRequest represents query parameters for a project dashboard
type DashboardRequest struct {
	ProjectID string `query:"projectId" validate:"required"`
}

// ListProjectsRequest represents query parameters for listing projects
type ListProjectsRequest struct {
	Status string `query:"status" validate:"omitempty,max=32"`
	Client string `query:"client" validate:"omitempty,max=64"`
}

// ChatRequest represents a chat message
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}
