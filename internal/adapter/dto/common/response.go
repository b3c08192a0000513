package common

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}
