package directorysdk

// ErrorResponse is the error body returned by the directory API.
type ErrorResponse struct {
	Error            string `json:"error" example:"invalid_token"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// CountResponse is the object form of the count endpoint.
type CountResponse struct {
	Count int `json:"count" example:"42"`
}

// ValidateRequest is the body of the validate endpoint.
type ValidateRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// AccountResponse wraps an account's claims.
type AccountResponse struct {
	User map[string]any `json:"user"`
}

// AckResponse acknowledges an admin mutation requested as JSON.
type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the response structure for health check endpoints.
// /readyz adds Checks; /healthz adds UserCount.
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok", "healthy")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// UserCount is the number of active accounts (only for /healthz)
	UserCount *int `json:"user_count,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the relational store status
	Database string `json:"database"`

	// Sessions indicates the admin session store status
	Sessions string `json:"sessions"`
}
