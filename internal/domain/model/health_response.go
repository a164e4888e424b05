package model

// HealthStatus represents the possible health status values
type HealthStatus string

const (
	StatusHealthy HealthStatus = "healthy"

	StatusUp       HealthStatus = "UP"
	StatusDown     HealthStatus = "DOWN"
	StatusDisabled HealthStatus = "DISABLED"
)

// HealthResponse is the liveness answer of /health
type HealthResponse struct {
	Status HealthStatus `json:"status"`
}

// ComponentHealthStatus represents the health check structure of a application component
type ComponentHealthStatus struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

// ReadinessResponse represents the readiness of the application and its dependencies
type ReadinessResponse struct {
	Status   HealthStatus          `json:"status"`
	Database ComponentHealthStatus `json:"database"`
	Redis    ComponentHealthStatus `json:"redis"`
}
