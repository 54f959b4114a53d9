package domain

import (
	"context"
	"time"
)

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status      string            `json:"status"`
	Message     string            `json:"message"`
	Timestamp   time.Time         `json:"timestamp"`
	Method      string            `json:"method,omitempty"`
	Environment HealthEnvironment `json:"environment"`
}

// HealthEnvironment reports which settings are present without leaking them.
type HealthEnvironment struct {
	EmailDriver    string `json:"emailDriver"`
	HasAPIKey      bool   `json:"hasApiKey"`
	FromEmail      string `json:"fromEmail"`
	BusinessEmail  string `json:"businessEmail"`
	RateLimitStore string `json:"rateLimitStore"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}
