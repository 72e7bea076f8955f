package domain

import (
	"context"
	"time"
)

// EstimateLog is one persisted estimation, kept for the history endpoint and
// for offline monitoring of serving inputs.
type EstimateLog struct {
	Input         ListingInput `json:"input"`
	Prediction    float64      `json:"prediction"`
	IntervalLower float64      `json:"interval_lower"`
	IntervalUpper float64      `json:"interval_upper"`
	CreatedAt     time.Time    `json:"created_at"`
}

// EstimateRepository defines the interface for estimate persistence.
// This follows the Dependency Inversion Principle - domain defines the interface
type EstimateRepository interface {
	// SaveEstimateLog persists one estimation request/response pair
	SaveEstimateLog(ctx context.Context, input ListingInput, result EstimateResult) error

	// GetRecentEstimates retrieves the most recent estimations, newest first
	GetRecentEstimates(ctx context.Context, limit int) ([]EstimateLog, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}

// EstimateCache caches serialized estimate responses keyed by input hash.
type EstimateCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
