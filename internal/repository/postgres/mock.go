package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/mietwert/backend/internal/domain"
)

// MockRepository implements domain.EstimateRepository in memory for demo mode
// and tests. Keeps the most recent writes so the history endpoint still works
// without a database.
type MockRepository struct {
	mu   sync.Mutex
	logs []domain.EstimateLog
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveEstimateLog records the estimation in memory
func (r *MockRepository) SaveEstimateLog(ctx context.Context, input domain.ListingInput, result domain.EstimateResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, domain.EstimateLog{
		Input:         input,
		Prediction:    result.Prediction,
		IntervalLower: result.IntervalLower,
		IntervalUpper: result.IntervalUpper,
		CreatedAt:     time.Now(),
	})
	if len(r.logs) > 100 {
		r.logs = r.logs[len(r.logs)-100:]
	}
	return nil
}

// GetRecentEstimates returns the in-memory history, newest first
func (r *MockRepository) GetRecentEstimates(ctx context.Context, limit int) ([]domain.EstimateLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var results []domain.EstimateLog
	for i := len(r.logs) - 1; i >= 0 && len(results) < limit; i-- {
		results = append(results, r.logs[i])
	}
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
