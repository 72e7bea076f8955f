package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mietwert/backend/internal/domain"
)

// PostgresRepository implements domain.EstimateRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveEstimateLog persists an estimation request/response pair to PostgreSQL
func (r *PostgresRepository) SaveEstimateLog(ctx context.Context, input domain.ListingInput, result domain.EstimateResult) error {
	query := `
		INSERT INTO estimate_logs (
			living_space, no_rooms, floor, year_constructed,
			regio1, regio2, geo_plz,
			heating_type, condition, interior_qual, type_of_flat,
			balcony, lift, has_kitchen, garden, cellar, listing_date,
			prediction, interval_lower, interval_upper, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	// Use nil instead of empty string for the nullable listing_date column
	var listingDate interface{}
	if input.Date != "" {
		listingDate = input.Date
	}

	_, err := r.pool.Exec(ctx, query,
		input.LivingSpace, input.NoRooms, input.Floor, input.YearConstructed,
		input.Regio1, input.Regio2, input.GeoPLZ,
		input.HeatingType, input.Condition, input.InteriorQual, input.TypeOfFlat,
		input.Balcony, input.Lift, input.HasKitchen, input.Garden, input.Cellar, listingDate,
		result.Prediction, result.IntervalLower, result.IntervalUpper, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save estimate log: %w", err)
	}

	return nil
}

// GetRecentEstimates retrieves the most recent estimations from PostgreSQL
func (r *PostgresRepository) GetRecentEstimates(ctx context.Context, limit int) ([]domain.EstimateLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT living_space, no_rooms, floor, year_constructed,
			   regio1, regio2, geo_plz,
			   heating_type, condition, interior_qual, type_of_flat,
			   balcony, lift, has_kitchen, garden, cellar,
			   prediction, interval_lower, interval_upper, created_at
		FROM estimate_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query estimate logs: %w", err)
	}
	defer rows.Close()

	var results []domain.EstimateLog
	for rows.Next() {
		var e domain.EstimateLog
		err := rows.Scan(
			&e.Input.LivingSpace, &e.Input.NoRooms, &e.Input.Floor, &e.Input.YearConstructed,
			&e.Input.Regio1, &e.Input.Regio2, &e.Input.GeoPLZ,
			&e.Input.HeatingType, &e.Input.Condition, &e.Input.InteriorQual, &e.Input.TypeOfFlat,
			&e.Input.Balcony, &e.Input.Lift, &e.Input.HasKitchen, &e.Input.Garden, &e.Input.Cellar,
			&e.Prediction, &e.IntervalLower, &e.IntervalUpper, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan estimate row: %w", err)
		}
		results = append(results, e)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
