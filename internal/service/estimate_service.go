package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mietwert/backend/internal/domain"
	"github.com/mietwert/backend/internal/features"
	"github.com/mietwert/backend/internal/geo"
	"github.com/mietwert/backend/internal/model"
)

// EstimateService runs the full estimation pipeline: normalize categories,
// assemble the feature vector, predict, then derive the interval, price per
// area, plausibility warnings and the importance ranking.
type EstimateService struct {
	estimator model.Estimator
	geoRef    *geo.Reference // nil when reference data failed to load
	builder   *features.VectorBuilder
	repo      domain.EstimateRepository
	cache     domain.EstimateCache
	cacheTTL  time.Duration
	now       func() time.Time

	wgBg sync.WaitGroup // tracks background log writes for graceful shutdown
}

// NewEstimateService creates a new estimate service.
func NewEstimateService(
	estimator model.Estimator,
	geoRef *geo.Reference,
	repo domain.EstimateRepository,
	cache domain.EstimateCache,
	cacheTTL time.Duration,
) *EstimateService {
	return &EstimateService{
		estimator: estimator,
		geoRef:    geoRef,
		builder:   features.NewVectorBuilder(),
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// WaitBackground blocks until all background log writes complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *EstimateService) WaitBackground() {
	s.wgBg.Wait()
}

// Estimate produces the rent estimate for one listing. Schema and prediction
// errors short-circuit before any analytics step; the caller gets either the
// full payload or a single error, never a partial result.
func (s *EstimateService) Estimate(ctx context.Context, in domain.ListingInput) (domain.EstimateResult, error) {
	key := cacheKey(in)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.EstimateResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
		// A corrupt cache entry is recomputed, not surfaced.
	}

	normalized := features.NormalizeCategories(in)
	vec, err := s.builder.Build(normalized)
	if err != nil {
		return domain.EstimateResult{}, err
	}

	prediction, err := s.estimator.Predict(vec)
	if err != nil {
		return domain.EstimateResult{}, &domain.PredictionError{Err: err}
	}

	lower, upper := Interval(prediction, DefaultMargin)
	result := domain.EstimateResult{
		Prediction:        prediction,
		IntervalLower:     lower,
		IntervalUpper:     upper,
		EurPerSqm:         PricePerSqm(prediction, in.LivingSpace),
		Warnings:          s.warnings(in),
		FeatureImportance: model.RankImportances(s.estimator, vec),
		ConfidenceNote:    ConfidenceNote,
	}

	s.cacheResult(ctx, key, result)
	s.saveLogAsync(in, result)
	return result, nil
}

// History returns the most recent persisted estimations, newest first.
func (s *EstimateService) History(ctx context.Context, limit int) ([]domain.EstimateLog, error) {
	return s.repo.GetRecentEstimates(ctx, limit)
}

// GeoReference returns the loaded reference table, or nil when unavailable.
func (s *EstimateService) GeoReference() *geo.Reference {
	return s.geoRef
}

// warnings combines the plausibility rules with the reference-data check.
// All of them are advisory.
func (s *EstimateService) warnings(in domain.ListingInput) []string {
	warnings := ValidateInput(in, s.now())
	if s.geoRef != nil && !s.geoRef.Contains(in.Regio1, in.Regio2, in.GeoPLZ) {
		warnings = append(warnings, "Standort wurde in den Referenzdaten nicht gefunden.")
	}
	if warnings == nil {
		warnings = []string{}
	}
	return warnings
}

func (s *EstimateService) cacheResult(ctx context.Context, key string, result domain.EstimateResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		log.Printf("Failed to cache estimate: %v", err)
	}
}

// saveLogAsync persists the estimation off the request path, mirroring the
// fire-and-forget log write of the prediction endpoint.
func (s *EstimateService) saveLogAsync(in domain.ListingInput, result domain.EstimateResult) {
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveEstimateLog(ctx, in, result); err != nil {
			log.Printf("Failed to save estimate log: %v", err)
		}
	}()
}

// cacheKey hashes the raw input. Two requests differing only in label
// spelling that normalizes identically still hash apart; that costs a cache
// miss, not correctness.
func cacheKey(in domain.ListingInput) string {
	payload, err := json.Marshal(in)
	if err != nil {
		return "estimate:unkeyed"
	}
	return fmt.Sprintf("estimate:%x", sha256.Sum256(payload))
}
