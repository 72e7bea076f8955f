package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mietwert/backend/internal/domain"
	"github.com/mietwert/backend/internal/features"
	"github.com/mietwert/backend/internal/geo"
	"github.com/mietwert/backend/internal/repository/rediscache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEstimator returns a fixed value and counts calls.
type stubEstimator struct {
	value float64
	err   error

	mu    sync.Mutex
	calls int
}

func (s *stubEstimator) Predict(features.FeatureVector) (float64, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return s.value, nil
}

func (s *stubEstimator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// recordingRepo records saved estimate logs.
type recordingRepo struct {
	mu   sync.Mutex
	logs []domain.EstimateLog
}

func (r *recordingRepo) SaveEstimateLog(ctx context.Context, input domain.ListingInput, result domain.EstimateResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, domain.EstimateLog{Input: input, Prediction: result.Prediction})
	return nil
}

func (r *recordingRepo) GetRecentEstimates(ctx context.Context, limit int) ([]domain.EstimateLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EstimateLog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

func (r *recordingRepo) Health(ctx context.Context) error { return nil }

func testGeoRef() *geo.Reference {
	return geo.New(map[string]map[string][]string{
		"Bayern": {"Muenchen": {"80331"}},
	})
}

func listingMunich() domain.ListingInput {
	return domain.ListingInput{
		LivingSpace:     75,
		NoRooms:         3,
		Floor:           1,
		YearConstructed: 1995,
		Regio1:          "Bayern",
		Regio2:          "Muenchen",
		GeoPLZ:          "80331",
		HeatingType:     "Zentralheizung",
		Condition:       "Gepflegt",
		InteriorQual:    "Normal",
		TypeOfFlat:      "Etagenwohnung",
		Balcony:         true,
		Lift:            false,
		HasKitchen:      true,
		Garden:          false,
		Cellar:          true,
	}
}

func newTestService(est *stubEstimator, repo domain.EstimateRepository) *EstimateService {
	return NewEstimateService(est, testGeoRef(), repo, rediscache.NewMockCache(), time.Hour)
}

func TestEstimateEndToEnd(t *testing.T) {
	est := &stubEstimator{value: 1200}
	repo := &recordingRepo{}
	svc := newTestService(est, repo)

	result, err := svc.Estimate(context.Background(), listingMunich())
	require.NoError(t, err)

	assert.Equal(t, 1200.0, result.Prediction)
	assert.InDelta(t, 1080.0, result.IntervalLower, 1e-9)
	assert.InDelta(t, 1320.0, result.IntervalUpper, 1e-9)
	require.NotNil(t, result.EurPerSqm)
	assert.InDelta(t, 16.0, *result.EurPerSqm, 1e-9)
	assert.Empty(t, result.Warnings)
	assert.NotNil(t, result.Warnings)
	assert.Equal(t, ConfidenceNote, result.ConfidenceNote)
	// The stub exposes no importances; explainability degrades to empty.
	assert.Empty(t, result.FeatureImportance)
}

func TestEstimatePersistsLogInBackground(t *testing.T) {
	est := &stubEstimator{value: 900}
	repo := &recordingRepo{}
	svc := newTestService(est, repo)

	_, err := svc.Estimate(context.Background(), listingMunich())
	require.NoError(t, err)
	svc.WaitBackground()

	logs, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 900.0, logs[0].Prediction)
	assert.Equal(t, "80331", logs[0].Input.GeoPLZ)
}

func TestEstimateSchemaErrorShortCircuits(t *testing.T) {
	est := &stubEstimator{value: 1200}
	repo := &recordingRepo{}
	svc := newTestService(est, repo)

	in := listingMunich()
	in.LivingSpace = 0

	_, err := svc.Estimate(context.Background(), in)
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "livingSpace", schemaErr.Field)
	assert.Zero(t, est.callCount(), "estimator must not run on schema errors")

	svc.WaitBackground()
	logs, _ := repo.GetRecentEstimates(context.Background(), 10)
	assert.Empty(t, logs, "no log entry on error")
}

func TestEstimateWrapsPredictionFailure(t *testing.T) {
	est := &stubEstimator{err: errors.New("unseen category token")}
	svc := newTestService(est, &recordingRepo{})

	_, err := svc.Estimate(context.Background(), listingMunich())
	var predErr *domain.PredictionError
	require.ErrorAs(t, err, &predErr)
	assert.Contains(t, predErr.Error(), "unseen category token")
}

func TestEstimateCacheHitSkipsEstimator(t *testing.T) {
	est := &stubEstimator{value: 1200}
	svc := newTestService(est, &recordingRepo{})

	first, err := svc.Estimate(context.Background(), listingMunich())
	require.NoError(t, err)
	second, err := svc.Estimate(context.Background(), listingMunich())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, est.callCount())
}

func TestEstimateCollectsAdvisoryWarningsWithoutBlocking(t *testing.T) {
	est := &stubEstimator{value: 400}
	svc := newTestService(est, &recordingRepo{})

	in := listingMunich()
	in.LivingSpace = 5
	in.GeoPLZ = "99999"

	result, err := svc.Estimate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 400.0, result.Prediction)
	assert.Contains(t, result.Warnings, "Wohnflaeche liegt ausserhalb des typischen Bereichs (15-350 m2).")
	assert.Contains(t, result.Warnings, "Wohnflaeche pro Zimmer wirkt unplausibel.")
	assert.Contains(t, result.Warnings, "Standort wurde in den Referenzdaten nicht gefunden.")
}

func TestEstimateWithoutGeoReferenceSkipsLocationCheck(t *testing.T) {
	est := &stubEstimator{value: 1200}
	svc := NewEstimateService(est, nil, &recordingRepo{}, rediscache.NewMockCache(), time.Hour)

	in := listingMunich()
	in.GeoPLZ = "99999"

	result, err := svc.Estimate(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}
