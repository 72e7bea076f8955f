package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mietwert/backend/internal/domain"
)

// artifactFile is the on-disk JSON layout of a trained model dump.
type artifactFile struct {
	Format      string           `json:"format"`
	Version     int              `json:"version"`
	Calibration *calibrationSpec `json:"calibration,omitempty"`
	Pipeline    pipelineSpec     `json:"pipeline"`
}

type calibrationSpec struct {
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset"`
}

type pipelineSpec struct {
	Steps []stepSpec `json:"steps"`
}

type stepSpec struct {
	Name            string                `json:"name"`
	FeatureNamesOut []string              `json:"feature_names_out,omitempty"`
	Estimator       *GradientBoostedModel `json:"estimator,omitempty"`
}

const artifactFormat = "mietwert-gbdt"

// LoadArtifact reads a trained model dump and reconstructs the estimator
// chain. Load failures wrap domain.ErrModelUnavailable so callers can tell a
// missing artifact apart from a bad prediction input.
func LoadArtifact(path string) (Estimator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: reading %s: %v: %w", path, err, domain.ErrModelUnavailable)
	}

	var file artifactFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("model: parsing %s: %v: %w", path, err, domain.ErrModelUnavailable)
	}
	if file.Format != artifactFormat {
		return nil, fmt.Errorf("model: %s has format %q, want %q: %w", path, file.Format, artifactFormat, domain.ErrModelUnavailable)
	}

	pipe := &Pipeline{}
	for _, s := range file.Pipeline.Steps {
		step := Step{Name: s.Name}
		switch {
		case s.Estimator != nil:
			step.Estimator = s.Estimator
		case len(s.FeatureNamesOut) > 0:
			step.Preprocessor = &Preprocessor{OutputNames: s.FeatureNamesOut}
		}
		pipe.Steps = append(pipe.Steps, step)
	}
	if pipe.Leaf() == nil {
		return nil, fmt.Errorf("model: %s has no estimator step: %w", path, domain.ErrModelUnavailable)
	}

	if file.Calibration != nil {
		return &CalibratedRegressor{
			Regressor: pipe,
			Scale:     file.Calibration.Scale,
			Offset:    file.Calibration.Offset,
		}, nil
	}
	return pipe, nil
}
