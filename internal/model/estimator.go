// Package model wraps the trained rent regression artifact. The artifact is a
// JSON dump of the fitted pipeline: an optional calibration wrapper, named
// steps including the preprocessor's output feature names, and a
// gradient-boosted tree ensemble as the leaf estimator. The pipeline structure
// is kept inspectable so feature importance can be recovered for
// explainability; prediction itself treats the ensemble as opaque.
package model

import (
	"fmt"

	"github.com/mietwert/backend/internal/features"
)

// Estimator is the single inference contract the serving pipeline depends on.
type Estimator interface {
	Predict(vec features.FeatureVector) (float64, error)
}

// ImportanceProvider is implemented by leaf estimators that expose
// per-feature importances. Absence is a valid state: explainability is
// best-effort.
type ImportanceProvider interface {
	FeatureImportances() []float64
}

// FeatureNamer is implemented by preprocessors that can name their
// transformed output columns.
type FeatureNamer interface {
	FeatureNamesOut() []string
}

// Unwrapper is implemented by wrapper layers holding an inner estimator.
type Unwrapper interface {
	Unwrap() Estimator
}

// CalibratedRegressor rescales the wrapped regressor's raw output. Scale and
// offset come from the training-time calibration fit.
type CalibratedRegressor struct {
	Regressor Estimator
	Scale     float64
	Offset    float64
}

func (c *CalibratedRegressor) Predict(vec features.FeatureVector) (float64, error) {
	raw, err := c.Regressor.Predict(vec)
	if err != nil {
		return 0, err
	}
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	return raw*scale + c.Offset, nil
}

func (c *CalibratedRegressor) Unwrap() Estimator {
	return c.Regressor
}

// Step is one named stage of a fitted pipeline. Exactly one of Preprocessor
// and Estimator is set.
type Step struct {
	Name         string
	Preprocessor *Preprocessor
	Estimator    Estimator
}

// Preprocessor records the fitted transformer's output schema. The transform
// itself happened at training time; serving only needs the resulting column
// names for explainability.
type Preprocessor struct {
	OutputNames []string
}

func (p *Preprocessor) FeatureNamesOut() []string {
	return p.OutputNames
}

// Pipeline is an ordered set of named steps ending in the leaf estimator.
type Pipeline struct {
	Steps []Step
}

// Leaf returns the final step's estimator, or nil for an empty pipeline.
func (p *Pipeline) Leaf() Estimator {
	for i := len(p.Steps) - 1; i >= 0; i-- {
		if p.Steps[i].Estimator != nil {
			return p.Steps[i].Estimator
		}
	}
	return nil
}

// NamedStep returns the step with the given name, or nil.
func (p *Pipeline) NamedStep(name string) *Step {
	for i := range p.Steps {
		if p.Steps[i].Name == name {
			return &p.Steps[i]
		}
	}
	return nil
}

func (p *Pipeline) Predict(vec features.FeatureVector) (float64, error) {
	leaf := p.Leaf()
	if leaf == nil {
		return 0, fmt.Errorf("model: pipeline has no estimator step")
	}
	return leaf.Predict(vec)
}
