package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/mietwert/backend/internal/domain"
	"github.com/mietwert/backend/internal/features"
)

// topFeatures is how many ranked entries RankImportances returns. Importance
// mass beyond the cut is dropped, not redistributed, so the returned weights
// sum to at most 100.
const topFeatures = 8

// RankImportances extracts the trained model's per-feature importances and
// normalizes them into percentage weights, descending, top entries only.
//
// The estimator chain is walked explicitly: calibration wrappers are
// unwrapped, a pipeline contributes its preprocessor's transformed column
// names, and the leaf estimator supplies the raw importances. Names fall back
// to the input vector's columns when the counts happen to match, then to
// positional placeholders. A leaf without importances yields an empty list;
// that is a valid outcome, not an error.
func RankImportances(est Estimator, vec features.FeatureVector) []domain.FeatureWeight {
	inner := est
	if u, ok := inner.(Unwrapper); ok {
		inner = u.Unwrap()
	}

	var pipe *Pipeline
	leaf := inner
	if p, ok := inner.(*Pipeline); ok {
		pipe = p
		if l := p.Leaf(); l != nil {
			leaf = l
		}
	}

	provider, ok := leaf.(ImportanceProvider)
	if !ok {
		return []domain.FeatureWeight{}
	}
	importances := provider.FeatureImportances()
	if len(importances) == 0 {
		return []domain.FeatureWeight{}
	}

	names := transformedNames(pipe)
	if len(names) != len(importances) {
		if len(vec.Names) == len(importances) {
			names = vec.Names
		} else {
			names = placeholderNames(len(importances))
		}
	}

	total := 0.0
	for _, imp := range importances {
		total += imp
	}
	if total == 0 {
		total = 1
	}

	ranked := make([]domain.FeatureWeight, len(importances))
	for i, imp := range importances {
		ranked[i] = domain.FeatureWeight{Name: names[i], Weight: imp}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})
	if len(ranked) > topFeatures {
		ranked = ranked[:topFeatures]
	}
	for i := range ranked {
		ranked[i].Weight = math.Round(ranked[i].Weight/total*1000) / 10
	}
	return ranked
}

// transformedNames recovers the preprocessor's output column names, when the
// pipeline exposes a step capable of naming them.
func transformedNames(pipe *Pipeline) []string {
	if pipe == nil {
		return nil
	}
	if step := pipe.NamedStep("prep"); step != nil && step.Preprocessor != nil {
		return step.Preprocessor.FeatureNamesOut()
	}
	for _, step := range pipe.Steps {
		if step.Preprocessor != nil {
			return step.Preprocessor.FeatureNamesOut()
		}
	}
	return nil
}

func placeholderNames(k int) []string {
	names := make([]string, k)
	for i := range names {
		names[i] = fmt.Sprintf("feature_%d", i+1)
	}
	return names
}
