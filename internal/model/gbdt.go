package model

import (
	"fmt"

	"github.com/mietwert/backend/internal/features"
)

// TreeNode is one node of a regression tree. Interior nodes split on a
// feature column: numeric and boolean cells go left when value <= Threshold,
// categorical cells go left when the token is in Categories.
type TreeNode struct {
	Feature    string   `json:"feature,omitempty"`
	Threshold  float64  `json:"threshold,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Left       int      `json:"left,omitempty"`
	Right      int      `json:"right,omitempty"`
	Leaf       bool     `json:"leaf,omitempty"`
	Value      float64  `json:"value,omitempty"`
}

// Tree is a single regression tree; node 0 is the root.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// GradientBoostedModel is the leaf estimator of the fitted pipeline: an
// additive ensemble of regression trees over the raw feature columns.
type GradientBoostedModel struct {
	BaseScore   float64   `json:"base_score"`
	Trees       []Tree    `json:"trees"`
	Importances []float64 `json:"feature_importances"`
}

// Predict sums the base score and every tree's leaf value for the record.
func (m *GradientBoostedModel) Predict(vec features.FeatureVector) (float64, error) {
	score := m.BaseScore
	for i := range m.Trees {
		leaf, err := m.Trees[i].score(vec)
		if err != nil {
			return 0, fmt.Errorf("model: tree %d: %w", i, err)
		}
		score += leaf
	}
	return score, nil
}

// FeatureImportances exposes the training-time importance vector. May be
// empty when the dump omitted it.
func (m *GradientBoostedModel) FeatureImportances() []float64 {
	return m.Importances
}

func (t *Tree) score(vec features.FeatureVector) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, fmt.Errorf("empty tree")
	}
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("node index %d out of range", idx)
		}
		node := t.Nodes[idx]
		if node.Leaf {
			return node.Value, nil
		}
		goLeft, err := node.branch(vec)
		if err != nil {
			return 0, err
		}
		if goLeft {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0, fmt.Errorf("cycle detected")
}

func (n *TreeNode) branch(vec features.FeatureVector) (bool, error) {
	cell, ok := vec.Lookup(n.Feature)
	if !ok {
		return false, fmt.Errorf("unknown feature column %q", n.Feature)
	}
	if len(n.Categories) > 0 {
		for _, c := range n.Categories {
			if cell.Str == c {
				return true, nil
			}
		}
		return false, nil
	}
	value, ok := cell.Float()
	if !ok {
		return false, fmt.Errorf("numeric split on categorical column %q", n.Feature)
	}
	return value <= n.Threshold, nil
}
