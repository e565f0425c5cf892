package inference

import (
	"errors"
	"fmt"
	"math"
)

// estimator is the final step of a pipeline.
type estimator interface {
	Classifier
	Name() string
}

type probabilisticEstimator interface {
	estimator
	PredictProba(features []float64) ([]float64, error)
}

// linearModel computes coef·x + intercept.
type linearModel struct {
	coef      []float64
	intercept float64
}

func newLinearModel(kind string, doc StepDocument, n int) (linearModel, error) {
	if len(doc.Coef) != n {
		return linearModel{}, fmt.Errorf("%w: %s needs %d coefficients, got %d",
			ErrInvalidArtifact, kind, n, len(doc.Coef))
	}
	return linearModel{coef: append([]float64(nil), doc.Coef...), intercept: doc.Intercept}, nil
}

func (m linearModel) decision(x []float64) float64 {
	z := m.intercept
	for i, c := range m.coef {
		z += c * x[i]
	}
	return z
}

// logisticRegression reports sigmoid(coef·x + intercept) as p(label 1).
type logisticRegression struct {
	linearModel
}

func (m *logisticRegression) Name() string { return StepLogisticRegression }

func (m *logisticRegression) Predict(x []float64) (int, error) {
	if m.decision(x) > 0 {
		return 1, nil
	}
	return 0, nil
}

func (m *logisticRegression) PredictProba(x []float64) ([]float64, error) {
	p := sigmoid(m.decision(x))
	return []float64{1 - p, p}, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// linearSVC only reports the side of the separating hyperplane.
type linearSVC struct {
	linearModel
}

func (m *linearSVC) Name() string { return StepLinearSVC }

func (m *linearSVC) Predict(x []float64) (int, error) {
	if m.decision(x) > 0 {
		return 1, nil
	}
	return 0, nil
}

var errTreeCycle = errors.New("decision tree walk did not reach a leaf")

// decisionTree walks a flattened tree from node 0.
type decisionTree struct {
	nodes []TreeNode
}

func newDecisionTree(doc StepDocument, n int) (estimator, error) {
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("%w: %s has no nodes", ErrInvalidArtifact, StepDecisionTree)
	}
	withProba := true
	for i, node := range doc.Nodes {
		if node.IsLeaf {
			switch len(node.Proba) {
			case 0:
				withProba = false
			case 2:
			default:
				return nil, fmt.Errorf("%w: %s leaf %d needs 2 probabilities, got %d",
					ErrInvalidArtifact, StepDecisionTree, i, len(node.Proba))
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= n {
			return nil, fmt.Errorf("%w: %s node %d uses feature %d of %d",
				ErrInvalidArtifact, StepDecisionTree, i, node.FeatureIdx, n)
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(doc.Nodes) {
				return nil, fmt.Errorf("%w: %s node %d has invalid child %d",
					ErrInvalidArtifact, StepDecisionTree, i, child)
			}
		}
	}

	tree := &decisionTree{nodes: append([]TreeNode(nil), doc.Nodes...)}
	if withProba {
		return &probabilisticTree{decisionTree: tree}, nil
	}
	return tree, nil
}

func (t *decisionTree) Name() string { return StepDecisionTree }

func (t *decisionTree) leaf(x []float64) (TreeNode, error) {
	idx := 0
	for range t.nodes {
		node := t.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if x[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
	return TreeNode{}, errTreeCycle
}

func (t *decisionTree) Predict(x []float64) (int, error) {
	node, err := t.leaf(x)
	if err != nil {
		return 0, err
	}
	return node.ClassLabel, nil
}

// probabilisticTree is a decisionTree whose every leaf carries probabilities.
type probabilisticTree struct {
	*decisionTree
}

func (t *probabilisticTree) PredictProba(x []float64) ([]float64, error) {
	node, err := t.leaf(x)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), node.Proba...), nil
}
