package inference

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/f1predict/internal/domain/record"
)

// pipeline applies transforms in order and hands the result to an estimator.
type pipeline struct {
	name       string
	features   []string
	transforms []transformer
	est        estimator
}

// probabilisticPipeline is a pipeline whose estimator reports probabilities.
type probabilisticPipeline struct {
	*pipeline
	proba probabilisticEstimator
}

// Build turns a parsed document into a Classifier. The result also
// implements ProbabilisticClassifier when the final step supports it.
func Build(doc Document) (Classifier, error) {
	features, err := checkFeatures(doc.Features)
	if err != nil {
		return nil, err
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("%w: pipeline has no steps", ErrInvalidArtifact)
	}

	n := len(features)
	p := &pipeline{name: doc.Name, features: features}
	if strings.TrimSpace(p.name) == "" {
		p.name = "pipeline"
	}

	last := len(doc.Steps) - 1
	for i, step := range doc.Steps[:last] {
		t, err := newTransformer(step, n)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		p.transforms = append(p.transforms, t)
	}

	est, err := newEstimator(doc.Steps[last], n)
	if err != nil {
		return nil, fmt.Errorf("step %d: %w", last, err)
	}
	p.est = est

	if pe, ok := est.(probabilisticEstimator); ok {
		return &probabilisticPipeline{pipeline: p, proba: pe}, nil
	}
	return p, nil
}

func checkFeatures(features []string) ([]string, error) {
	if len(features) == 0 {
		return record.ColumnNames(), nil
	}
	want := record.ColumnNames()
	if len(features) != len(want) {
		return nil, fmt.Errorf("%w: expected %d features, got %d", ErrInvalidArtifact, len(want), len(features))
	}
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		if !record.IsColumn(f) {
			return nil, fmt.Errorf("%w: unknown feature %q", ErrInvalidArtifact, f)
		}
		if _, dup := seen[f]; dup {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, f)
		}
		seen[f] = struct{}{}
	}
	return append([]string(nil), features...), nil
}

func newTransformer(doc StepDocument, n int) (transformer, error) {
	switch doc.Type {
	case StepStandardScaler:
		return newStandardScaler(doc, n)
	case StepMinMaxScaler:
		return newMinMaxScaler(doc, n)
	case StepLogisticRegression, StepLinearSVC, StepDecisionTree:
		return nil, fmt.Errorf("%w: estimator %q must be the last step", ErrInvalidArtifact, doc.Type)
	default:
		return nil, fmt.Errorf("%w: unknown step type %q", ErrInvalidArtifact, doc.Type)
	}
}

func newEstimator(doc StepDocument, n int) (estimator, error) {
	switch doc.Type {
	case StepLogisticRegression:
		lm, err := newLinearModel(doc.Type, doc, n)
		if err != nil {
			return nil, err
		}
		return &logisticRegression{linearModel: lm}, nil
	case StepLinearSVC:
		lm, err := newLinearModel(doc.Type, doc, n)
		if err != nil {
			return nil, err
		}
		return &linearSVC{linearModel: lm}, nil
	case StepDecisionTree:
		return newDecisionTree(doc, n)
	case StepStandardScaler, StepMinMaxScaler:
		return nil, fmt.Errorf("%w: last step must be an estimator, got %q", ErrInvalidArtifact, doc.Type)
	default:
		return nil, fmt.Errorf("%w: unknown step type %q", ErrInvalidArtifact, doc.Type)
	}
}

// Features returns the column order the pipeline expects.
func (p *pipeline) Features() []string {
	return append([]string(nil), p.features...)
}

func (p *pipeline) transform(x []float64) ([]float64, error) {
	if len(x) != len(p.features) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrFeatureCount, len(p.features), len(x))
	}
	out := x
	for _, t := range p.transforms {
		out = t.Transform(out)
	}
	return out, nil
}

// Predict implements Classifier.
func (p *pipeline) Predict(x []float64) (int, error) {
	z, err := p.transform(x)
	if err != nil {
		return 0, err
	}
	return p.est.Predict(z)
}

// Info implements the describer used by Describe.
func (p *pipeline) Info() Info {
	steps := make([]string, 0, len(p.transforms)+1)
	for _, t := range p.transforms {
		steps = append(steps, t.Name())
	}
	steps = append(steps, p.est.Name())
	_, proba := p.est.(probabilisticEstimator)
	return Info{
		Name:          p.name,
		Estimator:     p.est.Name(),
		Steps:         steps,
		Features:      p.Features(),
		Probabilistic: proba,
	}
}

// PredictProba implements ProbabilisticClassifier.
func (p *probabilisticPipeline) PredictProba(x []float64) ([]float64, error) {
	z, err := p.transform(x)
	if err != nil {
		return nil, err
	}
	probs, err := p.proba.PredictProba(z)
	if err != nil {
		return nil, err
	}
	for _, v := range probs {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: model produced NaN probability", ErrInvalidArtifact)
		}
	}
	return probs, nil
}
