package inference

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/okian/f1predict/internal/domain/record"
	"github.com/okian/f1predict/pkg/metrics"
)

const defaultCacheSize = 1024

// Predictor runs a loaded classifier against records. It is safe for
// concurrent use; the classifier is never mutated after load.
type Predictor struct {
	clf      Classifier
	proba    ProbabilisticClassifier
	features []string
	info     Info

	cacheSize int
	cache     *lru.Cache[record.Record, Prediction]
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithCacheSize bounds the result cache. Zero disables it.
func WithCacheSize(size int) Option {
	return func(p *Predictor) {
		if size >= 0 {
			p.cacheSize = size
		}
	}
}

// NewPredictor wraps clf. The probability capability is resolved here, once.
func NewPredictor(clf Classifier, opts ...Option) (*Predictor, error) {
	if clf == nil {
		return nil, ErrNoClassifier
	}
	p := &Predictor{
		clf:       clf,
		features:  record.ColumnNames(),
		info:      Describe(clf),
		cacheSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	if pc, ok := clf.(ProbabilisticClassifier); ok {
		p.proba = pc
	}
	if fo, ok := clf.(FeatureOrder); ok {
		p.features = fo.Features()
	}
	if p.cacheSize > 0 {
		cache, err := lru.New[record.Record, Prediction](p.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create prediction cache: %w", err)
		}
		p.cache = cache
	}

	metrics.SetModelLoaded(true, p.proba != nil)
	return p, nil
}

// Probabilistic reports whether predictions carry a confidence.
func (p *Predictor) Probabilistic() bool { return p.proba != nil }

// Info describes the wrapped model.
func (p *Predictor) Info() Info { return p.info }

// Predict returns the label and, when available, the positive-class
// probability for rec. Identical records always produce identical results.
func (p *Predictor) Predict(ctx context.Context, rec record.Record) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if err := rec.Validate(); err != nil {
		return Prediction{}, err
	}

	if p.cache != nil {
		if cached, ok := p.cache.Get(rec); ok {
			metrics.RecordCacheHit()
			return cached, nil
		}
		metrics.RecordCacheMiss()
	}

	start := time.Now()
	pred, err := p.run(rec)
	metrics.RecordInferenceLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		return Prediction{}, err
	}

	if p.cache != nil {
		p.cache.Add(rec, pred)
	}
	return pred, nil
}

func (p *Predictor) run(rec record.Record) (Prediction, error) {
	x, err := rec.VectorFor(p.features)
	if err != nil {
		return Prediction{}, err
	}

	label, err := p.clf.Predict(x)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	pred := Prediction{Label: label}

	if p.proba == nil {
		return pred, nil
	}
	probs, err := p.proba.PredictProba(x)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict proba: %w", err)
	}
	if len(probs) < 2 {
		return Prediction{}, fmt.Errorf("predict proba: expected 2 classes, got %d", len(probs))
	}
	pred.Probability = probs[1]
	pred.HasProbability = true
	return pred, nil
}
