// Package service ties the form record, the predictor and the result
// renderer together for one interaction.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/f1predict/internal/domain/record"
	"github.com/okian/f1predict/internal/domain/verdict"
	"github.com/okian/f1predict/internal/inference"
	"github.com/okian/f1predict/pkg/logger"
	"github.com/okian/f1predict/pkg/metrics"
)

// Predictor is the inference dependency of the service.
type Predictor interface {
	Predict(ctx context.Context, rec record.Record) (inference.Prediction, error)
	Info() inference.Info
}

// Outcome is everything the page needs after one prediction.
type Outcome struct {
	ID         string
	Record     record.Record
	Prediction inference.Prediction
	View       verdict.View
}

// Service evaluates records against the loaded model.
type Service struct {
	predictor Predictor
	logger    logger.Logger
	newID     func() string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the interaction id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a Service around an already loaded predictor.
func New(predictor Predictor, opts ...Option) (*Service, error) {
	if predictor == nil {
		return nil, ErrNoPredictor
	}
	s := &Service{
		predictor: predictor,
		logger:    logger.Nop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Model describes the loaded model.
func (s *Service) Model() inference.Info {
	return s.predictor.Info()
}

// Evaluate predicts rec and renders the result.
func (s *Service) Evaluate(ctx context.Context, rec record.Record) (Outcome, error) {
	id := s.newID()

	pred, err := s.predictor.Predict(ctx, rec)
	if err != nil {
		if errors.Is(err, record.ErrNonFinite) {
			metrics.RecordFormError()
			return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		s.logger.Error(ctx, "prediction failed", logger.String("interaction_id", id), logger.Error(err))
		return Outcome{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}

	view := verdict.Render(pred.Label, pred.Probability, pred.HasProbability)

	metrics.RecordPrediction(view.Outcome)
	metrics.RecordConfidenceBand(view.Band.String())

	fields := []logger.Field{
		logger.String("interaction_id", id),
		logger.Int("label", pred.Label),
		logger.String("band", view.Band.String()),
	}
	if pred.HasProbability {
		fields = append(fields, logger.Float64("probability", pred.Probability))
	}
	s.logger.Debug(ctx, "prediction rendered", fields...)

	return Outcome{ID: id, Record: rec, Prediction: pred, View: view}, nil
}
