package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNoPredictor  = errors.New("predictor is required")
	ErrInvalidInput = errors.New("invalid input")
	ErrPrediction   = errors.New("prediction failed")
)
