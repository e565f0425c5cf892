package inference

import "errors"

// Sentinel errors for this package.
var (
	// ErrLoadArtifact wraps failures to read the artifact from disk.
	ErrLoadArtifact = errors.New("load model artifact failed")
	// ErrInvalidArtifact marks a document that cannot become a pipeline.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrFeatureCount marks a vector whose length does not match the model.
	ErrFeatureCount = errors.New("feature count mismatch")
	// ErrNoClassifier is returned when a predictor is built without a model.
	ErrNoClassifier = errors.New("no classifier configured")
)
