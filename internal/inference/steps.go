package inference

import "fmt"

// transformer rewrites a feature vector before it reaches the estimator.
type transformer interface {
	Transform(x []float64) []float64
	Name() string
}

type standardScaler struct {
	mean  []float64
	scale []float64
}

func newStandardScaler(doc StepDocument, n int) (*standardScaler, error) {
	if len(doc.Mean) != n || len(doc.Scale) != n {
		return nil, fmt.Errorf("%w: %s needs %d mean and scale values, got %d and %d",
			ErrInvalidArtifact, StepStandardScaler, n, len(doc.Mean), len(doc.Scale))
	}
	scale := make([]float64, n)
	for i, s := range doc.Scale {
		// Constant features are stored with a zero scale; leave them unscaled.
		if s == 0 {
			s = 1
		}
		scale[i] = s
	}
	return &standardScaler{mean: append([]float64(nil), doc.Mean...), scale: scale}, nil
}

func (s *standardScaler) Name() string { return StepStandardScaler }

func (s *standardScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = (x[i] - s.mean[i]) / s.scale[i]
	}
	return out
}

type minMaxScaler struct {
	min   []float64
	scale []float64
}

func newMinMaxScaler(doc StepDocument, n int) (*minMaxScaler, error) {
	if len(doc.Min) != n || len(doc.Scale) != n {
		return nil, fmt.Errorf("%w: %s needs %d min and scale values, got %d and %d",
			ErrInvalidArtifact, StepMinMaxScaler, n, len(doc.Min), len(doc.Scale))
	}
	return &minMaxScaler{
		min:   append([]float64(nil), doc.Min...),
		scale: append([]float64(nil), doc.Scale...),
	}, nil
}

func (s *minMaxScaler) Name() string { return StepMinMaxScaler }

func (s *minMaxScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i]*s.scale[i] + s.min[i]
	}
	return out
}
