// Package inference loads the pre-trained top-finish pipeline and runs it
// against input records.
//
// A loaded pipeline is always a Classifier. It is additionally a
// ProbabilisticClassifier when its final estimator reports class
// probabilities; the capability is fixed when the artifact is loaded.
package inference

// Classifier predicts a class label for a feature vector.
type Classifier interface {
	Predict(features []float64) (int, error)
}

// ProbabilisticClassifier also reports per-class probabilities, ordered
// [p(label 0), p(label 1)].
type ProbabilisticClassifier interface {
	Classifier
	PredictProba(features []float64) ([]float64, error)
}

// FeatureOrder is implemented by classifiers that expect their features in a
// specific column order.
type FeatureOrder interface {
	Features() []string
}

// Prediction is the classifier's answer for one record.
type Prediction struct {
	Label int
	// Probability of the positive class; meaningful only when HasProbability.
	Probability    float64
	HasProbability bool
}

// Info describes a loaded model for health checks and the inspect command.
type Info struct {
	Name          string   `json:"name"`
	Estimator     string   `json:"estimator"`
	Steps         []string `json:"steps"`
	Features      []string `json:"features"`
	Probabilistic bool     `json:"probabilistic"`
}

// Describe reports what is known about c.
func Describe(c Classifier) Info {
	if d, ok := c.(interface{ Info() Info }); ok {
		return d.Info()
	}
	_, proba := c.(ProbabilisticClassifier)
	info := Info{Name: "unnamed", Estimator: "unknown", Probabilistic: proba}
	if fo, ok := c.(FeatureOrder); ok {
		info.Features = fo.Features()
	}
	return info
}
