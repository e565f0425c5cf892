package inference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the serialization of an artifact document.
type Format string

// Supported artifact formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Step type names accepted in artifacts.
const (
	StepStandardScaler     = "standard_scaler"
	StepMinMaxScaler       = "min_max_scaler"
	StepLogisticRegression = "logistic_regression"
	StepLinearSVC          = "linear_svc"
	StepDecisionTree       = "decision_tree"
)

// Document is the serialized form of a pipeline.
type Document struct {
	Name     string         `json:"name" yaml:"name"`
	Features []string       `json:"features" yaml:"features"`
	Steps    []StepDocument `json:"steps" yaml:"steps"`
}

// StepDocument holds the parameters of one pipeline step. Which fields are
// read depends on Type.
type StepDocument struct {
	Type string `json:"type" yaml:"type"`

	// standard_scaler: (x - mean) / scale
	Mean []float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	// standard_scaler and min_max_scaler
	Scale []float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
	// min_max_scaler: x*scale + min
	Min []float64 `json:"min,omitempty" yaml:"min,omitempty"`

	// logistic_regression and linear_svc
	Coef      []float64 `json:"coef,omitempty" yaml:"coef,omitempty"`
	Intercept float64   `json:"intercept,omitempty" yaml:"intercept,omitempty"`

	// decision_tree
	Nodes []TreeNode `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

// TreeNode is one node of a flattened decision tree. Internal nodes send
// features[FeatureIdx] <= Threshold to LeftChild, everything else to
// RightChild. Leaves carry a label and, optionally, class probabilities.
type TreeNode struct {
	FeatureIdx int       `json:"feature_idx" yaml:"feature_idx"`
	Threshold  float64   `json:"threshold" yaml:"threshold"`
	LeftChild  int       `json:"left_child" yaml:"left_child"`
	RightChild int       `json:"right_child" yaml:"right_child"`
	ClassLabel int       `json:"class_label" yaml:"class_label"`
	IsLeaf     bool      `json:"is_leaf" yaml:"is_leaf"`
	Proba      []float64 `json:"proba,omitempty" yaml:"proba,omitempty"`
}

// FormatFor picks the document format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported artifact format %q", ErrInvalidArtifact, filepath.Ext(path))
	}
}

// ParseDocument decodes raw artifact bytes.
func ParseDocument(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
		}
	default:
		return Document{}, fmt.Errorf("%w: unsupported artifact format %q", ErrInvalidArtifact, format)
	}
	return doc, nil
}
