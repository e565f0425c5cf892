package inference

import (
	"fmt"
	"os"
	"sync"
)

// Load reads, parses and builds the pipeline stored at path. Any error is
// meant to stop the process: there is no fallback model.
func Load(path string) (Classifier, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadArtifact, err)
	}
	doc, err := ParseDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	clf, err := Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clf, nil
}

// MemoLoader returns a loader that reads path on first call only. Later
// calls return the same Classifier, or the same error.
func MemoLoader(path string) func() (Classifier, error) {
	return sync.OnceValues(func() (Classifier, error) {
		return Load(path)
	})
}
