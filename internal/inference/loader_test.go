package inference

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given artifacts on disk", t, func() {
		Convey("When loading a logistic regression pipeline", func() {
			clf, err := Load(filepath.Join("testdata", "logistic.json"))

			Convey("Then it is a probabilistic classifier", func() {
				So(err, ShouldBeNil)
				_, ok := clf.(ProbabilisticClassifier)
				So(ok, ShouldBeTrue)

				info := Describe(clf)
				So(info.Name, ShouldEqual, "best_pipeline")
				So(info.Estimator, ShouldEqual, StepLogisticRegression)
				So(info.Steps, ShouldResemble, []string{StepStandardScaler, StepLogisticRegression})
				So(info.Probabilistic, ShouldBeTrue)
				So(len(info.Features), ShouldEqual, 9)
			})
		})

		Convey("When loading a YAML tree with leaf probabilities", func() {
			clf, err := Load(filepath.Join("testdata", "tree_proba.yaml"))

			Convey("Then it is a probabilistic classifier", func() {
				So(err, ShouldBeNil)
				_, ok := clf.(ProbabilisticClassifier)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When loading a tree without leaf probabilities", func() {
			clf, err := Load(filepath.Join("testdata", "tree_label_only.yml"))

			Convey("Then it only predicts labels", func() {
				So(err, ShouldBeNil)
				_, ok := clf.(ProbabilisticClassifier)
				So(ok, ShouldBeFalse)
				So(Describe(clf).Probabilistic, ShouldBeFalse)
				So(Describe(clf).Name, ShouldEqual, "grid_tree_labels")
			})
		})

		Convey("When loading a linear SVC", func() {
			clf, err := Load(filepath.Join("testdata", "svc.json"))

			Convey("Then it only predicts labels", func() {
				So(err, ShouldBeNil)
				_, ok := clf.(ProbabilisticClassifier)
				So(ok, ShouldBeFalse)
				So(Describe(clf).Steps, ShouldResemble, []string{StepMinMaxScaler, StepLinearSVC})
			})
		})

		Convey("When the file is missing", func() {
			_, err := Load(filepath.Join("testdata", "missing.json"))

			Convey("Then a load error is returned", func() {
				So(errors.Is(err, ErrLoadArtifact), ShouldBeTrue)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})

		Convey("When the document does not fit the record", func() {
			_, err := Load(filepath.Join("testdata", "broken.json"))

			Convey("Then an invalid artifact error is returned", func() {
				So(errors.Is(err, ErrInvalidArtifact), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "broken.json")
			})
		})

		Convey("When the file has an unsupported extension", func() {
			_, err := Load("model/best_pipeline.joblib")

			Convey("Then it is rejected before reading", func() {
				So(errors.Is(err, ErrInvalidArtifact), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, ".joblib")
			})
		})

		Convey("When the file is corrupt", func() {
			path := filepath.Join(t.TempDir(), "corrupt.json")
			So(os.WriteFile(path, []byte("\x80\x04\x95 not json"), 0o600), ShouldBeNil)
			_, err := Load(path)

			So(errors.Is(err, ErrInvalidArtifact), ShouldBeTrue)
		})
	})
}

func TestMemoLoader(t *testing.T) {
	Convey("Given a memoized loader", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "model.json")
		data, err := os.ReadFile(filepath.Join("testdata", "logistic.json"))
		So(err, ShouldBeNil)
		So(os.WriteFile(path, data, 0o600), ShouldBeNil)

		load := MemoLoader(path)
		first, err := load()
		So(err, ShouldBeNil)

		Convey("When the file disappears after the first call", func() {
			So(os.Remove(path), ShouldBeNil)
			second, err := load()

			Convey("Then the cached model is returned without reading again", func() {
				So(err, ShouldBeNil)
				So(second, ShouldEqual, first)
			})
		})
	})

	Convey("Given a memoized loader for a missing file", t, func() {
		load := MemoLoader(filepath.Join(t.TempDir(), "absent.json"))
		_, err1 := load()
		_, err2 := load()

		Convey("Then the same error is returned every time", func() {
			So(err1, ShouldNotBeNil)
			So(err2, ShouldEqual, err1)
		})
	})
}
