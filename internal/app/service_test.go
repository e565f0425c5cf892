package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	service "github.com/okian/f1predict/internal/app"
	"github.com/okian/f1predict/internal/domain/record"
	"github.com/okian/f1predict/internal/domain/verdict"
	"github.com/okian/f1predict/internal/inference"
	"github.com/okian/f1predict/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakePredictor struct {
	pred inference.Prediction
	err  error
	seen []record.Record
}

func (f *fakePredictor) Predict(_ context.Context, rec record.Record) (inference.Prediction, error) {
	f.seen = append(f.seen, rec)
	if f.err != nil {
		return inference.Prediction{}, f.err
	}
	return f.pred, nil
}

func (f *fakePredictor) Info() inference.Info {
	return inference.Info{Name: "fake", Estimator: "fake", Probabilistic: f.pred.HasProbability}
}

var frontRow = record.Record{
	Points:                25,
	Laps:                  58,
	Grid:                  1,
	DriverAvgPoints:       18.5,
	DriverMedianGrid:      2,
	ConstructorAvgPoints:  22.0,
	ConstructorMedianGrid: 3,
	ConstructorRefEnc:     4,
	CircuitRefEnc:         7,
}

func TestNew(t *testing.T) {
	Convey("Given no predictor", t, func() {
		_, err := service.New(nil)
		So(errors.Is(err, service.ErrNoPredictor), ShouldBeTrue)
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a service over a probabilistic model", t, func() {
		fake := &fakePredictor{pred: inference.Prediction{Label: 1, Probability: 0.82, HasProbability: true}}
		svc, err := service.New(fake,
			service.WithLogger(logger.Nop()),
			service.WithIDGenerator(func() string { return "interaction-1" }),
		)
		So(err, ShouldBeNil)

		Convey("When all fields are zero", func() {
			out, err := svc.Evaluate(context.Background(), record.Record{})

			Convey("Then a confident top finish is rendered", func() {
				So(err, ShouldBeNil)
				So(out.ID, ShouldEqual, "interaction-1")
				So(out.View.Headline, ShouldContainSubstring, "TOP FINISH PREDICTED")
				So(out.View.Percent, ShouldEqual, 82)
				So(out.View.Band, ShouldEqual, verdict.BandHigh)
				So(fake.seen, ShouldResemble, []record.Record{{}})
			})
		})

		Convey("When the model fails", func() {
			fake.err = errors.New("model exploded")
			_, err := svc.Evaluate(context.Background(), frontRow)

			Convey("Then a prediction error is returned", func() {
				So(errors.Is(err, service.ErrPrediction), ShouldBeTrue)
			})
		})

		Convey("When the predictor rejects the record as non-finite", func() {
			fake.err = record.ErrNonFinite
			_, err := svc.Evaluate(context.Background(), frontRow)

			Convey("Then an invalid input error is returned", func() {
				So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
				So(errors.Is(err, service.ErrPrediction), ShouldBeFalse)
			})
		})

		Convey("Then the model description is exposed", func() {
			So(svc.Model().Name, ShouldEqual, "fake")
		})
	})

	Convey("Given a service over a label-only model", t, func() {
		svc, err := service.New(&fakePredictor{pred: inference.Prediction{Label: 1}})
		So(err, ShouldBeNil)

		out, err := svc.Evaluate(context.Background(), frontRow)
		So(err, ShouldBeNil)

		Convey("Then the label is rendered without confidence", func() {
			So(out.View.TopFinish, ShouldBeTrue)
			So(out.View.HasConfidence, ShouldBeFalse)
			So(out.View.Band, ShouldEqual, verdict.BandNone)
			So(out.ID, ShouldNotBeEmpty)
		})
	})
}

func TestEvaluateWithArtifact(t *testing.T) {
	Convey("Given the service over the shipped logistic artifact", t, func() {
		clf, err := inference.Load(filepath.Join("..", "inference", "testdata", "logistic.json"))
		So(err, ShouldBeNil)
		predictor, err := inference.NewPredictor(clf)
		So(err, ShouldBeNil)
		svc, err := service.New(predictor)
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When the front-row record is evaluated", func() {
			out, err := svc.Evaluate(ctx, frontRow)

			Convey("Then it is not a top finish with lower confidence", func() {
				So(err, ShouldBeNil)
				So(out.View.Headline, ShouldContainSubstring, "NOT A TOP FINISH")
				So(out.View.Percent, ShouldEqual, 31)
				So(out.View.Band, ShouldEqual, verdict.BandLow)
			})
		})

		Convey("When the same record is evaluated twice", func() {
			a, err := svc.Evaluate(ctx, frontRow)
			So(err, ShouldBeNil)
			b, err := svc.Evaluate(ctx, frontRow)
			So(err, ShouldBeNil)

			Convey("Then label and confidence match", func() {
				So(b.Prediction, ShouldResemble, a.Prediction)
				So(b.View, ShouldResemble, a.View)
				So(b.ID, ShouldNotEqual, a.ID)
			})
		})
	})
}
