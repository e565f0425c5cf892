package verdict

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBandFor(t *testing.T) {
	Convey("Given confidence values", t, func() {
		cases := []struct {
			c    float64
			want Band
		}{
			{1.0, BandHigh},
			{0.82, BandHigh},
			{0.70, BandHigh},
			{0.6999, BandModerate},
			{0.50, BandModerate},
			{0.4999, BandLow},
			{0.31, BandLow},
			{0.0, BandLow},
		}
		for _, tc := range cases {
			So(BandFor(tc.c), ShouldEqual, tc.want)
		}
	})
}

func TestBandText(t *testing.T) {
	Convey("Given each band", t, func() {
		So(BandHigh.String(), ShouldEqual, "high")
		So(BandModerate.String(), ShouldEqual, "moderate")
		So(BandLow.String(), ShouldEqual, "low")
		So(BandNone.String(), ShouldEqual, "none")

		So(BandHigh.Message(), ShouldContainSubstring, "High confidence")
		So(BandModerate.Message(), ShouldContainSubstring, "Moderate confidence")
		So(BandLow.Message(), ShouldContainSubstring, "Lower confidence")
		So(BandNone.Message(), ShouldBeEmpty)
	})
}

func TestRender(t *testing.T) {
	Convey("Given a positive label with probability 0.82", t, func() {
		v := Render(1, 0.82, true)

		Convey("Then a top finish with high confidence is shown", func() {
			So(v.TopFinish, ShouldBeTrue)
			So(v.Headline, ShouldContainSubstring, "TOP FINISH PREDICTED")
			So(v.CardClass, ShouldEqual, "prediction-success")
			So(v.Percent, ShouldEqual, 82)
			So(v.PercentText, ShouldEqual, "82.0%")
			So(v.Band, ShouldEqual, BandHigh)
			So(v.BandMessage, ShouldContainSubstring, "High confidence")
		})
	})

	Convey("Given a negative label with probability 0.31", t, func() {
		v := Render(0, 0.31, true)

		Convey("Then not a top finish with lower confidence is shown", func() {
			So(v.TopFinish, ShouldBeFalse)
			So(v.Outcome, ShouldEqual, OutcomeNotTopFinish)
			So(v.Headline, ShouldContainSubstring, "NOT A TOP FINISH")
			So(v.CardClass, ShouldEqual, "prediction-warning")
			So(v.Percent, ShouldEqual, 31)
			So(v.PercentText, ShouldEqual, "31.0%")
			So(v.Band, ShouldEqual, BandLow)
			So(v.BandMessage, ShouldContainSubstring, "Lower confidence")
		})
	})

	Convey("Given a model without probabilities", t, func() {
		v := Render(1, 0, false)

		Convey("Then only the label is rendered", func() {
			So(v.TopFinish, ShouldBeTrue)
			So(v.HasConfidence, ShouldBeFalse)
			So(v.PercentText, ShouldBeEmpty)
			So(v.Band, ShouldEqual, BandNone)
			So(v.BandMessage, ShouldBeEmpty)
		})
	})

	Convey("Given labels other than one", t, func() {
		So(Render(2, 0.9, true).TopFinish, ShouldBeFalse)
		So(Render(-1, 0.9, true).TopFinish, ShouldBeFalse)
	})

	Convey("Given out-of-range probabilities", t, func() {
		So(Render(1, 1.4, true).Percent, ShouldEqual, 100)
		So(Render(0, -0.2, true).Percent, ShouldEqual, 0)
	})

	Convey("Given identical inputs", t, func() {
		So(Render(1, 0.655, true), ShouldResemble, Render(1, 0.655, true))
	})

	Convey("Given fractional percentages", t, func() {
		v := Render(1, 0.6789, true)
		So(v.Percent, ShouldEqual, 67)
		So(v.PercentText, ShouldEqual, "67.9%")
		So(v.Band, ShouldEqual, BandModerate)

		So(Render(1, 0.29, true).Percent, ShouldEqual, 29)
		So(Render(1, 0.57, true).Percent, ShouldEqual, 57)
	})
}
