// Package verdict projects a classifier result onto what the page shows:
// the outcome card, the confidence bar and a qualitative confidence band.
package verdict

import (
	"fmt"
	"math"
)

// Confidence band thresholds. Lower bounds are inclusive.
const (
	HighThreshold     = 0.70
	ModerateThreshold = 0.50
)

// PositiveLabel is the classifier label meaning a top finish.
const PositiveLabel = 1

// Band is a qualitative confidence tier.
type Band int

const (
	BandNone Band = iota
	BandLow
	BandModerate
	BandHigh
)

// BandFor maps a positive-class probability to its tier.
func BandFor(confidence float64) Band {
	switch {
	case confidence >= HighThreshold:
		return BandHigh
	case confidence >= ModerateThreshold:
		return BandModerate
	default:
		return BandLow
	}
}

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandModerate:
		return "moderate"
	case BandLow:
		return "low"
	default:
		return "none"
	}
}

// Message is the sentence shown under the confidence bar.
func (b Band) Message() string {
	switch b {
	case BandHigh:
		return "🔥 High confidence - Strong indicators for a top finish!"
	case BandModerate:
		return "⚡ Moderate confidence - Good chance of top finish."
	case BandLow:
		return "📉 Lower confidence - Challenging conditions for top finish."
	default:
		return ""
	}
}

// Outcome labels used for metrics and logs.
const (
	OutcomeTopFinish    = "top_finish"
	OutcomeNotTopFinish = "not_top_finish"
)

// View is the render-ready result of one prediction.
type View struct {
	TopFinish bool
	Outcome   string
	Headline  string
	CardClass string

	HasConfidence bool
	Confidence    float64
	// Percent is the bar width, truncated to a whole percent.
	Percent     int
	PercentText string
	Band        Band
	BandMessage string
}

// Render builds the View for a label and an optional confidence.
// When hasConfidence is false no percentage or band is produced.
func Render(label int, confidence float64, hasConfidence bool) View {
	v := View{TopFinish: label == PositiveLabel}
	if v.TopFinish {
		v.Outcome = OutcomeTopFinish
		v.Headline = "✅ TOP FINISH PREDICTED!"
		v.CardClass = "prediction-success"
	} else {
		v.Outcome = OutcomeNotTopFinish
		v.Headline = "❌ NOT A TOP FINISH"
		v.CardClass = "prediction-warning"
	}

	if !hasConfidence {
		return v
	}

	c := math.Min(1, math.Max(0, confidence))
	v.HasConfidence = true
	v.Confidence = c
	v.Percent = percent(c)
	v.PercentText = fmt.Sprintf("%.1f%%", c*100)
	v.Band = BandFor(c)
	v.BandMessage = v.Band.Message()
	return v
}

// percent truncates like int(c*100) but absorbs binary rounding noise,
// so 0.29 yields 29 rather than 28.
func percent(c float64) int {
	return int(math.Floor(c*100 + 1e-9))
}
