// Package scoring computes screening scores and risk classifications from
// completed PCL-5 and PHQ-9 questionnaires. It is deliberately free of
// storage and transport concerns so that services and tests can call it
// directly.
package scoring

import (
	"fmt"

	"vetsupport/internal/model"
)

const (
	// PCL5Length is the number of items on the PCL-5 (each answered 0-4)
	PCL5Length = 20
	// PCL5AnswerMax is the highest valid answer for a PCL-5 item
	PCL5AnswerMax = 4

	// PHQ9Length is the number of items on the PHQ-9 (each answered 0-3)
	PHQ9Length = 9
	// PHQ9AnswerMax is the highest valid answer for a PHQ-9 item
	PHQ9AnswerMax = 3
	// PHQ9SelfHarmIndex is the zero-based index of the self-harm ideation item
	PHQ9SelfHarmIndex = 8
)

// Classification thresholds. Each tier is an OR across the two instruments:
// a severe enough score on either one alone raises the tier.
const (
	phq9CrisisThreshold   = 20
	phq9HighThreshold     = 15
	phq9ModerateThreshold = 10

	pcl5CrisisThreshold   = 50
	pcl5HighThreshold     = 38
	pcl5ModerateThreshold = 31
)

// ValidationError reports a malformed answer sequence. Scoring never
// silently defaults on bad input.
type ValidationError struct {
	Instrument model.InstrumentType
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s response: %s", e.Instrument, e.Reason)
}

// ScorePCL5 sums a complete PCL-5 answer sequence. The result is 0-80.
func ScorePCL5(answers []int) (int, error) {
	return sumAnswers(model.InstrumentPCL5, answers, PCL5Length, PCL5AnswerMax)
}

// ScorePHQ9 sums a complete PHQ-9 answer sequence. The result is 0-27.
func ScorePHQ9(answers []int) (int, error) {
	return sumAnswers(model.InstrumentPHQ9, answers, PHQ9Length, PHQ9AnswerMax)
}

func sumAnswers(instrument model.InstrumentType, answers []int, wantLen, maxAnswer int) (int, error) {
	if len(answers) != wantLen {
		return 0, &ValidationError{
			Instrument: instrument,
			Reason:     fmt.Sprintf("expected %d answers, got %d", wantLen, len(answers)),
		}
	}

	total := 0
	for i, a := range answers {
		if a < 0 || a > maxAnswer {
			return 0, &ValidationError{
				Instrument: instrument,
				Reason:     fmt.Sprintf("answer %d out of range: %d (valid 0-%d)", i+1, a, maxAnswer),
			}
		}
		total += a
	}
	return total, nil
}

// ClassifyRisk maps scores to a risk level. Either score may be absent
// (nil) when only one instrument was taken; an absent score counts as 0.
// Checks run in descending severity order, so ties resolve upward.
func ClassifyRisk(pcl5Score, phq9Score *int) model.RiskLevel {
	pcl5 := 0
	if pcl5Score != nil {
		pcl5 = *pcl5Score
	}
	phq9 := 0
	if phq9Score != nil {
		phq9 = *phq9Score
	}

	switch {
	case phq9 >= phq9CrisisThreshold || pcl5 >= pcl5CrisisThreshold:
		return model.RiskCrisis
	case phq9 >= phq9HighThreshold || pcl5 >= pcl5HighThreshold:
		return model.RiskHigh
	case phq9 >= phq9ModerateThreshold || pcl5 >= pcl5ModerateThreshold:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}

// SelfHarmFlagged reports whether the PHQ-9 self-harm item was endorsed.
// The flag is independent of the numeric risk level. Answers must already
// be validated.
func SelfHarmFlagged(phq9Answers []int) bool {
	if len(phq9Answers) <= PHQ9SelfHarmIndex {
		return false
	}
	return phq9Answers[PHQ9SelfHarmIndex] >= 1
}
