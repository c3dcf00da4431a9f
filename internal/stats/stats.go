// Package stats contains run summaries and reporting.
package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/propdrill/internal/model"
)

// repeatedErrorThreshold is the bucket count from which a factor hint is shown.
const repeatedErrorThreshold = 2

// Summary is the final evaluation of a run.
type Summary struct {
	Answered int
	Correct  int
	Errors   int

	// Accuracy is a percentage; it is only meaningful when HasAccuracy is set.
	Accuracy    float64
	HasAccuracy bool

	DominantFactor   int
	DominantCount    int
	HasRepeatedError bool

	Histogram model.Histogram
}

// Summarize derives the final evaluation from run counters.
func Summarize(answered, errors int, hist model.Histogram) Summary {
	correct := answered - errors
	if correct < 0 {
		correct = 0
	}
	acc, ok := Accuracy(correct, answered)
	factor, count := DominantFactor(hist)
	return Summary{
		Answered:         answered,
		Correct:          correct,
		Errors:           errors,
		Accuracy:         acc,
		HasAccuracy:      ok,
		DominantFactor:   factor,
		DominantCount:    count,
		HasRepeatedError: count >= repeatedErrorThreshold,
		Histogram:        hist,
	}
}

// Accuracy returns the correct share as a percentage. It reports false when
// nothing was answered.
func Accuracy(correct, answered int) (float64, bool) {
	if answered <= 0 {
		return 0, false
	}
	return 100 * float64(correct) / float64(answered), true
}

// DominantFactor returns the factor with the highest count, preferring the
// smallest factor on ties.
func DominantFactor(hist model.Histogram) (factor, count int) {
	factor = model.MinFactor
	count = hist.Count(model.MinFactor)
	for f := model.MinFactor + 1; f <= model.MaxFactor; f++ {
		if c := hist.Count(f); c > count {
			factor, count = f, c
		}
	}
	return factor, count
}

// FormatAccuracy renders the accuracy for display, "n/a" for empty runs.
func (s Summary) FormatAccuracy() string {
	if !s.HasAccuracy {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", s.Accuracy)
}

// FocusHint returns the remediation hint, empty when no factor repeats.
func (s Summary) FocusHint() string {
	if !s.HasRepeatedError {
		return ""
	}
	return fmt.Sprintf("You should focus on the %d times table", s.DominantFactor)
}

// RenderSummary prints the final evaluation.
func RenderSummary(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	lines := formatTable(nil, [][]string{
		{"Correct:", fmt.Sprintf("%d", s.Correct)},
		{"Errors:", fmt.Sprintf("%d", s.Errors)},
		{"Accuracy:", s.FormatAccuracy()},
	}, map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if hint := s.FocusHint(); hint != "" {
		if _, err := fmt.Fprintln(w, hint); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
