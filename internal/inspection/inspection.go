// Package inspection holds the fixed tolerance rules that decide whether a
// measured part is accepted or rejected. Every rule is evaluated on every call
// so a rejected part reports all of the limits it misses.
package inspection

import (
	"strings"

	"golang.org/x/text/cases"
)

// Tolerances applied by Classify. They are fixed for the line and are not
// exposed through configuration.
const (
	WeightMin = 95.0
	WeightMax = 105.0
	LengthMin = 10.0
	LengthMax = 20.0
)

// ValidColors lists the accepted colors in their normalized form.
var ValidColors = []string{"azul", "verde"}

// Reason names a single rule a rejected part violated.
type Reason string

const (
	ReasonWeight Reason = "weight"
	ReasonColor  Reason = "color"
	ReasonLength Reason = "length"
)

// AllReasons returns every reason in evaluation order.
func AllReasons() []Reason {
	return []Reason{ReasonWeight, ReasonColor, ReasonLength}
}

// Label returns the display name used in listings and reports.
func (r Reason) Label() string {
	switch r {
	case ReasonWeight:
		return "Weight"
	case ReasonColor:
		return "Color"
	case ReasonLength:
		return "Length"
	default:
		return string(r)
	}
}

// Verdict is the outcome of classifying one part. Reasons is empty iff
// Accepted is true.
type Verdict struct {
	Accepted bool
	Reasons  []Reason
}

// Has reports whether the verdict carries the given reason.
func (v Verdict) Has(reason Reason) bool {
	for _, r := range v.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// String renders the reasons as a comma separated list of labels.
func (v Verdict) String() string {
	if v.Accepted {
		return "accepted"
	}
	return "rejected: " + JoinLabels(v.Reasons)
}

// JoinLabels renders reasons as "Weight, Color".
func JoinLabels(reasons []Reason) string {
	labels := make([]string, len(reasons))
	for i, r := range reasons {
		labels[i] = r.Label()
	}
	return strings.Join(labels, ", ")
}

var fold = cases.Fold()

// NormalizeColor folds case and trims surrounding whitespace.
func NormalizeColor(color string) string {
	return fold.String(strings.TrimSpace(color))
}

// Classify evaluates weight, color and length against the tolerances. NaN
// measurements fall outside every range.
func Classify(weight float64, color string, length float64) Verdict {
	var reasons []Reason
	if !within(weight, WeightMin, WeightMax) {
		reasons = append(reasons, ReasonWeight)
	}
	if !validColor(color) {
		reasons = append(reasons, ReasonColor)
	}
	if !within(length, LengthMin, LengthMax) {
		reasons = append(reasons, ReasonLength)
	}
	return Verdict{Accepted: len(reasons) == 0, Reasons: reasons}
}

func within(value, lo, hi float64) bool {
	return value >= lo && value <= hi
}

func validColor(color string) bool {
	normalized := NormalizeColor(color)
	for _, c := range ValidColors {
		if normalized == c {
			return true
		}
	}
	return false
}
