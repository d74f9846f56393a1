package situation

import (
	"fmt"
	"strconv"
	"strings"
)

// HalfInning is the top or bottom of an inning.
type HalfInning string

const (
	HalfTop    HalfInning = "top"
	HalfBottom HalfInning = "bottom"
)

// Title returns "Top" or "Bottom".
func (h HalfInning) Title() string {
	switch h {
	case HalfTop:
		return "Top"
	case HalfBottom:
		return "Bottom"
	default:
		return string(h)
	}
}

// Next flips between top and bottom.
func (h HalfInning) Next() HalfInning {
	if h == HalfTop {
		return HalfBottom
	}
	return HalfTop
}

// Situation is the game-situation document sent to the recommendation
// service. Field order and names match the service contract.
type Situation struct {
	OffenseTeam     string     `json:"offense_team"`
	DefenseTeam     string     `json:"defense_team"`
	Inning          Number     `json:"inning"`
	HalfInning      HalfInning `json:"half_inning"`
	Outs            Number     `json:"outs"`
	Balls           Number     `json:"balls"`
	Strikes         Number     `json:"strikes"`
	RunnerOnFirst   bool       `json:"runners_on_first"`
	RunnerOnSecond  bool       `json:"runners_on_second"`
	RunnerOnThird   bool       `json:"runners_on_third"`
	ScoreDifference Number     `json:"score_difference"`
	ContextNotes    string     `json:"context_notes"`
	SaveToHistory   bool       `json:"save_to_history"`
}

// Default returns the blank form document. It is intentionally not
// submittable because both team names are empty.
func Default() Situation {
	return Situation{
		Inning:        1,
		HalfInning:    HalfTop,
		SaveToHistory: true,
	}
}

// Submittable reports whether the document is complete enough to send.
func (s Situation) Submittable() bool {
	return strings.TrimSpace(s.OffenseTeam) != "" &&
		strings.TrimSpace(s.DefenseTeam) != "" &&
		s.Inning.Finite() && s.Inning > 0 &&
		s.Outs.Finite() &&
		s.Balls.Finite() &&
		s.Strikes.Finite()
}

// Number returns the value of a numeric field.
func (s Situation) Number(f Field) (Number, bool) {
	switch f {
	case FieldInning:
		return s.Inning, true
	case FieldOuts:
		return s.Outs, true
	case FieldBalls:
		return s.Balls, true
	case FieldStrikes:
		return s.Strikes, true
	case FieldScoreDifference:
		return s.ScoreDifference, true
	}
	return 0, false
}

// Flag returns the value of a checkbox field.
func (s Situation) Flag(f Field) (bool, bool) {
	switch f {
	case FieldRunnerOnFirst:
		return s.RunnerOnFirst, true
	case FieldRunnerOnSecond:
		return s.RunnerOnSecond, true
	case FieldRunnerOnThird:
		return s.RunnerOnThird, true
	case FieldSaveToHistory:
		return s.SaveToHistory, true
	}
	return false, false
}

// Value returns the field formatted as it would appear in an input.
func (s Situation) Value(f Field) string {
	switch f.Kind() {
	case KindNumeric:
		n, _ := s.Number(f)
		return n.String()
	case KindFlag:
		on, _ := s.Flag(f)
		return strconv.FormatBool(on)
	}
	switch f {
	case FieldOffenseTeam:
		return s.OffenseTeam
	case FieldDefenseTeam:
		return s.DefenseTeam
	case FieldHalfInning:
		return string(s.HalfInning)
	case FieldContextNotes:
		return s.ContextNotes
	}
	return ""
}

// RangeWarnings lists values outside the operator hints. They never block
// submission; the service owns authoritative validation.
func (s Situation) RangeWarnings() []string {
	var warnings []string
	for _, f := range Fields() {
		if f.Kind() != KindNumeric {
			continue
		}
		n, _ := s.Number(f)
		if !n.Finite() {
			warnings = append(warnings, fmt.Sprintf("%s is not a number.", f.Label()))
			continue
		}
		hint, ok := f.Hint()
		if ok && !hint.Contains(n.Float()) {
			warnings = append(warnings, fmt.Sprintf("%s is usually %s.", f.Label(), hint))
		}
	}
	return warnings
}

// BaseState renders occupied bases as a compact diagram, e.g. "1-3".
func (s Situation) BaseState() string {
	mark := func(on bool, c byte) byte {
		if on {
			return c
		}
		return '-'
	}
	return string([]byte{
		mark(s.RunnerOnFirst, '1'),
		mark(s.RunnerOnSecond, '2'),
		mark(s.RunnerOnThird, '3'),
	})
}

// Summary is a one-line description used in logs and status lines.
func (s Situation) Summary() string {
	return fmt.Sprintf("%s vs %s | %s %s | Outs: %s | Count: %s-%s | Bases: %s",
		s.OffenseTeam, s.DefenseTeam, s.HalfInning.Title(), s.Inning,
		s.Outs, s.Balls, s.Strikes, s.BaseState())
}
