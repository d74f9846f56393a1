// Package present maps submission state to what the operator sees: the
// recommendation panel, the status banner, and the form action affordances.
// Everything here is a pure function of a submission.State.
package present

import (
	"playcoach/internal/recommendation"
	"playcoach/internal/submission"
)

const (
	PlaceholderTitle = "Your insight hub"
	PlaceholderIntro = "Submit the current play details to reveal a tailored recommendation including pitch selection, alignment adjustments, and the signals to relay."
	BusyText         = "Crunching spray charts and matchup data..."

	DefaultHitterSign = "No special sign required."
	DefaultRunnerSign = "Hold position and read the ball."

	BannerSubmitting = "Generating recommendation..."
	BannerReady      = "Ready when you are. Complete the form to get started."

	SubmitLabel     = "Generate recommendation"
	SubmitBusyLabel = "Generating..."
	ResetLabel      = "Reset form"
)

// PlaceholderBullets lists what a recommendation contains.
var PlaceholderBullets = []string{
	"Strategic pitch call with supporting rationale.",
	"Defensive positioning cues for every infielder.",
	"Signals for both the hitter and on-base runners.",
}

// Panel is one of Placeholder, Busy, Alert or Result.
type Panel interface {
	panel()
}

// Placeholder is shown before any submission.
type Placeholder struct {
	Title   string
	Intro   string
	Bullets []string
}

// Busy is shown while a request is in flight.
type Busy struct {
	Text string
}

// Alert carries the failure message of the latest request.
type Alert struct {
	Message string
}

// Row is one defensive assignment.
type Row struct {
	Position    string
	Instruction string
}

// Result is a successful recommendation with display defaults applied.
// KeyPoints is nil when the service sent none.
type Result struct {
	PitchCall   string
	CatcherPlan string
	Alignment   []Row
	Hitter      string
	Runner      string
	KeyPoints   []string
}

func (Placeholder) panel() {}
func (Busy) panel()        {}
func (Alert) panel()       {}
func (Result) panel()      {}

// PanelFor selects the panel for a state.
func PanelFor(st submission.State) Panel {
	switch st.Phase {
	case submission.PhaseSubmitting:
		return Busy{Text: BusyText}
	case submission.PhaseFailed:
		return Alert{Message: st.Message}
	case submission.PhaseSucceeded:
		return ResultFor(st.Recommendation)
	default:
		return Placeholder{
			Title:   PlaceholderTitle,
			Intro:   PlaceholderIntro,
			Bullets: append([]string(nil), PlaceholderBullets...),
		}
	}
}

// ResultFor normalizes a recommendation for display.
func ResultFor(rec recommendation.Recommendation) Result {
	res := Result{
		PitchCall:   rec.PitchCall,
		CatcherPlan: rec.CatcherPlan,
		Alignment:   make([]Row, 0, len(rec.DefensiveAlignment)),
		Hitter:      rec.OffensiveSigns.Hitter,
		Runner:      rec.OffensiveSigns.Runner,
	}
	for _, a := range rec.DefensiveAlignment {
		res.Alignment = append(res.Alignment, Row{Position: a.Position, Instruction: a.Instruction})
	}
	if res.Hitter == "" {
		res.Hitter = DefaultHitterSign
	}
	if res.Runner == "" {
		res.Runner = DefaultRunnerSign
	}
	if len(rec.KeyPoints) > 0 {
		res.KeyPoints = append([]string(nil), rec.KeyPoints...)
	}
	return res
}

// Tone classifies a banner.
type Tone int

const (
	ToneReady Tone = iota
	ToneInfo
	ToneError
)

func (t Tone) String() string {
	switch t {
	case ToneReady:
		return "ready"
	case ToneInfo:
		return "info"
	case ToneError:
		return "error"
	default:
		return "unknown"
	}
}

// Banner is the one-line status indicator.
type Banner struct {
	Tone Tone
	Text string
}

// BannerFor picks the status banner. An error takes priority over everything.
func BannerFor(st submission.State) Banner {
	switch st.Phase {
	case submission.PhaseFailed:
		return Banner{Tone: ToneError, Text: st.Message}
	case submission.PhaseSubmitting:
		return Banner{Tone: ToneInfo, Text: BannerSubmitting}
	default:
		return Banner{Tone: ToneReady, Text: BannerReady}
	}
}

// Actions describes the form buttons.
type Actions struct {
	SubmitEnabled bool
	SubmitLabel   string
	ResetEnabled  bool
	ResetLabel    string
}

// ActionsFor derives the affordances from the state and the form's current
// submittability.
func ActionsFor(st submission.State, submittable bool) Actions {
	busy := st.Busy()
	a := Actions{
		SubmitEnabled: submittable && !busy,
		SubmitLabel:   SubmitLabel,
		ResetEnabled:  !busy,
		ResetLabel:    ResetLabel,
	}
	if busy {
		a.SubmitLabel = SubmitBusyLabel
	}
	return a
}
