package present

import (
	"strings"
	"testing"

	"playcoach/internal/recommendation"
	"playcoach/internal/submission"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecommendation() recommendation.Recommendation {
	return recommendation.Recommendation{
		PitchCall:   "Slider breaking off the plate",
		CatcherPlan: "Stay square for a throw.",
		DefensiveAlignment: recommendation.Alignment{
			{Position: "SS", Instruction: "shade up the middle"},
			{Position: "1B", Instruction: "hold the runner"},
		},
		OffensiveSigns: recommendation.Signs{Hitter: "Take until a strike."},
		KeyPoints:      []string{"Attack with a chase pitch."},
	}
}

func TestPanelForIdle(t *testing.T) {
	p, ok := PanelFor(submission.State{}).(Placeholder)
	require.True(t, ok)
	assert.Equal(t, "Your insight hub", p.Title)
	assert.Equal(t, PlaceholderIntro, p.Intro)
	assert.Len(t, p.Bullets, 3)

	p.Bullets[0] = "mutated"
	assert.Equal(t, "Strategic pitch call with supporting rationale.", PlaceholderBullets[0])
}

func TestPanelForSubmitting(t *testing.T) {
	st := submission.State{Phase: submission.PhaseSubmitting}
	assert.Equal(t, Busy{Text: "Crunching spray charts and matchup data..."}, PanelFor(st))
}

func TestPanelForFailed(t *testing.T) {
	st := submission.State{
		Phase:          submission.PhaseFailed,
		Message:        "Bad situation",
		Recommendation: sampleRecommendation(),
	}
	assert.Equal(t, Alert{Message: "Bad situation"}, PanelFor(st))
}

func TestPanelForSucceeded(t *testing.T) {
	st := submission.State{Phase: submission.PhaseSucceeded, Recommendation: sampleRecommendation()}

	want := Result{
		PitchCall:   "Slider breaking off the plate",
		CatcherPlan: "Stay square for a throw.",
		Alignment: []Row{
			{Position: "SS", Instruction: "shade up the middle"},
			{Position: "1B", Instruction: "hold the runner"},
		},
		Hitter:    "Take until a strike.",
		Runner:    "Hold position and read the ball.",
		KeyPoints: []string{"Attack with a chase pitch."},
	}
	if diff := cmp.Diff(want, PanelFor(st)); diff != "" {
		t.Errorf("PanelFor() mismatch (-want +got):\n%s", diff)
	}
}

func TestResultDefaults(t *testing.T) {
	res := ResultFor(recommendation.Recommendation{PitchCall: "Fastball", CatcherPlan: "Set up away"})

	assert.Equal(t, DefaultHitterSign, res.Hitter)
	assert.Equal(t, DefaultRunnerSign, res.Runner)
	assert.Nil(t, res.KeyPoints)
	assert.Empty(t, res.Alignment)

	res = ResultFor(recommendation.Recommendation{KeyPoints: []string{}})
	assert.Nil(t, res.KeyPoints, "empty key points are not shown")
}

func TestBannerFor(t *testing.T) {
	tests := []struct {
		name  string
		state submission.State
		want  Banner
	}{
		{name: "idle", state: submission.State{}, want: Banner{Tone: ToneReady, Text: BannerReady}},
		{name: "submitting", state: submission.State{Phase: submission.PhaseSubmitting}, want: Banner{Tone: ToneInfo, Text: "Generating recommendation..."}},
		{name: "succeeded", state: submission.State{Phase: submission.PhaseSucceeded}, want: Banner{Tone: ToneReady, Text: BannerReady}},
		{name: "failed", state: submission.State{Phase: submission.PhaseFailed, Message: "Bad situation"}, want: Banner{Tone: ToneError, Text: "Bad situation"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BannerFor(tt.state))
		})
	}
}

func TestActionsFor(t *testing.T) {
	tests := []struct {
		name        string
		phase       submission.Phase
		submittable bool
		want        Actions
	}{
		{name: "idle incomplete", phase: submission.PhaseIdle, submittable: false,
			want: Actions{SubmitEnabled: false, SubmitLabel: SubmitLabel, ResetEnabled: true, ResetLabel: ResetLabel}},
		{name: "idle complete", phase: submission.PhaseIdle, submittable: true,
			want: Actions{SubmitEnabled: true, SubmitLabel: SubmitLabel, ResetEnabled: true, ResetLabel: ResetLabel}},
		{name: "submitting", phase: submission.PhaseSubmitting, submittable: true,
			want: Actions{SubmitEnabled: false, SubmitLabel: "Generating...", ResetEnabled: false, ResetLabel: ResetLabel}},
		{name: "failed complete", phase: submission.PhaseFailed, submittable: true,
			want: Actions{SubmitEnabled: true, SubmitLabel: "Generate recommendation", ResetEnabled: true, ResetLabel: ResetLabel}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionsFor(submission.State{Phase: tt.phase}, tt.submittable))
		})
	}
}

func TestToneString(t *testing.T) {
	assert.Equal(t, "ready", ToneReady.String())
	assert.Equal(t, "info", ToneInfo.String())
	assert.Equal(t, "error", ToneError.String())
	assert.Equal(t, "unknown", Tone(9).String())
}

func TestMarkdownResult(t *testing.T) {
	md := Markdown(ResultFor(sampleRecommendation()))

	assert.Contains(t, md, "## Slider breaking off the plate")
	assert.Contains(t, md, "- **Hitter**: Take until a strike.")
	assert.Contains(t, md, "- **Runners**: Hold position and read the ball.")
	assert.Contains(t, md, "### Key points")

	ss := strings.Index(md, "**SS**")
	first := strings.Index(md, "**1B**")
	require.True(t, ss >= 0 && first >= 0)
	assert.Less(t, ss, first, "alignment keeps service order")
}

func TestMarkdownOmitsEmptyKeyPoints(t *testing.T) {
	md := Markdown(ResultFor(recommendation.Recommendation{PitchCall: "Fastball", CatcherPlan: "Set up away"}))
	assert.NotContains(t, md, "Key points")
	assert.Contains(t, md, "_No adjustments._")
}

func TestMarkdownOtherPanels(t *testing.T) {
	assert.Contains(t, Markdown(PanelFor(submission.State{})), "## Your insight hub")
	assert.Contains(t, Markdown(Busy{Text: BusyText}), BusyText)
	assert.Contains(t, Markdown(Alert{Message: "Bad situation"}), "Bad situation")
}

func TestMarkdownEscapesServiceText(t *testing.T) {
	md := Markdown(ResultFor(recommendation.Recommendation{
		PitchCall:   "# Heat *up*",
		CatcherPlan: "1. first\nsecond",
		DefensiveAlignment: recommendation.Alignment{
			{Position: "[SS]", Instruction: "_shade_ 2-3 steps"},
		},
		OffensiveSigns: recommendation.Signs{Hitter: "- take", Runner: "a|b"},
		KeyPoints:      []string{"> quote", "1.5 seconds to the plate"},
	}))

	for _, want := range []string{
		`## \# Heat \*up\*`,
		"1\\. first second\n",
		`- **\[SS\]**: \_shade\_ 2-3 steps`,
		`- **Hitter**: \- take`,
		`- **Runners**: a\|b`,
		`- \> quote`,
		"- 1.5 seconds to the plate\n",
	} {
		assert.Contains(t, md, want)
	}
	assert.NotContains(t, md, "\n# Heat")

	alert := Markdown(Alert{Message: "<b>bad</b> & worse"})
	assert.Equal(t, "> **Unable to continue:** \\<b\\>bad\\</b\\> \\& worse\n", alert)
}

func TestMarkdownEscapeRendersLiterally(t *testing.T) {
	md := Markdown(ResultFor(recommendation.Recommendation{PitchCall: "*Heater*", CatcherPlan: "Set_up_away"}))
	out, err := RenderMarkdown(md, 80, "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "*Heater*")
	assert.Contains(t, out, "Set_up_away")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(Markdown(Alert{Message: "Bad situation"}), 60, "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Bad situation")

	_, err = RenderMarkdown("# hi", 0, "no-such-style")
	assert.Error(t, err)
}
