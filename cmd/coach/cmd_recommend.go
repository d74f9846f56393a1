package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"playcoach/cmd/coach/ui"
	"playcoach/internal/logging"
	"playcoach/internal/present"
	"playcoach/internal/situation"
	"playcoach/internal/submission"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// recommendFlags holds the situation entered on the command line. Numeric
// values stay raw so they go through the same coercion as the form.
type recommendFlags struct {
	offense   string
	defense   string
	inning    string
	half      string
	outs      string
	balls     string
	strikes   string
	scoreDiff string
	first     bool
	second    bool
	third     bool
	notes     string
	save      bool

	dryRun bool
	json   bool
	plain  bool
	width  int
}

var recFlags recommendFlags

// recommendCmd submits one situation without the interactive form
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Request a recommendation for a single game situation",
	Long: `Builds a game situation from flags, sends it to the recommendation
service, and prints the recommended play.

Example:
  coach recommend --offense Wildcats --defense Falcons --inning 7 --half bottom \
    --outs 1 --balls 2 --strikes 1 --score-diff -1 --second`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.StringVar(&recFlags.offense, "offense", "", "Offense team (required)")
	f.StringVar(&recFlags.defense, "defense", "", "Defense team (required)")
	f.StringVar(&recFlags.inning, "inning", "1", "Inning")
	f.StringVar(&recFlags.half, "half", string(situation.HalfTop), "Half inning (top or bottom)")
	f.StringVar(&recFlags.outs, "outs", "0", "Outs")
	f.StringVar(&recFlags.balls, "balls", "0", "Balls")
	f.StringVar(&recFlags.strikes, "strikes", "0", "Strikes")
	f.StringVar(&recFlags.scoreDiff, "score-diff", "0", "Score difference from the offense's perspective")
	f.BoolVar(&recFlags.first, "first", false, "Runner on first base")
	f.BoolVar(&recFlags.second, "second", false, "Runner on second base")
	f.BoolVar(&recFlags.third, "third", false, "Runner on third base")
	f.StringVar(&recFlags.notes, "notes", "", "Context notes for the coach")
	f.BoolVar(&recFlags.save, "save-to-history", true, "Save this play to the game history once submitted")

	f.BoolVar(&recFlags.dryRun, "dry-run", false, "Print the request body without sending it")
	f.BoolVar(&recFlags.json, "json", false, "Print the recommendation as JSON")
	f.BoolVar(&recFlags.plain, "plain", false, "Print markdown without terminal styling")
	f.IntVar(&recFlags.width, "width", 80, "Word wrap width for rendered output")
}

// build assembles the document through the same form the TUI uses.
func (r recommendFlags) build() (situation.Situation, error) {
	form := situation.NewForm()

	raw := []struct {
		field situation.Field
		value string
	}{
		{situation.FieldOffenseTeam, r.offense},
		{situation.FieldDefenseTeam, r.defense},
		{situation.FieldInning, r.inning},
		{situation.FieldHalfInning, r.half},
		{situation.FieldOuts, r.outs},
		{situation.FieldBalls, r.balls},
		{situation.FieldStrikes, r.strikes},
		{situation.FieldScoreDifference, r.scoreDiff},
		{situation.FieldContextNotes, r.notes},
	}
	for _, v := range raw {
		if err := form.SetField(v.field, v.value); err != nil {
			return situation.Situation{}, err
		}
	}

	flags := []struct {
		field situation.Field
		on    bool
	}{
		{situation.FieldRunnerOnFirst, r.first},
		{situation.FieldRunnerOnSecond, r.second},
		{situation.FieldRunnerOnThird, r.third},
		{situation.FieldSaveToHistory, r.save},
	}
	for _, v := range flags {
		if err := form.SetFlag(v.field, v.on); err != nil {
			return situation.Situation{}, err
		}
	}

	snap, ok := form.Snapshot()
	if !ok {
		return snap, errors.New("situation is incomplete: --offense and --defense are required and inning, outs, balls, and strikes must be numbers")
	}
	return snap, nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	snap, err := recFlags.build()
	if err != nil {
		return err
	}
	for _, w := range snap.RangeWarnings() {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}

	out := cmd.OutOrStdout()
	if recFlags.dryRun {
		return writeJSON(out, snap)
	}

	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	logger := currentLogger()
	subLog := logger.For(logging.CategorySubmission)

	controller := submission.NewController()
	controller.OnChange(func(s submission.State) {
		subLog.Debug("submission state changed",
			zap.Stringer("phase", s.Phase),
			zap.Uint64("seq", s.Seq),
			zap.String("request_id", s.RequestID),
		)
	})

	subLog.Info("submitting situation", zap.String("situation", snap.Summary()))
	st := controller.Submit(commandContext(cmd), newClient(cfg, logger), snap)
	if st.Phase == submission.PhaseFailed {
		return errors.New(st.Message)
	}

	if recFlags.json {
		return writeJSON(out, st.Recommendation)
	}

	md := present.Markdown(present.PanelFor(st))
	if recFlags.plain {
		_, err := fmt.Fprint(out, md)
		return err
	}
	rendered, err := present.RenderMarkdown(md, recFlags.width, ui.ResolveTheme(cfg.UI.Theme).GlamourStyle())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
