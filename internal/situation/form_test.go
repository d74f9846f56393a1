package situation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledForm(t *testing.T) *Form {
	t.Helper()
	f := NewForm()
	require.NoError(t, f.SetField(FieldOffenseTeam, "Wildcats"))
	require.NoError(t, f.SetField(FieldDefenseTeam, "Falcons"))
	return f
}

func TestDefaultIsNotSubmittable(t *testing.T) {
	f := NewForm()
	s := f.Situation()

	assert.Equal(t, Number(1), s.Inning)
	assert.Equal(t, HalfTop, s.HalfInning)
	assert.True(t, s.SaveToHistory)
	assert.False(t, s.RunnerOnFirst || s.RunnerOnSecond || s.RunnerOnThird)
	assert.False(t, f.Submittable())
}

func TestSetFieldCoercesNumbersOnEdit(t *testing.T) {
	numeric := []Field{FieldInning, FieldOuts, FieldBalls, FieldStrikes, FieldScoreDifference}

	t.Run("numeric text", func(t *testing.T) {
		f := NewForm()
		for _, field := range numeric {
			require.NoError(t, f.SetField(field, " 2 "))
			n, ok := f.Situation().Number(field)
			require.True(t, ok)
			assert.Equal(t, Number(2), n, field.Name())
		}
	})

	t.Run("non numeric becomes NaN", func(t *testing.T) {
		f := NewForm()
		for _, field := range numeric {
			require.NoError(t, f.SetField(field, "two"))
			n, _ := f.Situation().Number(field)
			assert.True(t, math.IsNaN(n.Float()), field.Name())
		}
	})

	t.Run("blank becomes zero", func(t *testing.T) {
		f := NewForm()
		require.NoError(t, f.SetField(FieldInning, ""))
		assert.Equal(t, Number(0), f.Situation().Inning)
	})

	t.Run("negative score difference", func(t *testing.T) {
		f := NewForm()
		require.NoError(t, f.SetField(FieldScoreDifference, "-3"))
		assert.Equal(t, Number(-3), f.Situation().ScoreDifference)
	})
}

func TestSetFieldOnlyTouchesNamedField(t *testing.T) {
	f := filledForm(t)
	before := f.Situation()

	require.NoError(t, f.SetField(FieldOuts, "1"))
	after := f.Situation()

	before.Outs = 1
	assert.Equal(t, before, after)
}

func TestSetFieldTextAndChoice(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetField(FieldContextNotes, "  wind blowing out  "))
	assert.Equal(t, "  wind blowing out  ", f.Situation().ContextNotes)

	require.NoError(t, f.SetField(FieldHalfInning, "Bottom"))
	assert.Equal(t, HalfBottom, f.Situation().HalfInning)

	err := f.SetField(FieldHalfInning, "middle")
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, HalfBottom, f.Situation().HalfInning)
}

func TestSetFieldFlags(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetField(FieldRunnerOnThird, "true"))
	assert.True(t, f.Situation().RunnerOnThird)

	require.NoError(t, f.Toggle(FieldSaveToHistory))
	assert.False(t, f.Situation().SaveToHistory)

	assert.ErrorIs(t, f.Toggle(FieldOuts), ErrNotFlag)
	assert.ErrorIs(t, f.SetFlag(FieldOffenseTeam, true), ErrNotFlag)
	assert.Error(t, f.SetField(FieldRunnerOnFirst, "maybe"))
}

func TestSetFieldUnknown(t *testing.T) {
	f := NewForm()
	assert.ErrorIs(t, f.SetField(Field(99), "x"), ErrUnknownField)
}

func TestSubmittable(t *testing.T) {
	tests := []struct {
		name  string
		edits map[Field]string
		want  bool
	}{
		{name: "filled", want: true},
		{name: "blank offense", edits: map[Field]string{FieldOffenseTeam: ""}, want: false},
		{name: "whitespace defense", edits: map[Field]string{FieldDefenseTeam: "   "}, want: false},
		{name: "inning zero", edits: map[Field]string{FieldInning: "0"}, want: false},
		{name: "inning NaN", edits: map[Field]string{FieldInning: "x"}, want: false},
		{name: "outs NaN", edits: map[Field]string{FieldOuts: "x"}, want: false},
		{name: "balls NaN", edits: map[Field]string{FieldBalls: "x"}, want: false},
		{name: "strikes infinite", edits: map[Field]string{FieldStrikes: "Infinity"}, want: false},
		{name: "out of hint range still ok", edits: map[Field]string{FieldStrikes: "4"}, want: true},
		{name: "score NaN still ok", edits: map[Field]string{FieldScoreDifference: "x"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filledForm(t)
			for field, raw := range tt.edits {
				require.NoError(t, f.SetField(field, raw))
			}
			assert.Equal(t, tt.want, f.Submittable())
			_, ok := f.Snapshot()
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	f := filledForm(t)
	require.NoError(t, f.SetField(FieldOuts, "2"))
	require.NoError(t, f.SetFlag(FieldRunnerOnFirst, true))
	require.True(t, f.Submittable())

	f.Reset()

	assert.Equal(t, Default(), f.Situation())
	assert.False(t, f.Submittable())
}

func TestSnapshotIsDetached(t *testing.T) {
	f := filledForm(t)
	snap, ok := f.Snapshot()
	require.True(t, ok)

	require.NoError(t, f.SetField(FieldOffenseTeam, "Changed"))
	assert.Equal(t, "Wildcats", snap.OffenseTeam)
}

func TestSituationJSONFieldNames(t *testing.T) {
	f := filledForm(t)
	require.NoError(t, f.SetField(FieldScoreDifference, "oops"))

	data, err := json.Marshal(f.Situation())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"offense_team": "Wildcats",
		"defense_team": "Falcons",
		"inning": 1,
		"half_inning": "top",
		"outs": 0,
		"balls": 0,
		"strikes": 0,
		"runners_on_first": false,
		"runners_on_second": false,
		"runners_on_third": false,
		"score_difference": null,
		"context_notes": "",
		"save_to_history": true
	}`, string(data))
}

func TestRangeWarnings(t *testing.T) {
	f := filledForm(t)
	assert.Empty(t, f.Situation().RangeWarnings())

	require.NoError(t, f.SetField(FieldBalls, "4"))
	require.NoError(t, f.SetField(FieldScoreDifference, "abc"))

	assert.Equal(t, []string{
		"Balls is usually 0-3.",
		"Score difference is not a number.",
	}, f.Situation().RangeWarnings())
}

func TestBaseStateAndSummary(t *testing.T) {
	f := filledForm(t)
	assert.Equal(t, "---", f.Situation().BaseState())

	require.NoError(t, f.SetFlag(FieldRunnerOnFirst, true))
	require.NoError(t, f.SetFlag(FieldRunnerOnThird, true))
	s := f.Situation()
	assert.Equal(t, "1-3", s.BaseState())
	assert.Equal(t, "Wildcats vs Falcons | Top 1 | Outs: 0 | Count: 0-0 | Bases: 1-3", s.Summary())
}

func TestFieldHint(t *testing.T) {
	hint, ok := FieldOuts.Hint()
	require.True(t, ok)
	assert.Equal(t, "0-2", hint.String())

	hint, ok = FieldInning.Hint()
	require.True(t, ok)
	assert.Equal(t, ">= 1", hint.String())

	_, ok = FieldScoreDifference.Hint()
	assert.False(t, ok)
}
