package recommendation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPayload = `{
	"pitch_call": "Slider breaking off the plate to induce chase.",
	"catcher_plan": "Set up on the outer third.",
	"defensive_alignment": {
		"outfield": "Straight up positioning with normal depth.",
		"infield": "Middle infield at double-play depth.",
		"battery": "Pound the zone early."
	},
	"offensive_signs": {"hitter": "Shorten up and battle.", "runner": "Standard lead."},
	"key_points": ["Attack with a chase pitch.", "Keep the running game in check."]
}`

func TestDecodeFullPayload(t *testing.T) {
	rec, err := Decode(strings.NewReader(fullPayload))
	require.NoError(t, err)

	want := Recommendation{
		PitchCall:   "Slider breaking off the plate to induce chase.",
		CatcherPlan: "Set up on the outer third.",
		DefensiveAlignment: Alignment{
			{Position: "outfield", Instruction: "Straight up positioning with normal depth."},
			{Position: "infield", Instruction: "Middle infield at double-play depth."},
			{Position: "battery", Instruction: "Pound the zone early."},
		},
		OffensiveSigns: Signs{Hitter: "Shorten up and battle.", Runner: "Standard lead."},
		KeyPoints:      []string{"Attack with a chase pitch.", "Keep the running game in check."},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("unexpected recommendation (-want +got):\n%s", diff)
	}
}

func TestAlignmentPreservesInsertionOrder(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "two keys", body: `{"1B":"hold","SS":"shift"}`, want: []string{"1B", "SS"}},
		{name: "reverse alpha", body: `{"SS":"shift","1B":"hold"}`, want: []string{"SS", "1B"}},
		{name: "duplicate keeps first slot", body: `{"1B":"a","SS":"b","1B":"c"}`, want: []string{"1B", "SS"}},
		{name: "empty", body: `{}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Alignment
			require.NoError(t, json.Unmarshal([]byte(tt.body), &a))
			var got []string
			for _, row := range a {
				got = append(got, row.Position)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlignmentDuplicateTakesLastValue(t *testing.T) {
	var a Alignment
	require.NoError(t, json.Unmarshal([]byte(`{"1B":"a","1B":"c"}`), &a))
	assert.Equal(t, Alignment{{Position: "1B", Instruction: "c"}}, a)
}

func TestAlignmentRejectsNonObjects(t *testing.T) {
	for _, body := range []string{`[]`, `"infield"`, `{"1B": 3}`} {
		var a Alignment
		assert.Error(t, json.Unmarshal([]byte(body), &a), body)
	}
}

func TestAlignmentMarshalRoundTripKeepsOrder(t *testing.T) {
	a := Alignment{{Position: "SS", Instruction: "shift"}, {Position: "1B", Instruction: "hold"}}
	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"SS":"shift","1B":"hold"}`, string(data))
}

func TestDecodeOptionalSections(t *testing.T) {
	rec, err := Decode(strings.NewReader(`{"pitch_call":"Fastball","catcher_plan":"Quick pop","offensive_signs":{}}`))
	require.NoError(t, err)

	assert.Empty(t, rec.DefensiveAlignment)
	assert.Equal(t, Signs{}, rec.OffensiveSigns)
	assert.Empty(t, rec.KeyPoints)

	rec, err = Decode(strings.NewReader(`{"pitch_call":"Fastball","catcher_plan":"Quick pop","offensive_signs":{"hitter":null}}`))
	require.NoError(t, err)
	assert.Equal(t, "", rec.OffensiveSigns.Hitter)
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		incomplete bool
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "null", body: `null`, incomplete: true},
		{name: "missing pitch call", body: `{"catcher_plan":"x"}`, incomplete: true},
		{name: "missing catcher plan", body: `{"pitch_call":"x"}`, incomplete: true},
		{name: "wrong type", body: `{"pitch_call":1,"catcher_plan":"x"}`},
		{name: "bad key points", body: `{"pitch_call":"x","catcher_plan":"y","key_points":"z"}`},
		{name: "trailing data", body: `{"pitch_call":"x","catcher_plan":"y"} {}`},
		{name: "empty", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Decode(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Equal(t, Recommendation{}, rec)
			assert.Equal(t, tt.incomplete, errors.Is(err, ErrIncomplete))
		})
	}
}
