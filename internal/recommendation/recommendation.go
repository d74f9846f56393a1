// Package recommendation defines the strategic recommendation returned by the
// play-calling service and its JSON decoding. Decoding is all-or-nothing: a
// payload either yields a complete Recommendation or an error.
package recommendation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrIncomplete is wrapped by decode errors for payloads missing required keys.
var ErrIncomplete = errors.New("incomplete recommendation")

// Assignment is one defensive alignment row.
type Assignment struct {
	Position    string
	Instruction string
}

// Alignment maps positions to instructions, keeping the order the service sent.
type Alignment []Assignment

// UnmarshalJSON reads a JSON object of string values preserving key order.
// A repeated key keeps its first position and takes the last value.
func (a *Alignment) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("defensive_alignment: expected object, got %v", tok)
	}

	rows := Alignment{}
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("defensive_alignment: unexpected key %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("defensive_alignment[%s]: %w", key, err)
		}
		if i, seen := index[key]; seen {
			rows[i].Instruction = value
			continue
		}
		index[key] = len(rows)
		rows = append(rows, Assignment{Position: key, Instruction: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = rows
	return nil
}

// MarshalJSON writes the alignment back as an ordered JSON object.
func (a Alignment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, row := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(row.Position)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(row.Instruction)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Signs are the offensive signals to relay. Empty means the service sent none.
type Signs struct {
	Hitter string `json:"hitter,omitempty"`
	Runner string `json:"runner,omitempty"`
}

// Recommendation is the service's answer for one game situation.
type Recommendation struct {
	PitchCall          string    `json:"pitch_call"`
	CatcherPlan        string    `json:"catcher_plan"`
	DefensiveAlignment Alignment `json:"defensive_alignment"`
	OffensiveSigns     Signs     `json:"offensive_signs"`
	KeyPoints          []string  `json:"key_points,omitempty"`
}

type wireRecommendation struct {
	PitchCall          *string   `json:"pitch_call"`
	CatcherPlan        *string   `json:"catcher_plan"`
	DefensiveAlignment Alignment `json:"defensive_alignment"`
	OffensiveSigns     *Signs    `json:"offensive_signs"`
	KeyPoints          []string  `json:"key_points"`
}

// UnmarshalJSON requires pitch_call and catcher_plan. Missing alignment,
// signs, or key points decode as empty values.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var wire wireRecommendation
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.PitchCall == nil {
		return fmt.Errorf("%w: missing pitch_call", ErrIncomplete)
	}
	if wire.CatcherPlan == nil {
		return fmt.Errorf("%w: missing catcher_plan", ErrIncomplete)
	}

	out := Recommendation{
		PitchCall:          *wire.PitchCall,
		CatcherPlan:        *wire.CatcherPlan,
		DefensiveAlignment: wire.DefensiveAlignment,
		KeyPoints:          wire.KeyPoints,
	}
	if wire.OffensiveSigns != nil {
		out.OffensiveSigns = *wire.OffensiveSigns
	}
	*r = out
	return nil
}

// Decode reads exactly one Recommendation document from r.
func Decode(r io.Reader) (Recommendation, error) {
	var rec Recommendation
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return Recommendation{}, err
	}
	if dec.More() {
		return Recommendation{}, errors.New("unexpected data after recommendation")
	}
	return rec, nil
}
