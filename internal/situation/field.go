// Package situation holds the editable game-situation document and the
// field-level rules (coercion, range hints, submit readiness) that govern it.
package situation

import (
	"errors"
	"fmt"
)

// Kind classifies how a field's raw input is interpreted.
type Kind int

const (
	KindText    Kind = iota // stored verbatim
	KindNumeric             // coerced to Number on edit
	KindChoice              // one of a fixed set of values
	KindFlag                // boolean checkbox
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindChoice:
		return "choice"
	case KindFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Field identifies one editable field of a Situation.
type Field int

const (
	FieldOffenseTeam Field = iota + 1
	FieldDefenseTeam
	FieldInning
	FieldHalfInning
	FieldOuts
	FieldBalls
	FieldStrikes
	FieldRunnerOnFirst
	FieldRunnerOnSecond
	FieldRunnerOnThird
	FieldScoreDifference
	FieldContextNotes
	FieldSaveToHistory
)

// Range is the operator-facing hint for a numeric field. It is advisory only.
type Range struct {
	Min    int
	Max    int
	HasMax bool
}

func (r Range) String() string {
	if !r.HasMax {
		return fmt.Sprintf(">= %d", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	if v < float64(r.Min) {
		return false
	}
	return !r.HasMax || v <= float64(r.Max)
}

type fieldDef struct {
	name  string
	label string
	kind  Kind
	hint  *Range
}

var fieldDefs = map[Field]fieldDef{
	FieldOffenseTeam:     {name: "offense_team", label: "Offense team", kind: KindText},
	FieldDefenseTeam:     {name: "defense_team", label: "Defense team", kind: KindText},
	FieldInning:          {name: "inning", label: "Inning", kind: KindNumeric, hint: &Range{Min: 1}},
	FieldHalfInning:      {name: "half_inning", label: "Half inning", kind: KindChoice},
	FieldOuts:            {name: "outs", label: "Outs", kind: KindNumeric, hint: &Range{Min: 0, Max: 2, HasMax: true}},
	FieldBalls:           {name: "balls", label: "Balls", kind: KindNumeric, hint: &Range{Min: 0, Max: 3, HasMax: true}},
	FieldStrikes:         {name: "strikes", label: "Strikes", kind: KindNumeric, hint: &Range{Min: 0, Max: 2, HasMax: true}},
	FieldRunnerOnFirst:   {name: "runners_on_first", label: "First base", kind: KindFlag},
	FieldRunnerOnSecond:  {name: "runners_on_second", label: "Second base", kind: KindFlag},
	FieldRunnerOnThird:   {name: "runners_on_third", label: "Third base", kind: KindFlag},
	FieldScoreDifference: {name: "score_difference", label: "Score difference", kind: KindNumeric},
	FieldContextNotes:    {name: "context_notes", label: "Context notes", kind: KindText},
	FieldSaveToHistory:   {name: "save_to_history", label: "Save this play to the game history once submitted", kind: KindFlag},
}

// Fields returns every field in form display order.
func Fields() []Field {
	return []Field{
		FieldOffenseTeam,
		FieldDefenseTeam,
		FieldInning,
		FieldHalfInning,
		FieldOuts,
		FieldBalls,
		FieldStrikes,
		FieldScoreDifference,
		FieldRunnerOnFirst,
		FieldRunnerOnSecond,
		FieldRunnerOnThird,
		FieldContextNotes,
		FieldSaveToHistory,
	}
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	_, ok := fieldDefs[f]
	return ok
}

// Name returns the wire (JSON) name of the field.
func (f Field) Name() string {
	if def, ok := fieldDefs[f]; ok {
		return def.name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// String implements fmt.Stringer.
func (f Field) String() string { return f.Name() }

// Label returns the human-readable label shown next to the input.
func (f Field) Label() string {
	return fieldDefs[f].label
}

// Kind returns how raw input for the field is interpreted.
func (f Field) Kind() Kind {
	return fieldDefs[f].kind
}

// Hint returns the advisory range for numeric fields that have one.
func (f Field) Hint() (Range, bool) {
	def, ok := fieldDefs[f]
	if !ok || def.hint == nil {
		return Range{}, false
	}
	return *def.hint, true
}

// ErrUnknownField is returned when a setter is given a field outside the schema.
var ErrUnknownField = errors.New("unknown field")
