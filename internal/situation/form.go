package situation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidChoice is returned for a half_inning value other than top/bottom.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrNotFlag is returned when a boolean setter targets a non-checkbox field.
	ErrNotFlag = errors.New("field is not a flag")
)

// Form owns the editable Situation. It has a single writer (the UI loop) and
// hands out value copies; it is not safe for concurrent mutation.
type Form struct {
	doc Situation
}

// NewForm returns a form populated with Default().
func NewForm() *Form {
	return &Form{doc: Default()}
}

// Situation returns a copy of the current document.
func (f *Form) Situation() Situation {
	return f.doc
}

// SetField applies raw operator input to one field. Numeric fields are
// coerced immediately, so the document never holds numeric text.
func (f *Form) SetField(field Field, raw string) error {
	switch field.Kind() {
	case KindNumeric:
		return f.setNumber(field, Coerce(raw))
	case KindFlag:
		on, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s: %w", field.Name(), err)
		}
		return f.SetFlag(field, on)
	}

	switch field {
	case FieldOffenseTeam:
		f.doc.OffenseTeam = raw
	case FieldDefenseTeam:
		f.doc.DefenseTeam = raw
	case FieldContextNotes:
		f.doc.ContextNotes = raw
	case FieldHalfInning:
		half := HalfInning(strings.ToLower(strings.TrimSpace(raw)))
		if half != HalfTop && half != HalfBottom {
			return fmt.Errorf("%s: %w: %q", field.Name(), ErrInvalidChoice, raw)
		}
		f.doc.HalfInning = half
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field.Name())
	}
	return nil
}

func (f *Form) setNumber(field Field, n Number) error {
	switch field {
	case FieldInning:
		f.doc.Inning = n
	case FieldOuts:
		f.doc.Outs = n
	case FieldBalls:
		f.doc.Balls = n
	case FieldStrikes:
		f.doc.Strikes = n
	case FieldScoreDifference:
		f.doc.ScoreDifference = n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field.Name())
	}
	return nil
}

// SetFlag stores a checkbox value.
func (f *Form) SetFlag(field Field, on bool) error {
	switch field {
	case FieldRunnerOnFirst:
		f.doc.RunnerOnFirst = on
	case FieldRunnerOnSecond:
		f.doc.RunnerOnSecond = on
	case FieldRunnerOnThird:
		f.doc.RunnerOnThird = on
	case FieldSaveToHistory:
		f.doc.SaveToHistory = on
	default:
		return fmt.Errorf("%s: %w", field.Name(), ErrNotFlag)
	}
	return nil
}

// Toggle flips a checkbox value.
func (f *Form) Toggle(field Field) error {
	on, ok := f.doc.Flag(field)
	if !ok {
		return fmt.Errorf("%s: %w", field.Name(), ErrNotFlag)
	}
	return f.SetFlag(field, !on)
}

// Submittable reports whether the current document can be submitted.
func (f *Form) Submittable() bool {
	return f.doc.Submittable()
}

// Reset restores the default document.
func (f *Form) Reset() {
	f.doc = Default()
}

// Snapshot returns a copy of the document for submission and whether it is
// submittable. Callers disable the submit action when ok is false.
func (f *Form) Snapshot() (snap Situation, ok bool) {
	return f.doc, f.doc.Submittable()
}
