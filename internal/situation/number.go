package situation

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number is a numeric form value. It may hold NaN when the operator typed
// something that is not a number; that state is tracked rather than rejected.
type Number float64

// NaN returns the Number used for non-numeric input.
func NaN() Number { return Number(math.NaN()) }

// Coerce converts raw form input into a Number using the same rules a
// browser applies to a number input: surrounding whitespace is ignored, blank
// input becomes 0, "Infinity" with an optional sign is infinite, and unsigned
// 0x, 0o, and 0b prefixes select a radix. Anything else that does not parse
// as a decimal literal becomes NaN. Decimal literals too large for a float64
// become infinite rather than NaN.
func Coerce(raw string) Number {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return Number(math.Inf(1))
	case "-Infinity":
		return Number(math.Inf(-1))
	}

	if base, digits, ok := radixLiteral(trimmed); ok {
		n, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return NaN()
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return Number(f)
	}

	// ParseFloat also accepts hex floats, underscores, and "inf"/"nan".
	if strings.IndexFunc(trimmed, func(r rune) bool { return !strings.ContainsRune("0123456789+-.eE", r) }) >= 0 {
		return NaN()
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Number(v)
		}
		return NaN()
	}
	return Number(v)
}

// radixLiteral splits a 0x, 0o, or 0b literal into its base and digits.
func radixLiteral(s string) (int, string, bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, "", false
	}
	var base int
	switch s[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, "", false
	}
	digits := s[2:]
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return base, "", true
	}
	return base, digits, true
}

// Finite reports whether the value is neither NaN nor infinite.
func (n Number) Finite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float returns the underlying float64.
func (n Number) Float() float64 { return float64(n) }

// String formats the value the way it is echoed back into an input box.
func (n Number) String() string {
	f := float64(n)
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON encodes finite values as plain JSON numbers and non-finite
// values as null, since JSON has no representation for NaN or Inf.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Finite() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}
