package domain

import (
	"fmt"
	"strings"
)

// Axis selects the translation component a duplicate is offset along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// DefaultAxis is used whenever the axis input cannot be understood.
const DefaultAxis = AxisZ

// Valid reports whether a is one of X, Y or Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Letter returns the lowercase tag used in generated prim names.
func (a Axis) Letter() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// String implements fmt.Stringer.
func (a Axis) String() string {
	return strings.ToUpper(a.Letter())
}

// ParseAxis accepts "x", "y", "z" (any case) or "0", "1", "2".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "0":
		return AxisX, nil
	case "y", "1":
		return AxisY, nil
	case "z", "2":
		return AxisZ, nil
	}
	return DefaultAxis, fmt.Errorf("unknown axis %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	parsed, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
