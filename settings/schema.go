package settings

import (
	"fmt"

	"github.com/jrvillar/esviz"
)

// ParamSpec declares one parameter of a plot object: its name, default value,
// optional validator and the help text shown by interactive surfaces.
type ParamSpec struct {
	Name    string
	Default esviz.Value
	//Validate is called with every candidate value before it is applied.
	//A nil Validate accepts everything.
	Validate func(esviz.Value) error
	Help     string
}

// Schema is the declarative parameter list an Engine is constructed from.
// Order is preserved for introspection listings.
type Schema []ParamSpec

// Info is the introspection record for one parameter.
type Info struct {
	Name    string
	Current esviz.Value
	Default esviz.Value
	Help    string
}

// KindValidator returns a validator accepting only values of kind k, or the
// nil value too when nillable is true. It is the building block the YAML
// schema loader uses.
func KindValidator(k esviz.Kind, nillable bool) func(esviz.Value) error {
	return func(v esviz.Value) error {
		if v.IsNil() {
			if nillable {
				return nil
			}
			return &esviz.InvalidValue{Reason: "value may not be nil"}
		}
		if v.Kind() != k {
			return &esviz.InvalidValue{Reason: fmt.Sprintf("want %v, got %v", k, v.Kind())}
		}
		return nil
	}
}

// ChoicesValidator returns a validator accepting only Enum values drawn from
// choices.
func ChoicesValidator(choices []string) func(esviz.Value) error {
	c := make([]string, len(choices))
	copy(c, choices)
	return func(v esviz.Value) error {
		if v.Kind() != esviz.Enum {
			return &esviz.InvalidValue{Reason: fmt.Sprintf("want enum, got %v", v.Kind())}
		}
		s := v.MustStr()
		for _, ch := range c {
			if s == ch {
				return nil
			}
		}
		return &esviz.InvalidValue{Reason: fmt.Sprintf("%q is not one of %v", s, c)}
	}
}

// IntValidator returns a validator accepting Int values in [min,max].
func IntValidator(min, max int) func(esviz.Value) error {
	return func(v esviz.Value) error {
		if v.Kind() != esviz.Int {
			return &esviz.InvalidValue{Reason: fmt.Sprintf("want int, got %v", v.Kind())}
		}
		i := v.MustInt()
		if i < min || i > max {
			return &esviz.InvalidValue{Reason: fmt.Sprintf("%d outside [%d,%d]", i, min, max)}
		}
		return nil
	}
}

// FloatValidator returns a validator accepting Float values in [min,max].
func FloatValidator(min, max float64) func(esviz.Value) error {
	return func(v esviz.Value) error {
		if v.Kind() != esviz.Float {
			return &esviz.InvalidValue{Reason: fmt.Sprintf("want float, got %v", v.Kind())}
		}
		f := v.MustFloat()
		if f < min || f > max {
			return &esviz.InvalidValue{Reason: fmt.Sprintf("%g outside [%g,%g]", f, min, max)}
		}
		return nil
	}
}

// RangeValidator returns a validator accepting FloatRange values with
// min <= max, or the nil value when nillable is true.
func RangeValidator(nillable bool) func(esviz.Value) error {
	return func(v esviz.Value) error {
		if v.IsNil() {
			if nillable {
				return nil
			}
			return &esviz.InvalidValue{Reason: "value may not be nil"}
		}
		if v.Kind() != esviz.FloatRange {
			return &esviz.InvalidValue{Reason: fmt.Sprintf("want range, got %v", v.Kind())}
		}
		r := v.MustRange()
		if r[0] > r[1] {
			return &esviz.InvalidValue{Reason: fmt.Sprintf("range [%g,%g] has min > max", r[0], r[1])}
		}
		return nil
	}
}
