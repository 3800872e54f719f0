/*
 * values.go, part of esviz.
 *
 * Copyright 2026 Jon R. Villar <jrvillar{at}posteoDOTnet>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package esviz

import "fmt"

/**Note: the Must* accessors here panic instead of returning errors. They are meant
 * for producer functions that run after the settings engine has already validated the
 * kind of every parameter, so a kind mismatch at that point means the program is
 * wrong and should crash.**/

// Kind tags the type held by a Value. The set is closed: plot parameters only
// ever hold one of these.
type Kind int

const (
	Nil        Kind = iota //unset/none, used for nillable parameters such as energy ranges
	Bool
	Int
	Float
	String
	Enum //a string restricted to a fixed list of choices
	IntList
	FloatRange //a [min,max] pair
	Mapping
)

var kindNames = map[Kind]string{
	Nil:        "nil",
	Bool:       "bool",
	Int:        "int",
	Float:      "float",
	String:     "string",
	Enum:       "enum",
	IntList:    "intlist",
	FloatRange: "range",
	Mapping:    "mapping",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return s
}

// Value is a tagged union over the parameter kinds. The zero Value is Nil.
// Values are immutable once built; the list and mapping constructors copy
// their arguments.
type Value struct {
	kind Kind
	b    bool
	i    int
	f    float64
	s    string
	il   []int
	fr   [2]float64
	m    map[string]Value
}

// NilValue returns the unset value. Nillable parameters (e.g. Erange) use it
// as their "none" state.
func NilValue() Value { return Value{kind: Nil} }

func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }
func IntValue(i int) Value { return Value{kind: Int, i: i} }
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }
func StringValue(s string) Value { return Value{kind: String, s: s} }
func EnumValue(choice string) Value { return Value{kind: Enum, s: choice} }

func IntListValue(l []int) Value {
	c := make([]int, len(l))
	copy(c, l)
	return Value{kind: IntList, il: c}
}

func RangeValue(min, max float64) Value {
	return Value{kind: FloatRange, fr: [2]float64{min, max}}
}

func MappingValue(m map[string]Value) Value {
	c := make(map[string]Value, len(m))
	for k, v := range m {
		c[k] = v
	}
	return Value{kind: Mapping, m: c}
}

// Kind returns the tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNil is true for the unset value.
func (v Value) IsNil() bool { return v.kind == Nil }

func (v Value) kindErr(want Kind) error {
	return &InvalidValue{Reason: fmt.Sprintf("value holds %v, not %v", v.kind, want)}
}

func (v Value) Bool() (bool, error) {
	if v.kind != Bool {
		return false, v.kindErr(Bool)
	}
	return v.b, nil
}

func (v Value) Int() (int, error) {
	if v.kind != Int {
		return 0, v.kindErr(Int)
	}
	return v.i, nil
}

func (v Value) Float() (float64, error) {
	if v.kind != Float {
		return 0, v.kindErr(Float)
	}
	return v.f, nil
}

func (v Value) Str() (string, error) {
	if v.kind != String && v.kind != Enum {
		return "", v.kindErr(String)
	}
	return v.s, nil
}

func (v Value) IntList() ([]int, error) {
	if v.kind != IntList {
		return nil, v.kindErr(IntList)
	}
	c := make([]int, len(v.il))
	copy(c, v.il)
	return c, nil
}

// Range returns the [min,max] pair of a FloatRange value.
func (v Value) Range() ([2]float64, error) {
	if v.kind != FloatRange {
		return [2]float64{}, v.kindErr(FloatRange)
	}
	return v.fr, nil
}

func (v Value) Mapping() (map[string]Value, error) {
	if v.kind != Mapping {
		return nil, v.kindErr(Mapping)
	}
	c := make(map[string]Value, len(v.m))
	for k, val := range v.m {
		c[k] = val
	}
	return c, nil
}

func (v Value) MustBool() bool {
	b, err := v.Bool()
	if err != nil {
		panic(err.Error())
	}
	return b
}

func (v Value) MustInt() int {
	i, err := v.Int()
	if err != nil {
		panic(err.Error())
	}
	return i
}

func (v Value) MustFloat() float64 {
	f, err := v.Float()
	if err != nil {
		panic(err.Error())
	}
	return f
}

func (v Value) MustStr() string {
	s, err := v.Str()
	if err != nil {
		panic(err.Error())
	}
	return s
}

func (v Value) MustIntList() []int {
	l, err := v.IntList()
	if err != nil {
		panic(err.Error())
	}
	return l
}

func (v Value) MustRange() [2]float64 {
	r, err := v.Range()
	if err != nil {
		panic(err.Error())
	}
	return r
}

// Equal reports whether two values hold the same kind and the same contents.
// Lists and mappings are compared element by element. The settings engine uses
// this to decide whether a set call actually changed anything.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Nil:
		return true
	case Bool:
		return v.b == o.b
	case Int:
		return v.i == o.i
	case Float:
		return v.f == o.f
	case String, Enum:
		return v.s == o.s
	case IntList:
		if len(v.il) != len(o.il) {
			return false
		}
		for i := range v.il {
			if v.il[i] != o.il[i] {
				return false
			}
		}
		return true
	case FloatRange:
		return v.fr == o.fr
	case Mapping:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, val := range v.m {
			other, ok := o.m[k]
			if !ok || !val.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// Repr returns a printable form of the value, for help surfaces and error
// messages.
func (v Value) Repr() string {
	switch v.kind {
	case Nil:
		return "none"
	case Bool:
		return fmt.Sprintf("%v", v.b)
	case Int:
		return fmt.Sprintf("%d", v.i)
	case Float:
		return fmt.Sprintf("%g", v.f)
	case String:
		return fmt.Sprintf("%q", v.s)
	case Enum:
		return v.s
	case IntList:
		return fmt.Sprintf("%v", v.il)
	case FloatRange:
		return fmt.Sprintf("[%g,%g]", v.fr[0], v.fr[1])
	case Mapping:
		return fmt.Sprintf("mapping(%d entries)", len(v.m))
	}
	return "?"
}
