/*
 * values_test.go, part of esviz.
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

import (
	"errors"
	"testing"
)

func TestValueKindsAndAccessors(t *testing.T) {
	cases := []struct {
		v    Value
		kind Kind
	}{
		{NilValue(), Nil},
		{BoolValue(true), Bool},
		{IntValue(42), Int},
		{FloatValue(1.5), Float},
		{StringValue("hi"), String},
		{EnumValue("polarized"), Enum},
		{IntListValue([]int{1, 2}), IntList},
		{RangeValue(-1, 1), FloatRange},
		{MappingValue(map[string]Value{"a": IntValue(1)}), Mapping},
	}
	for _, c := range cases {
		if c.v.Kind() != c.kind {
			t.Errorf("%s: kind %v, want %v", c.v.Repr(), c.v.Kind(), c.kind)
		}
	}

	if v, _ := IntValue(42).Int(); v != 42 {
		t.Errorf("Int roundtrip got %d", v)
	}
	if _, err := IntValue(42).Float(); err == nil {
		t.Error("kind mismatch must error")
	}
	var invalid *InvalidValue
	_, err := BoolValue(true).Int()
	if !errors.As(err, &invalid) {
		t.Errorf("kind mismatch should be an InvalidValue, got %T", err)
	}
	//Str accepts both string kinds
	if s, err := EnumValue("nc").Str(); err != nil || s != "nc" {
		t.Errorf("Str() on enum: %q, %v", s, err)
	}
}

func TestValueEquality(t *testing.T) {
	if !IntListValue([]int{1, 2, 3}).Equal(IntListValue([]int{1, 2, 3})) {
		t.Error("equal lists compare unequal")
	}
	if IntListValue([]int{1, 2, 3}).Equal(IntListValue([]int{1, 2})) {
		t.Error("different lists compare equal")
	}
	if IntValue(1).Equal(FloatValue(1)) {
		t.Error("values of different kinds must never be equal")
	}
	if !NilValue().Equal(NilValue()) {
		t.Error("nil equals nil")
	}
	a := MappingValue(map[string]Value{"x": RangeValue(0, 1)})
	b := MappingValue(map[string]Value{"x": RangeValue(0, 1)})
	c := MappingValue(map[string]Value{"x": RangeValue(0, 2)})
	if !a.Equal(b) || a.Equal(c) {
		t.Error("mapping equality is wrong")
	}
}

func TestValueImmutability(t *testing.T) {
	src := []int{1, 2, 3}
	v := IntListValue(src)
	src[0] = 99
	got := v.MustIntList()
	if got[0] != 1 {
		t.Error("constructor must copy its argument")
	}
	got[1] = 99
	if v.MustIntList()[1] != 2 {
		t.Error("accessor must return a copy")
	}
}

func TestMustAccessorsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustInt on a string value should panic")
		}
	}()
	StringValue("nope").MustInt()
}

func TestSpinParsing(t *testing.T) {
	for alias, want := range map[string]SpinKind{
		"":              Unpolarized,
		"p":             Polarized,
		"non-collinear": NonColinear,
		"soc":           SpinOrbit,
	} {
		got, err := ParseSpin(alias)
		if err != nil {
			t.Errorf("ParseSpin(%q): %v", alias, err)
		}
		if got != want {
			t.Errorf("ParseSpin(%q) = %v, want %v", alias, got, want)
		}
	}
	if _, err := ParseSpin("sideways"); err == nil {
		t.Error("unknown spin spelling must fail")
	}

	if Polarized.Spins() != 2 || Unpolarized.Spins() != 1 {
		t.Error("wrong channel counts")
	}
	if SpinOrbit.Components() != 4 {
		t.Error("wrong component count for spin-orbit")
	}
}

func TestErrorDecoration(t *testing.T) {
	var err Error = &UnknownParameter{Name: "kpts"}
	deco := err.Decorate("NewPlot")
	if len(deco) != 1 || deco[0] != "NewPlot" {
		t.Errorf("decoration %v", deco)
	}
	if got := err.Decorate(""); len(got) != 1 {
		t.Errorf("empty decoration must not append: %v", got)
	}

	cause := errors.New("lapack said no")
	aerr := &ArtifactError{Artifact: "eigenstates", Cause: cause}
	if !errors.Is(aerr, cause) {
		t.Error("ArtifactError must unwrap to its cause")
	}
}
