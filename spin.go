/*
 * spin.go, part of esviz.
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

// SpinKind classifies the spin configuration of a calculation. It follows the
// usual ordering of electronic-structure codes: unpolarized, collinear
// polarized, non-collinear, spin-orbit.
type SpinKind int

const (
	Unpolarized SpinKind = iota
	Polarized
	NonColinear
	SpinOrbit
)

//The aliases accepted by ParseSpin. Codes and their input files are wildly
//inconsistent about these spellings, so we accept all the common ones.
var spinAliases = map[string]SpinKind{
	"":               Unpolarized,
	"unpolarized":    Unpolarized,
	"polarized":      Polarized,
	"p":              Polarized,
	"pol":            Polarized,
	"noncolinear":    NonColinear,
	"noncollinear":   NonColinear,
	"non-colinear":   NonColinear,
	"non-collinear":  NonColinear,
	"nc":             NonColinear,
	"spinorbit":      SpinOrbit,
	"spin-orbit":     SpinOrbit,
	"so":             SpinOrbit,
	"soc":            SpinOrbit,
}

// ParseSpin turns a spelled-out spin kind into a SpinKind. It returns an
// InvalidValue error for spellings it does not know.
func ParseSpin(s string) (SpinKind, error) {
	k, ok := spinAliases[s]
	if !ok {
		return Unpolarized, &InvalidValue{Name: "spin", Reason: fmt.Sprintf("unknown spin kind %q", s)}
	}
	return k, nil
}

func (k SpinKind) String() string {
	switch k {
	case Unpolarized:
		return "unpolarized"
	case Polarized:
		return "polarized"
	case NonColinear:
		return "non-colinear"
	case SpinOrbit:
		return "spin-orbit"
	}
	return fmt.Sprintf("spinkind(%d)", int(k))
}

// Components returns the number of spin components stored per matrix element
// for this kind, assuming complex storage.
func (k SpinKind) Components() int {
	switch k {
	case Unpolarized:
		return 1
	case Polarized:
		return 2
	case NonColinear, SpinOrbit:
		return 4
	}
	return 1
}

// Spins returns the number of separately diagonalized spin channels: two for a
// collinear polarized calculation, one otherwise.
func (k SpinKind) Spins() int {
	if k == Polarized {
		return 2
	}
	return 1
}
