/*
 * errors.go, part of esviz.
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
	"fmt"
	"strings"
)

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows callers to add the name of the function passing the
// error up, plus any extra information, without changing the error's type. If
// passed an empty string it only returns the current decoration slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// UnknownParameter is returned when getting or setting a parameter name that
// was never registered in a schema.
type UnknownParameter struct {
	Name string
	deco []string
}

func (err *UnknownParameter) Error() string {
	return fmt.Sprintf("esviz: unknown parameter %q", err.Name)
}

func (err *UnknownParameter) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// InvalidValue is returned when a parameter's validator rejects a candidate
// value. The parameter keeps its previous value.
type InvalidValue struct {
	Name   string
	Reason string
	deco   []string
}

func (err *InvalidValue) Error() string {
	if err.Name == "" {
		return fmt.Sprintf("esviz: invalid value: %s", err.Reason)
	}
	return fmt.Sprintf("esviz: invalid value for %q: %s", err.Name, err.Reason)
}

func (err *InvalidValue) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// UnknownArtifact is returned when reading an artifact name that was never
// declared.
type UnknownArtifact struct {
	Name string
	deco []string
}

func (err *UnknownArtifact) Error() string {
	return fmt.Sprintf("esviz: unknown artifact %q", err.Name)
}

func (err *UnknownArtifact) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// CyclicDependency is returned by artifact declaration when the new edges would
// close a cycle. The declaration is rejected and the graph left untouched.
// This is a programming error in the plot object's schema, not a user error.
type CyclicDependency struct {
	Artifact string
	Cycle    []string //the offending path, ending where it started
	deco     []string
}

func (err *CyclicDependency) Error() string {
	return fmt.Sprintf("esviz: declaring artifact %q would create cycle %s",
		err.Artifact, strings.Join(err.Cycle, " -> "))
}

func (err *CyclicDependency) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// ArtifactError wraps a failure inside an artifact's producer function. The
// artifact stays invalid, so the next read retries the producer.
type ArtifactError struct {
	Artifact string
	Cause    error
	deco     []string
}

func (err *ArtifactError) Error() string {
	return fmt.Sprintf("esviz: computing artifact %q: %v", err.Artifact, err.Cause)
}

func (err *ArtifactError) Unwrap() error { return err.Cause }

func (err *ArtifactError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
