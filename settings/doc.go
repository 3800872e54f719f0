/*
Package settings implements the reactive parameter engine that plot objects in
this library are built on.

A plot object owns an Engine. The Engine holds a set of named, validated
parameters (created from a Schema) and a set of named artifacts: cached derived
results such as "eigenstates" or "plane", each declared with the parameter
names it reads, the artifacts it derives from, and a producer function.

Updating parameters only invalidates the affected artifacts, walking the
dependency graph downstream; nothing is recomputed until the artifact is next
read. Reading an artifact resolves its upstream artifacts recursively, calls
the producer once, and caches the result. Re-setting a parameter to its current
value is a no-op and invalidates nothing, so for instance changing the band
index of a wavefunction plot never forces the eigenstates to be diagonalized
again.

An Engine is strictly single-threaded: all calls run to completion before
returning and no internal locking is done. Independent plot objects use
independent engines and share nothing.
*/
package settings
