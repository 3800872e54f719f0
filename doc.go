/*
 * doc.go, part of esviz.
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

/*
Package esviz provides the shared data model for post-processing and plotting
results of electronic-structure calculations: a tagged value type for plot
parameters, spin kinds, and the error interface implemented by every package
in the library.

The interesting machinery lives in the subpackages. Package settings holds the
reactive parameter/artifact engine that plot objects are built on; packages
bands and grid hold the plot objects themselves; package session persists
named parameter sets between runs.
*/
package esviz
