// SPDX-License-Identifier: MIT

// Package fva computes flux variability: for every simulation and every
// requested reaction, the smallest and largest flux compatible with the
// context while the optimum of the underlying flux balance problem is
// preserved.
//
// The base optimum comes from an fba.Solver. Linear mode then holds the
// objective within max(tol, (1−fraction)·|opt|) of the optimum; quadratic
// mode (relaxation off) holds every fitted entry value within the same
// tolerance instead. Each bound is one LP; bounds run on a bounded worker
// pool and are stored by (simulation, reaction) index.
package fva
