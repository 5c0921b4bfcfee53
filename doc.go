// Package crsat encodes a university course-scheduling instance as a
// Conjunctive Normal Form (CNF) formula suitable for an external SAT
// solver. It implements three families of constraints:
//
//   - exactly one (room, time) choice per section,
//   - at most one section per occupied (room, time) slot,
//   - a bounded "at most k" cap on co-scheduled soft-conflict pairs.
//
// The package does not solve the formula it builds; see the internal
// satsolver package for a bundled solver (used by the tests, by the CLI's
// verify subcommand, and as the CLI's default solver), and the runsolver
// package for invoking an external solver such as cadical or kissat.
package crsat
