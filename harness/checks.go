// Package harness implements the testable properties the core encoder
// promises (§8 of its interface contract) as reusable checks, so both
// the driver's "verify" subcommand and the test suite can run the same
// assertions against a freshly built Index and Clause Sink.
package harness

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/Bikes4Fun/sturdy-potato"
)

// CheckLiteralBijection verifies that literal<->Assignment is total and
// injective over every Assignment in the Index (property 1).
func CheckLiteralBijection(ix *crsat.Index) error {
	seen := make(map[crsat.Literal]crsat.Assignment)
	for _, section := range ix.Sections() {
		for _, a := range ix.AssignmentsForSection(section) {
			lit, ok := ix.Literal(a)
			if !ok {
				return fmt.Errorf("assignment %+v has no literal", a)
			}
			back, ok := ix.AssignmentOf(lit)
			if !ok || back != a {
				return fmt.Errorf("literal %d does not invert back to %+v (got %+v, ok=%v)", lit, a, back, ok)
			}
			if prior, dup := seen[lit]; dup && prior != a {
				return fmt.Errorf("literal %d is shared by distinct assignments %+v and %+v", lit, prior, a)
			}
			seen[lit] = a
		}
	}
	return nil
}

// CheckClauseBounds verifies that every clause in the sink contains only
// nonzero literals with absolute value <= maxVar (property 2).
func CheckClauseBounds(sink *crsat.Sink, maxVar int) error {
	for _, clause := range sink.AllClauses() {
		for _, lit := range clause {
			if lit == 0 {
				return fmt.Errorf("clause %v contains a zero literal", clause)
			}
			abs := lit
			if abs < 0 {
				abs = -abs
			}
			if abs > maxVar {
				return fmt.Errorf("clause %v references literal %d beyond max variable %d", clause, lit, maxVar)
			}
		}
	}
	return nil
}

// CheckNoTautology verifies that no clause in the sink contains both a
// literal and its negation (property 3).
func CheckNoTautology(sink *crsat.Sink) error {
	for _, clause := range sink.AllClauses() {
		seen := make(map[int]struct{}, len(clause))
		for _, lit := range clause {
			if _, ok := seen[-lit]; ok {
				return fmt.Errorf("clause %v is a tautology on literal %d", clause, lit)
			}
			seen[lit] = struct{}{}
		}
	}
	return nil
}

// CheckTotalMatchesOutput verifies the sink's reported total equals the
// number of clauses actually present in its output (property 4).
func CheckTotalMatchesOutput(sink *crsat.Sink) error {
	if got, want := len(sink.AllClauses()), sink.Total(); got != want {
		return fmt.Errorf("sink.AllClauses() has %d entries but Total() reports %d", got, want)
	}
	return nil
}

// CheckSectionMutualExclusion verifies that, for every pair of candidate
// Assignments sharing a section, the sink contains a clause forbidding
// both from being true simultaneously (property 5). This is a
// structural check: presence of (¬la ∨ ¬lb) in the sink is a sufficient
// witness for the semantic entailment the property describes.
func CheckSectionMutualExclusion(ix *crsat.Index, sink *crsat.Sink) error {
	present := pairwiseNegatedPairs(sink)
	for _, section := range ix.Sections() {
		assignments := ix.AssignmentsForSection(section)
		for i := 0; i < len(assignments); i++ {
			for j := i + 1; j < len(assignments); j++ {
				li, _ := ix.Literal(assignments[i])
				lj, _ := ix.Literal(assignments[j])
				if !present[pairKey(int(li), int(lj))] {
					return fmt.Errorf("section %q: no mutual-exclusion clause between %+v and %+v", section, assignments[i], assignments[j])
				}
			}
		}
	}
	return nil
}

// CheckRoomMutualExclusion verifies that, for every pair of candidate
// Assignments sharing a Room and overlapping single-day Timeslots, the
// sink contains a clause forbidding both simultaneously (property 6).
func CheckRoomMutualExclusion(ix *crsat.Index, sink *crsat.Sink) error {
	present := pairwiseNegatedPairs(sink)
	for _, room := range ix.Rooms() {
		for _, t1 := range ix.TimesInRoom(room) {
			c1 := ix.AssignmentsAt(room, t1)
			for _, t2 := range ix.ConflictsOf(t1) {
				c2 := ix.AssignmentsAt(room, t2)
				for _, a := range c1 {
					for _, b := range c2 {
						la, _ := ix.Literal(a)
						lb, _ := ix.Literal(b)
						if la == lb {
							continue
						}
						if !present[pairKey(int(la), int(lb))] {
							return fmt.Errorf("room %q: no mutual-exclusion clause between %+v and %+v", room, a, b)
						}
					}
				}
			}
		}
	}
	return nil
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func pairwiseNegatedPairs(sink *crsat.Sink) map[[2]int]bool {
	out := make(map[[2]int]bool)
	for _, clause := range sink.AllClauses() {
		if len(clause) != 2 {
			continue
		}
		a, b := clause[0], clause[1]
		if a < 0 && b < 0 {
			out[pairKey(-a, -b)] = true
		}
	}
	return out
}

// CheckAtMostK verifies that model activates at most k of tracked's
// literals (property 7). tracked is the set of auxiliary "conflict
// active" indicators a caller captured while encoding a single bucket.
func CheckAtMostK(model []int, tracked []int, k int) error {
	active := make(map[int]struct{}, len(model))
	for _, lit := range model {
		if lit > 0 {
			active[lit] = struct{}{}
		}
	}
	count := 0
	for _, lit := range tracked {
		if _, ok := active[lit]; ok {
			count++
		}
	}
	if count > k {
		return fmt.Errorf("bucket activated %d conflict indicators, bound is %d", count, k)
	}
	return nil
}

// CheckDeterminism runs build twice and verifies the two outputs are
// byte-identical (property 8).
func CheckDeterminism(build func() ([]byte, error)) error {
	a, err := build()
	if err != nil {
		return fmt.Errorf("first run: %w", err)
	}
	b, err := build()
	if err != nil {
		return fmt.Errorf("second run: %w", err)
	}
	if !bytes.Equal(a, b) {
		return fmt.Errorf("two runs produced different output (%d bytes vs %d bytes)", len(a), len(b))
	}
	return nil
}

// CheckRoundTrip decodes model via the Index's literal->Assignment
// inverse and verifies it yields exactly one Assignment per section
// (property 9).
func CheckRoundTrip(ix *crsat.Index, model []int) (map[string]crsat.Assignment, error) {
	chosen := make(map[string]crsat.Assignment)
	for _, lit := range model {
		if lit <= 0 {
			continue
		}
		a, ok := ix.AssignmentOf(crsat.Literal(lit))
		if !ok {
			continue // an auxiliary literal, not an Assignment
		}
		if prior, dup := chosen[a.Section]; dup {
			return nil, fmt.Errorf("section %q has two assignments active: %+v and %+v", a.Section, prior, a)
		}
		chosen[a.Section] = a
	}
	sections := ix.Sections()
	sort.Strings(sections)
	for _, s := range sections {
		if _, ok := chosen[s]; !ok {
			return nil, fmt.Errorf("section %q has no assignment active in model", s)
		}
	}
	return chosen, nil
}
