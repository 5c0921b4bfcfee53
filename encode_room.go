package crsat

import (
	"sort"
	"strconv"
	"strings"
)

// litSetKey canonicalizes a set of Assignments (by their literals) into
// a comparable string, sorted ascending so the key does not depend on
// which order the assignments were discovered in.
func litSetKey(ix *Index, assignments []Assignment) string {
	lits := make([]int, len(assignments))
	for i, a := range assignments {
		lit, _ := ix.Literal(a)
		lits[i] = int(lit)
	}
	sort.Ints(lits)
	b := make([]string, len(lits))
	for i, l := range lits {
		b[i] = strconv.Itoa(l)
	}
	return strings.Join(b, ",")
}

// setPairKey canonicalizes an unordered pair of Assignment sets so the
// dedup guard treats (C1, C2) and (C2, C1) identically, per the "canonical
// ordering" resolution to the order-sensitive dedup guard in §9.
func setPairKey(a, b string) string {
	if a <= b {
		return a + "|" + b
	}
	return b + "|" + a
}

// EncodeRoomExclusion emits at-most-one clauses between Assignments that
// would double-book a room at overlapping single-day times (§4.4.2).
func EncodeRoomExclusion(ix *Index, sink *Sink) error {
	tag := NewTag("room_literals")
	processed := make(map[string]struct{})

	for _, room := range ix.Rooms() {
		timesInRoom := ix.TimesInRoom(room)
		timesSet := make(map[Timeslot]struct{}, len(timesInRoom))
		for _, t := range timesInRoom {
			timesSet[t] = struct{}{}
		}

		for _, t1 := range timesInRoom {
			c1 := ix.AssignmentsAt(room, t1)
			if len(c1) == 0 {
				continue
			}
			key1 := litSetKey(ix, c1)

			var overlap []Timeslot
			for _, t2 := range ix.ConflictsOf(t1) {
				if _, ok := timesSet[t2]; ok {
					overlap = append(overlap, t2)
				}
			}
			sortTimeslots(overlap)

			for _, t2 := range overlap {
				c2 := ix.AssignmentsAt(room, t2)
				if len(c2) == 0 {
					continue
				}
				key2 := litSetKey(ix, c2)

				pairKey := setPairKey(key1, key2)
				if _, done := processed[pairKey]; done {
					continue
				}
				processed[pairKey] = struct{}{}

				if t1 == t2 {
					for i := 0; i < len(c1); i++ {
						for j := i + 1; j < len(c1); j++ {
							li, _ := ix.Literal(c1[i])
							lj, _ := ix.Literal(c1[j])
							if err := sink.Add(tag, []int{-int(li), -int(lj)}); err != nil {
								return err
							}
						}
					}
					continue
				}

				for _, x := range c1 {
					for _, y := range c2 {
						lx, _ := ix.Literal(x)
						ly, _ := ix.Literal(y)
						if lx == ly {
							continue
						}
						if err := sink.Add(tag, []int{-int(lx), -int(ly)}); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}
