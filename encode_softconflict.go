package crsat

// EncodeSoftConflict emits the at-most-k constraint for one conflict
// bucket (§4.4.3). k == 0 means "no constraint emitted"; the caller is
// expected to call this once per bucket present in the constraints map.
// It returns the auxiliary "conflict active" literals it introduced
// (empty when k == 1, since that case needs no auxiliaries), for
// callers that want to track per-bucket activation counts (see the
// harness package's CheckAtMostK).
func EncodeSoftConflict(ix *Index, sink *Sink, counter *LiteralCounter, bucket int, k int) ([]int, error) {
	if k == 0 {
		return nil, nil
	}

	pairs := ix.PairsInBucket(bucket)
	var auxVars []int

	for _, pair := range pairs {
		mutual := mutualTimes(ix, pair.A, pair.B)

		for _, t := range mutual {
			c1 := conflictingAssignments(ix, pair.A, t)
			c2 := conflictingAssignments(ix, pair.B, t)
			if len(c1) == 0 || len(c2) == 0 {
				continue
			}

			if k == 1 {
				tag := NewTag("atmost_one", bucket, pair.A, pair.B)
				for _, x := range c1 {
					for _, y := range c2 {
						lx, _ := ix.Literal(x)
						ly, _ := ix.Literal(y)
						if lx == ly {
							continue
						}
						if err := sink.Add(tag, []int{-int(lx), -int(ly)}); err != nil {
							return nil, err
						}
					}
				}
				continue
			}

			aux := counter.Alloc()
			tag := NewTag("soft_conflict_relaxed", bucket, pair.A, pair.B)
			for _, x := range c1 {
				for _, y := range c2 {
					lx, _ := ix.Literal(x)
					ly, _ := ix.Literal(y)
					if lx == ly {
						continue
					}
					if err := sink.Add(tag, []int{-int(lx), -int(ly), aux}); err != nil {
						return nil, err
					}
				}
			}
			auxVars = append(auxVars, aux)
		}
	}

	if len(auxVars) > 1 {
		clauses, err := SequentialAtMostK(auxVars, k, counter)
		if err != nil {
			return nil, err
		}
		tag := NewTag(bucket, k, "sequential")
		if err := sink.AddBatch(tag, clauses); err != nil {
			return nil, err
		}
	}

	return auxVars, nil
}

// mutualTimes is times_by_section[s1] ∪ times_by_section[s2], sorted
// canonically and deduplicated.
func mutualTimes(ix *Index, s1, s2 string) []Timeslot {
	set := make(map[Timeslot]struct{})
	for _, t := range ix.TimesForSection(s1) {
		set[t] = struct{}{}
	}
	for _, t := range ix.TimesForSection(s2) {
		set[t] = struct{}{}
	}
	return sortedTimeslots(set)
}

// conflictingAssignments is the c1 (or, symmetrically, c2) set from
// §4.4.3: the Assignments of section that occupy some timeslot
// overlapping t and also belonging to section's own occupied times.
func conflictingAssignments(ix *Index, section string, t Timeslot) []Assignment {
	relevant := make(map[Timeslot]struct{})
	sectionTimes := make(map[Timeslot]struct{})
	for _, ts := range ix.TimesForSection(section) {
		sectionTimes[ts] = struct{}{}
	}
	for _, ts := range ix.ConflictsOf(t) {
		if _, ok := sectionTimes[ts]; ok {
			relevant[ts] = struct{}{}
		}
	}

	var out []Assignment
	for _, a := range ix.AssignmentsForSection(section) {
		for _, ts := range a.Timeslots() {
			if _, ok := relevant[ts]; ok {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
