package crsat

// EncodeSectionChoice emits, for every section, the at-least-one clause
// over its candidate Assignments plus the pairwise at-most-one clauses
// over the same set (§4.4.1).
func EncodeSectionChoice(ix *Index, sink *Sink) error {
	for _, section := range ix.Sections() {
		assignments := ix.AssignmentsForSection(section)
		if len(assignments) == 0 {
			continue
		}
		tag := NewTag("one course per section", section)

		lits := make([]int, len(assignments))
		for i, a := range assignments {
			lit, ok := ix.Literal(a)
			if !ok {
				return invariantf("section choice", "assignment %+v has no literal", a)
			}
			lits[i] = int(lit)
		}

		if err := sink.Add(tag, lits); err != nil {
			return err
		}
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				if err := sink.Add(tag, []int{-lits[i], -lits[j]}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
