package crsat

// LiteralCounter owns the single monotonically increasing "current
// literal" counter shared by the encoder pipeline (§3, §5). It is never
// decremented.
type LiteralCounter struct {
	next int
}

// NewLiteralCounter starts a counter at the first unused literal.
func NewLiteralCounter(start int) *LiteralCounter {
	return &LiteralCounter{next: start}
}

// Peek returns the next literal that Alloc would hand out, without
// consuming it.
func (c *LiteralCounter) Peek() int { return c.next }

// Alloc hands out the next literal and advances the counter.
func (c *LiteralCounter) Alloc() int {
	l := c.next
	c.next++
	return l
}

// Advance moves the counter forward to at least to; it never moves it
// backward. SequentialAtMostK does not need it, since it allocates every
// auxiliary through Alloc.
func (c *LiteralCounter) Advance(to int) {
	if to > c.next {
		c.next = to
	}
}

// seqCounterAux names an sᵢⱼ auxiliary in the sequential-counter grid.
type seqCounterAux struct {
	i, j int
}

// SequentialAtMostK builds the sequential-counter at-most-k clauses over
// lits, per §4.4.4. It allocates the full n×k grid of sᵢⱼ auxiliaries
// from counter (rows 1..n, columns 1..k) so the allocated literal count
// always equals n·k, even though only rows 1..n-1 appear in any emitted
// clause — see DESIGN.md, grounded directly in scenario S6's explicit
// "total aux count = n·k" requirement.
//
// k must be >= 1 and len(lits) must be >= 2; the caller is responsible
// for skipping the trivial cases (EncodeSoftConflict only calls this when
// it introduced more than one auxiliary literal).
func SequentialAtMostK(lits []int, k int, counter *LiteralCounter) ([][]int, error) {
	n := len(lits)
	if n < 2 {
		return nil, invariantf("sequential counter", "need at least 2 literals, got %d", n)
	}
	if k < 1 {
		return nil, invariantf("sequential counter", "k must be >= 1, got %d", k)
	}

	s := make(map[seqCounterAux]int, n*k)
	for i := 1; i <= n; i++ {
		for j := 1; j <= k; j++ {
			s[seqCounterAux{i, j}] = counter.Alloc()
		}
	}

	x := func(i int) int { return lits[i-1] }
	sv := func(i, j int) int { return s[seqCounterAux{i, j}] }

	var clauses [][]int
	emit := func(c []int) { clauses = append(clauses, c) }

	emit([]int{-x(1), sv(1, 1)})
	for j := 2; j <= k; j++ {
		emit([]int{-sv(1, j)})
	}

	for i := 2; i < n; i++ {
		emit([]int{-x(i), sv(i, 1)})
		emit([]int{-sv(i-1, 1), sv(i, 1)})
		for j := 2; j <= k; j++ {
			emit([]int{-x(i), -sv(i-1, j-1), sv(i, j)})
			emit([]int{-sv(i-1, j), sv(i, j)})
		}
		emit([]int{-x(i), -sv(i-1, k)})
	}

	emit([]int{-x(n), -sv(n-1, k)})

	return clauses, nil
}
