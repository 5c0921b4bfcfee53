package crsat

import (
	"testing"

	"github.com/Bikes4Fun/sturdy-potato/internal/satsolver"
)

func TestSequentialAtMostKRejectsTooFewLiterals(t *testing.T) {
	counter := NewLiteralCounter(1)
	_, err := SequentialAtMostK([]int{1}, 1, counter)
	if err == nil {
		t.Fatal("expected error for fewer than 2 literals")
	}
}

func TestSequentialAtMostKRejectsNonPositiveK(t *testing.T) {
	counter := NewLiteralCounter(1)
	_, err := SequentialAtMostK([]int{1, 2, 3}, 0, counter)
	if err == nil {
		t.Fatal("expected error for k < 1")
	}
}

func TestSequentialAtMostKAllocatesFullGrid(t *testing.T) {
	counter := NewLiteralCounter(100)
	n, k := 4, 2
	lits := make([]int, n)
	for i := range lits {
		lits[i] = i + 1
	}

	if _, err := SequentialAtMostK(lits, k, counter); err != nil {
		t.Fatalf("SequentialAtMostK: %v", err)
	}

	gotAllocated := counter.Peek() - 100
	want := n * k
	if gotAllocated != want {
		t.Errorf("counter advanced by %d, want %d (n*k aux literals)", gotAllocated, want)
	}
}

func TestSequentialAtMostKForbidsMoreThanK(t *testing.T) {
	counter := NewLiteralCounter(4)
	lits := []int{1, 2, 3}
	clauses, err := SequentialAtMostK(lits, 1, counter)
	if err != nil {
		t.Fatalf("SequentialAtMostK: %v", err)
	}

	// Forcing all three literals true should be unsatisfiable against the
	// at-most-one encoding.
	forced := append([][]int{{1}, {2}, {3}}, clauses...)
	_, _, sat := satsolver.Solve(forced)
	if sat {
		t.Fatal("expected UNSAT when forcing 3 literals true under an at-most-1 constraint")
	}

	// Forcing exactly one true, with the others free, should be SAT.
	oneForced := append([][]int{{1}, {-2}, {-3}}, clauses...)
	_, _, sat = satsolver.Solve(oneForced)
	if !sat {
		t.Fatal("expected SAT when exactly one of three literals is forced true under an at-most-1 constraint")
	}
}
