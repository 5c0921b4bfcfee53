package satsolver

import (
	"fmt"
	"math/rand"
	"testing"
)

func solutionIsValid(problem [][]int, soln []int) bool {
	assn := make(map[int]bool, len(soln))
	for _, v := range soln {
		if v < 0 {
			assn[-v] = false
		} else {
			assn[v] = true
		}
	}
	for _, clause := range problem {
		satisfied := false
		for _, lit := range clause {
			v := lit
			want := true
			if v < 0 {
				v = -v
				want = false
			}
			if assn[v] == want {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// bruteForceSat exhaustively checks satisfiability for small problems, used
// as an oracle to check the solver against.
func bruteForceSat(problem [][]int, numVars int) bool {
	for assn := 0; assn < 1<<uint(numVars); assn++ {
		vals := make(map[int]bool, numVars)
		for v := 1; v <= numVars; v++ {
			vals[v] = assn&(1<<uint(v-1)) != 0
		}
		ok := true
		for _, clause := range problem {
			satisfied := false
			for _, lit := range clause {
				v := lit
				want := true
				if v < 0 {
					v = -v
					want = false
				}
				if vals[v] == want {
					satisfied = true
					break
				}
			}
			if !satisfied {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func makeRandomSat(seed int64, numVars, numClauses int) [][]int {
	r := rand.New(rand.NewSource(seed))
	problem := make([][]int, numClauses)
	for i := range problem {
		width := 1 + r.Intn(3)
		if width > numVars {
			width = numVars
		}
		seen := make(map[int]struct{})
		var clause []int
		for len(clause) < width {
			v := 1 + r.Intn(numVars)
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			if r.Intn(2) == 0 {
				v = -v
			}
			clause = append(clause, v)
		}
		problem[i] = clause
	}
	return problem
}

func TestSolveUnit(t *testing.T) {
	soln, _, sat := Solve([][]int{{1}})
	if !sat {
		t.Fatal("expected sat")
	}
	if len(soln) != 1 || soln[0] != 1 {
		t.Fatalf("got %v", soln)
	}
}

func TestSolveContradiction(t *testing.T) {
	_, _, sat := Solve([][]int{{1}, {-1}})
	if sat {
		t.Fatal("expected unsat")
	}
}

func TestSolveSimpleClause(t *testing.T) {
	problem := [][]int{{1, 2}, {-1, -2}}
	soln, _, sat := Solve(problem)
	if !sat {
		t.Fatal("expected sat")
	}
	if !solutionIsValid(problem, soln) {
		t.Fatalf("invalid solution %v for %v", soln, problem)
	}
}

func TestSolveRandomized(t *testing.T) {
	for _, tt := range []struct {
		numVars    int
		numClauses int
		numSeeds   int
	}{
		{2, 2, 20},
		{3, 10, 100},
		{5, 10, 200},
		{8, 20, 200},
	} {
		name := fmt.Sprintf("vars=%d,clauses=%d", tt.numVars, tt.numClauses)
		t.Run(name, func(t *testing.T) {
			for seed := 0; seed < tt.numSeeds; seed++ {
				problem := makeRandomSat(int64(seed), tt.numVars, tt.numClauses)
				soln, _, sat := Solve(problem)
				want := bruteForceSat(problem, tt.numVars)
				if sat != want {
					t.Fatalf("[seed=%d] Solve returned sat=%v, brute force says %v: %v", seed, sat, want, problem)
				}
				if sat && !solutionIsValid(problem, soln) {
					t.Fatalf("[seed=%d] invalid solution %v for %v", seed, soln, problem)
				}
			}
		})
	}
}

func ExampleSolve() {
	// Problem: (¬x ∨ ¬y) ∧ (¬y ∨ z) ∧ (x ∨ ¬z ∨ y) ∧ y
	problem := [][]int{
		{-1, -2},
		{-2, 3},
		{1, -3, 2},
		{2},
	}
	solution, _, ok := Solve(problem)
	if !ok {
		fmt.Println("not satisfiable")
		return
	}
	fmt.Println("satisfiable:", solution)
	// Output: satisfiable: [-1 2 3]
}
