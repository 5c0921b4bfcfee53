package runsolver

import (
	"context"
	"fmt"
	"os"

	"github.com/Bikes4Fun/sturdy-potato"
	"github.com/Bikes4Fun/sturdy-potato/internal/satsolver"
)

// Builtin solves a CNF file using the bundled DPLL solver, with no
// external process involved. It exists for tests and small instances
// where installing CaDiCaL or Kissat isn't warranted; it is not
// expected to scale to production-sized scheduling instances.
type Builtin struct{}

// Solve reads cnfPath as DIMACS CNF and solves it in-process.
func (Builtin) Solve(ctx context.Context, cnfPath string) (*Result, error) {
	f, err := os.Open(cnfPath)
	if err != nil {
		return nil, fmt.Errorf("open cnf %s: %w", cnfPath, err)
	}
	defer f.Close()

	clauses, err := crsat.ParseDIMACS(f)
	if err != nil {
		return nil, fmt.Errorf("parse cnf %s: %w", cnfPath, err)
	}

	model, _, sat := satsolver.Solve(clauses)
	if !sat {
		return &Result{SAT: false}, nil
	}
	return &Result{SAT: true, Model: model}, nil
}
