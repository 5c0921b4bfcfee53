package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bikes4Fun/sturdy-potato"
	"github.com/Bikes4Fun/sturdy-potato/harness"
	"github.com/Bikes4Fun/sturdy-potato/load"
	"github.com/Bikes4Fun/sturdy-potato/present"
	"github.com/Bikes4Fun/sturdy-potato/runsolver"
)

func newSolveCmd() *cobra.Command {
	var datasetPath string
	var cnfPath string
	var solverBin string
	var byRoom bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Invoke a SAT solver on a CNF file and decode the model back into a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := load.Dataset(datasetPath)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			ix, err := crsat.NewIndex(raw)
			if err != nil {
				return fmt.Errorf("build instance index: %w", err)
			}

			var solver interface {
				Solve(ctx context.Context, cnfPath string) (*runsolver.Result, error)
			}
			if solverBin == "" || solverBin == "builtin" {
				solver = runsolver.Builtin{}
			} else {
				solver = runsolver.NewExternal(solverBin)
			}

			res, err := solver.Solve(cmd.Context(), cnfPath)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}
			if !res.SAT {
				logger.Info("unsatisfiable", zap.String("cnf", cnfPath))
				fmt.Println("UNSAT")
				return nil
			}

			chosen, err := harness.CheckRoundTrip(ix, res.Model)
			if err != nil {
				return fmt.Errorf("decode model: %w", err)
			}
			assignments := make([]crsat.Assignment, 0, len(chosen))
			for _, a := range chosen {
				assignments = append(assignments, a)
			}

			if byRoom {
				present.ByRoom(os.Stdout, assignments)
			} else {
				present.BySection(os.Stdout, assignments)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "dataset YAML file (needed to decode the model)")
	cmd.Flags().StringVar(&cnfPath, "cnf", "", "DIMACS CNF file to solve")
	cmd.Flags().StringVar(&solverBin, "solver", "builtin", "external solver binary, or \"builtin\" for the bundled solver")
	cmd.Flags().BoolVar(&byRoom, "by-room", false, "group the printed schedule by room instead of by section")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("cnf")

	return cmd
}
