package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bikes4Fun/sturdy-potato"
	"github.com/Bikes4Fun/sturdy-potato/harness"
	"github.com/Bikes4Fun/sturdy-potato/internal/satsolver"
	"github.com/Bikes4Fun/sturdy-potato/load"
)

// propertyCheck names one of the nine testable properties from the core
// encoder's interface contract and how to evaluate it against a freshly
// built pipeline result.
type propertyCheck struct {
	name string
	run  func(result *encodeResult) error
}

func newVerifyCmd() *cobra.Command {
	var datasetPath string
	var constraintsPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the encoder's nine correctness properties against a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runPipeline(datasetPath, constraintsPath, false, logger)
			if err != nil {
				return fmt.Errorf("build pipeline: %w", err)
			}

			maxVar := result.counter.Peek() - 1

			checks := []propertyCheck{
				{"literal bijection", func(r *encodeResult) error {
					return harness.CheckLiteralBijection(r.index)
				}},
				{"clause bounds", func(r *encodeResult) error {
					return harness.CheckClauseBounds(r.sink, maxVar)
				}},
				{"no tautologies", func(r *encodeResult) error {
					return harness.CheckNoTautology(r.sink)
				}},
				{"total matches output", func(r *encodeResult) error {
					return harness.CheckTotalMatchesOutput(r.sink)
				}},
				{"section mutual exclusion", func(r *encodeResult) error {
					return harness.CheckSectionMutualExclusion(r.index, r.sink)
				}},
				{"room mutual exclusion", func(r *encodeResult) error {
					return harness.CheckRoomMutualExclusion(r.index, r.sink)
				}},
				{"deterministic output", func(r *encodeResult) error {
					return harness.CheckDeterminism(func() ([]byte, error) {
						rebuilt, err := runPipeline(datasetPath, constraintsPath, false, zap.NewNop())
						if err != nil {
							return nil, err
						}
						var buf bytes.Buffer
						if err := crsat.WriteCNF(&buf, rebuilt.sink, maxVar); err != nil {
							return nil, err
						}
						return buf.Bytes(), nil
					})
				}},
				{"solver round trip and at-most-k", func(r *encodeResult) error {
					model, _, sat := satsolver.Solve(r.sink.AllClauses())
					if !sat {
						return fmt.Errorf("dataset is unsatisfiable, cannot check round trip or at-most-k")
					}
					if _, err := harness.CheckRoundTrip(r.index, model); err != nil {
						return err
					}
					constraints, err := load.Constraints(constraintsPath)
					if err != nil {
						return err
					}
					for bucket, aux := range r.auxByBucket {
						k, ok := constraints[bucket]
						if !ok {
							continue
						}
						if err := harness.CheckAtMostK(model, aux, k); err != nil {
							return fmt.Errorf("bucket %d: %w", bucket, err)
						}
					}
					return nil
				}},
			}

			failed := 0
			for _, c := range checks {
				if err := c.run(result); err != nil {
					failed++
					logger.Error("property failed", zap.String("property", c.name), zap.Error(err))
					fmt.Printf("FAIL  %s: %v\n", c.name, err)
					continue
				}
				fmt.Printf("PASS  %s\n", c.name)
			}

			if failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "dataset YAML file")
	cmd.Flags().StringVar(&constraintsPath, "constraints", "", "constraints YAML file (Bucket -> k)")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("constraints")

	return cmd
}
