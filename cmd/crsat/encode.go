package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Bikes4Fun/sturdy-potato"
)

func newEncodeCmd() *cobra.Command {
	var datasets string
	var constraintsPath string
	var outDir string
	var debug bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build the Instance Index and write a DIMACS CNF file per dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := strings.Split(datasets, ",")
			g, _ := errgroup.WithContext(cmd.Context())
			for _, path := range paths {
				path := strings.TrimSpace(path)
				if path == "" {
					continue
				}
				g.Go(func() error {
					return encodeOne(path, constraintsPath, outDir, debug, logger)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&datasets, "dataset", "", "comma-separated list of dataset YAML files")
	cmd.Flags().StringVar(&constraintsPath, "constraints", "", "constraints YAML file (Bucket -> k)")
	cmd.Flags().StringVar(&outDir, "out", "results", "directory to write <dataset>.cnf files into")
	cmd.Flags().BoolVar(&debug, "debug", false, "group clauses by provenance tag in the output file")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("constraints")

	return cmd
}

// encodeOne runs the pipeline for a single dataset (its own Index,
// Sink, and literal counter, per §5's no-shared-mutable-state
// requirement for concurrent datasets) and writes its CNF file.
func encodeOne(datasetPath, constraintsPath, outDir string, debug bool, logger *zap.Logger) error {
	result, err := runPipeline(datasetPath, constraintsPath, debug, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", datasetPath, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("%s: create output dir: %w", datasetPath, err)
	}
	outPath := outDir + "/" + baseName(datasetPath) + ".cnf"
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%s: %w", datasetPath, err)
	}
	defer f.Close()

	maxVar := result.counter.Peek() - 1
	if err := crsat.WriteCNF(f, result.sink, maxVar); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("%s: write cnf: %w", datasetPath, err)
	}

	logger.Info("wrote cnf",
		zap.String("dataset", datasetPath),
		zap.String("out", outPath),
		zap.Int("clauses", result.sink.Total()),
		zap.Int("max_var", maxVar),
	)
	return nil
}

func baseName(path string) string {
	name := path
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}
