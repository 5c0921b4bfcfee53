package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Bikes4Fun/sturdy-potato"
	"github.com/Bikes4Fun/sturdy-potato/load"
)

// encodeResult is the outcome of running the full encoder pipeline over
// one dataset.
type encodeResult struct {
	dataset     string
	index       *crsat.Index
	sink        *crsat.Sink
	counter     *crsat.LiteralCounter
	auxByBucket map[int][]int
}

// runPipeline loads a dataset and its constraints, builds the Instance
// Index, and runs all three constraint encoders into a fresh Clause
// Sink. It mirrors the original tool's phase-by-phase console output as
// structured zap log lines ("only one course per section", "only one
// per room", "no time conflicts") rather than bare prints.
func runPipeline(datasetPath, constraintsPath string, debug bool, logger *zap.Logger) (*encodeResult, error) {
	start := time.Now()

	raw, err := load.Dataset(datasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	constraints, err := load.Constraints(constraintsPath)
	if err != nil {
		return nil, fmt.Errorf("load constraints: %w", err)
	}

	ix, err := crsat.NewIndex(raw)
	if err != nil {
		return nil, fmt.Errorf("build instance index: %w", err)
	}
	logger.Info("instance index built", zap.String("dataset", datasetPath), zap.Int("sections", len(ix.Sections())))

	sink := crsat.NewSink(debug)

	if err := crsat.EncodeSectionChoice(ix, sink); err != nil {
		return nil, fmt.Errorf("encode section choice: %w", err)
	}
	logger.Info("only one course per section", zap.String("dataset", datasetPath), zap.Int("clauses", sink.Total()))
	clausesEmitted.WithLabelValues(datasetPath, "section_choice").Set(float64(sink.Total()))

	beforeRoom := sink.Total()
	if err := crsat.EncodeRoomExclusion(ix, sink); err != nil {
		return nil, fmt.Errorf("encode room exclusion: %w", err)
	}
	logger.Info("only one per room", zap.String("dataset", datasetPath), zap.Int("clauses", sink.Total()-beforeRoom))
	clausesEmitted.WithLabelValues(datasetPath, "room_exclusion").Set(float64(sink.Total() - beforeRoom))

	counter := crsat.NewLiteralCounter(ix.InitialLiteral())
	auxByBucket := make(map[int][]int)
	beforeSoft := sink.Total()
	for _, bucket := range ix.Buckets() {
		k, ok := constraints[bucket]
		if !ok || k == 0 {
			continue
		}
		aux, err := crsat.EncodeSoftConflict(ix, sink, counter, bucket, k)
		if err != nil {
			return nil, fmt.Errorf("encode soft conflict bucket %d: %w", bucket, err)
		}
		auxByBucket[bucket] = aux
	}
	logger.Info("no time conflicts", zap.String("dataset", datasetPath), zap.Int("clauses", sink.Total()-beforeSoft))
	clausesEmitted.WithLabelValues(datasetPath, "soft_conflict").Set(float64(sink.Total() - beforeSoft))

	totalAux := 0
	for _, a := range auxByBucket {
		totalAux += len(a)
	}
	auxVariables.WithLabelValues(datasetPath).Set(float64(totalAux))
	encodeDuration.WithLabelValues(datasetPath).Observe(time.Since(start).Seconds())

	return &encodeResult{
		dataset:     datasetPath,
		index:       ix,
		sink:        sink,
		counter:     counter,
		auxByBucket: auxByBucket,
	}, nil
}
