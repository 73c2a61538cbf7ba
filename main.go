package main

import (
	"context"

	"github.com/tuannh982/hashsets/benchmark"
	"github.com/tuannh982/hashsets/hashset"
	"github.com/tuannh982/hashsets/utils/math"

	log "github.com/sirupsen/logrus"
)

func intHash(v int) uint64 {
	return uint64(v)
}

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	workers := 8
	initialCapacity := 16
	total := 20000
	runBenchmark(benchmark.NewRunner(
		"sequential",
		hashset.NewSequentialSet(initialCapacity, intHash),
		1, benchmark.ChunkFor(total, 1),
	))
	runBenchmark(benchmark.NewRunner(
		"coarse-grained",
		hashset.NewCoarseGrainedSet(initialCapacity, intHash),
		workers, benchmark.ChunkFor(total, workers),
	))
	runBenchmark(benchmark.NewRunner(
		"striped",
		hashset.NewStripedSet(initialCapacity, intHash),
		workers, benchmark.ChunkFor(total, workers),
	))
	runBenchmark(benchmark.NewRunner(
		"refinable",
		hashset.NewRefinableSet(initialCapacity, intHash),
		workers, benchmark.ChunkFor(total, workers),
	))
}

func runBenchmark(r *benchmark.Runner) {
	err := r.Start(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	r.Serve()
	if err := r.Verify(); err != nil {
		log.Fatal(err)
	}
	result := r.Result()
	maxObserved := 0
	for _, m := range result.MaxObservedSizes {
		maxObserved = math.Max(maxObserved, m)
	}
	log.Info("benchmark succeeded",
		" elapsed=", result.Elapsed,
		" finalSize=", result.FinalSize,
		" maxObservedSize=", maxObserved)
}
