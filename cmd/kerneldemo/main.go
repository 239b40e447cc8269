// Command kerneldemo wires a Kernel against a synthetic tree node and
// prints the resulting visit allocation, as a smoke test for the config,
// logging, and kernel packages together.
package main

import (
	"flag"
	"fmt"
	"os"

	"puctkernel/config"
	"puctkernel/kernel"
	"puctkernel/logx"
)

// uniformGatherer hands back a uniform prior over numChildren children with
// no prior visits, for a demo run that doesn't need a real tree.
type uniformGatherer struct {
	numChildren int
}

func (g uniformGatherer) Gather(parent *kernel.ParentNode, selector kernel.SelectorID, depth int, maxChildIndex int, scratch *kernel.Scratch) int {
	n := g.numChildren
	if n > maxChildIndex+1 {
		n = maxChildIndex + 1
	}
	uniform := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		scratch.P[i] = uniform
	}
	return n
}

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a kernel config YAML file (optional)")
		numChildren = flag.Int("children", 4, "Number of legal moves to simulate")
		numVisits   = flag.Int("visits", 32, "Number of visits to allocate")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "kerneldemo:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := logx.NewLogger(config.ParseLevel(cfg.Log.Level), "kerneldemo")
	logger.Info().Int("children", *numChildren).Int("visits", *numVisits).Msg("running kernel demo")

	k := kernel.New(cfg.Kernel, kernel.WithGather(uniformGatherer{numChildren: *numChildren}), kernel.WithMetrics())

	parent := &kernel.ParentNode{
		N:                   int64(*numVisits) * 10,
		IsRoot:              true,
		NumPolicyMoves:      *numChildren,
		NumChildrenExpanded: *numChildren,
	}
	scores := make([]float64, *numChildren)
	counts := make([]int16, *numChildren)

	if err := k.ComputeTopChildScores(parent, kernel.SelectorPrimary, 0, 0, 0, *numChildren-1, *numVisits, scores, counts, 1.0, nil, 0); err != nil {
		logger.Fatal().Err(err).Msg("kernel invocation failed")
	}

	for i := 0; i < *numChildren; i++ {
		logger.Info().Int("child", i).Float64("score", scores[i]).Int16("visits", counts[i]).Msg("child result")
	}
}
