// Command complexity-analysis compares baseline and BVH-accelerated
// intersection timings, writes a two-panel complexity figure and prints the
// fitted slopes, Big-O labels and speedup.
//
// Input lines hold "<n> <baseline seconds> <accelerated seconds>".
// With no flags it reads benchmark_data.txt and writes
// complexity_analysis_complete.png.
package main

import (
	"os"

	"github.com/bvhlab/complexity/internal/cli"
	"github.com/bvhlab/complexity/internal/config"
)

func main() {
	cmd := cli.NewCommand(config.PipelineComparison,
		"complexity-analysis",
		"Fit and compare the growth order of baseline and BVH intersection timings",
	)
	os.Exit(cli.Execute(cmd))
}
