// Command bvh-plot fits and plots a single series of BVH intersection timings.
//
// Input lines hold "<n> <seconds>". With no flags it reads
// benchmark_data_bvh_crt.txt and writes save.png.
package main

import (
	"os"

	"github.com/bvhlab/complexity/internal/cli"
	"github.com/bvhlab/complexity/internal/config"
)

func main() {
	cmd := cli.NewCommand(config.PipelineSingle,
		"bvh-plot",
		"Fit and plot BVH intersection timings against the number of spheres",
	)
	os.Exit(cli.Execute(cmd))
}
