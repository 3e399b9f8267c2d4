package cmd

import (
	"fmt"
	"io"

	"github.com/nilva-lang/nilva/internal/config"
	"github.com/nilva-lang/nilva/internal/pipeline"
)

// loadOptions resolves pipeline.Options from an optional nilva.yaml
// config file path (empty means "use defaults plus environment").
func loadOptions(configPath string) (pipeline.Options, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		StdlibPath:    cfg.StdlibPath,
		SearchPath:    cfg.SearchPath,
		WarningBudget: cfg.WarningBudget,
	}, nil
}

// printStats writes a per-phase diagnostic count table, for `--stats`.
func printStats(w io.Writer, res *pipeline.Result) {
	counts := res.Diag.CountsByPhase()
	fmt.Fprintln(w, "--- diagnostics by phase ---")
	for phase, n := range counts {
		fmt.Fprintf(w, "%-16s %d\n", phase, n)
	}
}
