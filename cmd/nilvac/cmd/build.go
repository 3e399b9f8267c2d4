package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nilva-lang/nilva/internal/codegen/textir"
	"github.com/nilva-lang/nilva/internal/pipeline"
)

func newBuildCmd() *cobra.Command {
	var configPath string
	var stats bool
	var outPath string

	c := &cobra.Command{
		Use:   "build <file.nva>",
		Short: "Compile a Nilva source file through the textir backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}

			res := pipeline.Compile(args[0], opts)
			res.Diag.SortStable()
			fmt.Fprint(cmd.ErrOrStderr(), res.Diag.Render())
			fmt.Fprintln(cmd.ErrOrStderr())

			if stats {
				printStats(cmd.ErrOrStderr(), res)
			}

			if res.Module == nil {
				return fmt.Errorf("compilation failed")
			}

			backend := textir.New()
			out, err := backend.Generate(res.Module)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(outPath, out, 0o644)
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "path to nilva.yaml")
	c.Flags().BoolVar(&stats, "stats", false, "print per-phase diagnostic counts")
	c.Flags().StringVarP(&outPath, "output", "o", "", "write generated output to this path instead of stdout")
	return c
}
