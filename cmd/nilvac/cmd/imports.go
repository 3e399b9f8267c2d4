package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nilva-lang/nilva/internal/bind"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/loader"
)

func newImportsCmd() *cobra.Command {
	var configPath string

	c := &cobra.Command{
		Use:   "imports <file.nva>",
		Short: "List file.nva and every file it transitively imports, in resolution order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}

			d := diag.NewEngine()
			binder := bind.New(d)
			ld := loader.NewResolver(binder, d, opts.StdlibPath, opts.SearchPath)
			if err := ld.LoadRoot(args[0]); err != nil {
				return err
			}

			for _, path := range ld.ResolvedImports {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			if d.HasErrors() {
				d.SortStable()
				fmt.Fprint(cmd.ErrOrStderr(), d.Render())
				return fmt.Errorf("import resolution failed")
			}
			return nil
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "path to nilva.yaml")
	return c
}
