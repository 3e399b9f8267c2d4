package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/nilva-lang/nilva/internal/pipeline"
)

func newCheckCmd() *cobra.Command {
	var configPath string
	var interactive bool

	c := &cobra.Command{
		Use:   "check [file.nva]",
		Short: "Run the pipeline through the AIR builder without generating output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}

			if interactive {
				return runInteractiveCheck(cmd.OutOrStdout(), opts)
			}

			if len(args) != 1 {
				return fmt.Errorf("check requires a file argument unless -i is given")
			}
			return checkOne(cmd.OutOrStdout(), args[0], opts)
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "path to nilva.yaml")
	c.Flags().BoolVarP(&interactive, "interactive", "i", false, "repeatedly prompt for files to check")
	return c
}

func checkOne(out io.Writer, path string, opts pipeline.Options) error {
	res := pipeline.Compile(path, opts)
	res.Diag.SortStable()
	fmt.Fprint(out, res.Diag.Render())
	fmt.Fprintln(out)
	if res.Module == nil {
		return fmt.Errorf("%s: check failed", path)
	}
	return nil
}

// runInteractiveCheck is a small liner-based loop that checks one file
// per input line, reusing the teacher's internal/repl/repl.go pattern
// (liner.NewLiner, history file, multiline mode) for a readline-capable
// prompt instead of reading raw stdin.
func runInteractiveCheck(out io.Writer, opts pipeline.Options) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s\n", bold("nilvac interactive check — enter a file path, or :quit"))

	historyFile := os.TempDir() + "/.nilvac_history"
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	for {
		input, err := line.Prompt("nilvac> ")
		if err == io.EOF {
			fmt.Fprintln(out, "goodbye")
			break
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if input == ":quit" {
			break
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if err := checkOne(out, input, opts); err != nil {
			fmt.Fprintln(out, err)
		}
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
	return nil
}
