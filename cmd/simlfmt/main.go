// Command simlfmt round-trips a SIML document through pkg/parser and
// pkg/emit, byte-exact modulo a final trailing newline, except that a
// header-only "-" item followed by a nested mapping is written back in
// the "- key: value" form (both spellings yield the same events). It is the
// property-test oracle for spec.md §8 property 5, exposed as a CLI
// tool in its own right for reformatting to canonical indentation.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vorschreibung/siml/internal/cliutil"
	"github.com/Vorschreibung/siml/pkg/emit"
)

func main() {
	var output string

	rootCmd := &cobra.Command{
		Use:           "simlfmt FILE",
		Short:         "Reconstruct SIML source from its parsed event stream",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], output)
		},
	}
	rootCmd.Flags().StringVarP(&output, "output", "o", "-", "output file, or - for stdout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(path, output string) error {
	p, closer, err := cliutil.NewParser(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer closer.Close()

	out := os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	e := emit.New(w, emit.DefaultOptions())
	if err := e.Emit(p.Next); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return w.Flush()
}
