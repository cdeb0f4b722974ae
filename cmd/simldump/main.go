// Command simldump prints one line per event of a SIML document,
// the thinnest possible driver over pkg/parser.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vorschreibung/siml/internal/cliutil"
	"github.com/Vorschreibung/siml/pkg/event"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "simldump FILE",
		Short:         "Print one line per SIML parser event",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0])
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	p, closer, err := cliutil.NewParser(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer closer.Close()

	var sawError bool
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		printEvent(ev)
		if ev.Kind == event.KindError {
			sawError = true
		}
	}

	if sawError {
		return fmt.Errorf("%s: parse failed", path)
	}
	return nil
}

func printEvent(ev event.Event) {
	line := fmt.Sprintf("%d:%s", ev.Line, ev.Kind)
	if ev.Key != "" {
		line += fmt.Sprintf(" key=%s", ev.Key)
	}
	if ev.Kind == event.KindScalar || ev.Kind == event.KindBlockScalarLine {
		line += fmt.Sprintf(" value=%q", ev.Value)
	}
	if ev.Kind == event.KindSequenceStart {
		line += fmt.Sprintf(" style=%s", ev.SeqStyle)
	}
	if ev.Comment != "" || ev.Kind == event.KindComment {
		line += fmt.Sprintf(" comment=%q", ev.Comment)
	}
	if ev.Kind == event.KindError {
		line += fmt.Sprintf(" code=%s message=%q", ev.Err.Code, ev.Err.Message)
	}
	fmt.Println(line)
}
