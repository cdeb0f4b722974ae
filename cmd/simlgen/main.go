// Command simlgen walks a SIML document's top-level sequence into
// pkg/transform.Record values and renders them as a small Go source
// file, one var per record. The scalar fields named in numericRanges
// are range checked with pkg/coerce; field-shape problems are reported
// as driver errors, never as simlerr parser errors. Any field name is
// accepted.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vorschreibung/siml/internal/cliutil"
	"github.com/Vorschreibung/siml/pkg/coerce"
	"github.com/Vorschreibung/siml/pkg/transform"
)

// numericRanges names the fields simlgen knows to be numeric and the
// range each must fall within. A field present here but failing to
// parse, or out of range, is a driver error; a field absent here is
// never range-checked even if it looks numeric.
var numericRanges = map[string][2]int64{
	"port":    {1, 65535},
	"retries": {0, 100},
	"timeout": {0, 3600},
}

func main() {
	var stanza string

	rootCmd := &cobra.Command{
		Use:           "simlgen FILE",
		Short:         "Generate a Go record file from a SIML document's top-level sequence",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], stanza)
		},
	}
	rootCmd.Flags().StringVar(&stanza, "stanza", "", "file whose content is written ahead of the generated output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(path, stanzaPath string) error {
	p, closer, err := cliutil.NewParser(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer closer.Close()

	rs, err := transform.NewWalker(p.Next, transform.Options{}).Walk()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := checkNumericFields(rs); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if stanzaPath != "" {
		content, err := os.ReadFile(stanzaPath)
		if err != nil {
			return fmt.Errorf("read stanza %s: %w", stanzaPath, err)
		}
		os.Stdout.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			fmt.Println()
		}
	}

	fmt.Print(render(rs))
	return nil
}

// checkNumericFields range-checks every field named in numericRanges
// that is present on a record, surfacing the first failure.
func checkNumericFields(rs *transform.RecordSet) error {
	for i, rec := range rs.Records {
		for field, rng := range numericRanges {
			v, ok := rec.Fields[field]
			if !ok {
				continue
			}
			if _, err := coerce.Int(field, v, rng[0], rng[1]); err != nil {
				return fmt.Errorf("record %d (line %d): %w", i+1, rec.Line, err)
			}
		}
	}
	return nil
}

func render(rs *transform.RecordSet) string {
	var b strings.Builder
	b.WriteString("package generated\n\n")
	b.WriteString("// Record mirrors one item of the source document's top-level sequence.\n")
	b.WriteString("type Record struct {\n")
	b.WriteString("\tFields      map[string]string\n")
	b.WriteString("\tFlags       []string\n")
	b.WriteString("\tDescription string\n")
	b.WriteString("}\n\n")

	for i, rec := range rs.Records {
		fmt.Fprintf(&b, "var Record%d = Record{\n", i+1)
		b.WriteString("\tFields: map[string]string{\n")
		keys := append([]string(nil), rec.FieldOrder...)
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "\t\t%q: %q,\n", k, rec.Fields[k])
		}
		b.WriteString("\t},\n")
		if len(rec.Flags) > 0 {
			fmt.Fprintf(&b, "\tFlags: []string{%s},\n", quoteJoin(rec.Flags))
		}
		if rec.Description != "" {
			fmt.Fprintf(&b, "\tDescription: %q,\n", rec.Description)
		}
		b.WriteString("}\n\n")
	}
	return b.String()
}

func quoteJoin(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
