// Command instrumentor is the command-line front end for the single
// in-scope operation of spec.md §4.6/§6 "File boundary": read one source
// file, instrument it, write one derived file beside it. Everything else
// the teacher's own CLI did (building, running, linking a runtime) is out
// of scope here — see DESIGN.md.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolkov/instrumentor/internal/driver"
	"github.com/kolkov/instrumentor/internal/transform"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "instrumentor",
		Short: "source-to-source dynamic-analysis instrumenter",
	}
	root.AddCommand(newInstrumentCmd())
	return root
}

func newInstrumentCmd() *cobra.Command {
	var (
		runtimeGlobal string
		marker        string
		tool          string
		force         bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "instrument <file> [file...]",
		Short: "insert hook calls into one or more source files",
		Long: `instrument reads each given file, walks its parsed AST, and
writes a derived file named "<stem>__<tool>__.<ext>" beside it containing
the same program rewritten to call out to the analysis runtime at every
read, write, call, function boundary, and control-flow decision point.

A file already carrying the no-instrument marker is passed through
unchanged except for the preamble.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := driver.Options{
				Force: force,
				Transform: transform.Options{
					RuntimeGlobal: runtimeGlobal,
					Marker:        marker,
					Tool:          tool,
				},
			}
			for _, path := range args {
				res, err := driver.Run(path, opts)
				if err != nil {
					return err
				}
				if res.Skipped {
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (no-instrument marker, passed through)\n", res.InputPath, res.OutputPath)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d sites)\n", res.InputPath, res.OutputPath, res.Stats.Total())
				if verbose {
					printStats(cmd.OutOrStdout(), res.Stats)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runtimeGlobal, "runtime-global", "", "global analysis-runtime identifier (default \"J$\")")
	cmd.Flags().StringVar(&marker, "marker", "", "no-instrument marker string (default \"NO_INSTRUMENT\")")
	cmd.Flags().StringVar(&tool, "tool", "", "tool name recorded in the INSTRUMENTED BY comment (default \"instrumentor\")")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing differently-sized output file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print per-category instrumentation counts")

	return cmd
}

func printStats(w io.Writer, s transform.Stats) {
	fmt.Fprintf(w, "  literals:     %d\n", s.Literals)
	fmt.Fprintf(w, "  reads:        %d\n", s.Reads)
	fmt.Fprintf(w, "  writes:       %d\n", s.Writes)
	fmt.Fprintf(w, "  declares:     %d\n", s.Declares)
	fmt.Fprintf(w, "  binary ops:   %d\n", s.BinaryOps)
	fmt.Fprintf(w, "  unary ops:    %d\n", s.UnaryOps)
	fmt.Fprintf(w, "  update ops:   %d\n", s.UpdateOps)
	fmt.Fprintf(w, "  conditions:   %d\n", s.Conditions)
	fmt.Fprintf(w, "  calls:        %d\n", s.Calls)
	fmt.Fprintf(w, "  method calls: %d\n", s.MethodCalls)
	fmt.Fprintf(w, "  functions:    %d\n", s.Functions)
	fmt.Fprintf(w, "  returns:      %d\n", s.Returns)
	fmt.Fprintf(w, "  throws:       %d\n", s.Throws)
	fmt.Fprintf(w, "  get fields:   %d\n", s.GetFields)
	fmt.Fprintf(w, "  put fields:   %d\n", s.PutFields)
	fmt.Fprintf(w, "  deletes:      %d\n", s.Deletes)
	fmt.Fprintf(w, "  for-in/of:    %d\n", s.ForInOf)
	fmt.Fprintf(w, "  switch cases: %d\n", s.SwitchCases)
}
