// splinegen samples Catmull-Rom splines through the anchors of a scene file,
// optionally spreading the work across simulated frames.
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "splinegen",
		Short: "splinegen - sample Catmull-Rom splines",
		Long: `splinegen evaluates Catmull-Rom splines through the anchors of a YAML scene
and prints the sample points, either at once or spread across frames with a
time budget per frame.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupTracing(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug tracing")
	root.AddCommand(newSampleCmd())
	root.AddCommand(newLengthCmd())
	return root
}

func setupTracing(verbose bool) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	level := tracing.LevelError
	if verbose {
		level = tracing.LevelDebug
	}
	tracing.Select("crspline").SetTraceLevel(level)
}
