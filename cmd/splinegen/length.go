package main

import (
	"fmt"

	"github.com/npillmayer/crspline/catmull"
	"github.com/spf13/cobra"
)

func newLengthCmd() *cobra.Command {
	var (
		points     int
		resolution int
		closed     bool
	)
	cmd := &cobra.Command{
		Use:   "length",
		Short: "Print the number of samples a spline will have",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resolution <= 0 {
				return fmt.Errorf("%w: got %d", catmull.ErrInvalidResolution, resolution)
			}
			if points < 0 {
				return fmt.Errorf("number of control points must not be negative, got %d", points)
			}
			fmt.Fprintln(cmd.OutOrStdout(), catmull.ComputeLength(points, closed, resolution))
			return nil
		},
	}
	cmd.Flags().IntVarP(&points, "points", "n", 4, "Number of control points")
	cmd.Flags().IntVarP(&resolution, "resolution", "r", 100, "Samples per segment")
	cmd.Flags().BoolVar(&closed, "closed", false, "Closed loop")
	return cmd
}
