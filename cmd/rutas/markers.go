package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newMarkersCmd prints the direction markers sampled along a route's
// simplified geometry.
func newMarkersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markers ID",
		Short: "Show direction markers along a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			markers, err := s.Markers(args[0])
			if err != nil {
				return err
			}

			if flags.jsonMode {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(markers)
			}
			for _, m := range markers {
				fmt.Printf("%9.5f %9.5f  %6.1f°\n", m.Lat, m.Lon, m.BearingDeg)
			}
			return nil
		},
	}
}
