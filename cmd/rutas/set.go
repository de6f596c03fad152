package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montaraz/rutas/pkg/types"
)

// newSetCmd edits a route's metadata fields. Only flags that were provided
// end up in the patch; everything else is left untouched.
func newSetCmd() *cobra.Command {
	var (
		name     string
		withWhom string
		folder   string
		distance float64
		ascent   float64
		date     string
	)

	cmd := &cobra.Command{
		Use:   "set ID",
		Short: "Edit a route's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.Registry().Has(args[0]) {
				return types.ErrRouteNotFound
			}

			var patch types.RoutePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("with") {
				patch.WithWhom = &withWhom
			}
			if cmd.Flags().Changed("folder") {
				patch.Folder = &folder
			}
			if cmd.Flags().Changed("distance") {
				patch.DistanceKm = &distance
			}
			if cmd.Flags().Changed("ascent") {
				patch.AscentM = &ascent
			}
			if cmd.Flags().Changed("date") {
				iso := date + "T00:00:00Z"
				patch.StartTime = &iso
			}

			if err := s.UpdateRoute(args[0], patch); err != nil {
				return err
			}
			fmt.Printf("updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "route name")
	cmd.Flags().StringVar(&withWhom, "with", "", "who the route was done with")
	cmd.Flags().StringVar(&folder, "folder", "", "folder label (empty moves to the unlabeled folder)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "distance in kilometers")
	cmd.Flags().Float64Var(&ascent, "ascent", 0, "ascent in meters")
	cmd.Flags().StringVar(&date, "date", "", "start date (YYYY-MM-DD)")
	return cmd
}
