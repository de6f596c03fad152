package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/montaraz/rutas/internal/registry"
	"github.com/montaraz/rutas/pkg/types"
)

// newShowCmd prints one route's metadata, and on request its geometry
// document, exercising the on-demand fetch path.
func newShowCmd() *cobra.Command {
	var withGeometry bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one route's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			r, ok := s.Registry().Get(args[0])
			if !ok {
				return types.ErrRouteNotFound
			}

			var geom *types.FeatureCollection
			if withGeometry {
				geom, err = s.Geometry(r.ID)
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				}
			}

			if flags.jsonMode {
				out := struct {
					Route    types.Route              `json:"route"`
					Color    string                   `json:"line_color"`
					Geometry *types.FeatureCollection `json:"geometry,omitempty"`
				}{r, registry.RouteLineColor, geom}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Printf("id:        %s\n", r.ID)
			fmt.Printf("name:      %s\n", r.Name)
			fmt.Printf("folder:    %s\n", r.Folder)
			fmt.Printf("with:      %s\n", r.WithWhom)
			fmt.Printf("distance:  %.3f km\n", r.DistanceKm)
			fmt.Printf("ascent:    %.1f m\n", r.AscentM)
			if r.StartTime != nil {
				fmt.Printf("start:     %s\n", *r.StartTime)
			}
			fmt.Printf("bbox:      [%g, %g, %g, %g]\n", r.BBox[0], r.BBox[1], r.BBox[2], r.BBox[3])
			fmt.Printf("color:     %s\n", registry.RouteLineColor)
			if geom != nil {
				fmt.Printf("geometry:  %d points\n", len(geom.LineCoordinates()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withGeometry, "geometry", false, "fetch and summarize the geometry document")
	return cmd
}
