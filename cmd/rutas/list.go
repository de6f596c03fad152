package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/montaraz/rutas/internal/registry"
	"github.com/montaraz/rutas/pkg/types"
)

// newListCmd prints the collection grouped by folder, the unlabeled folder
// first, with optional search filter and sort order.
func newListCmd() *cobra.Command {
	var opts registry.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routes grouped by folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			groups := s.Registry().ListByFolder(opts)

			if flags.jsonMode {
				out := struct {
					Groups []registry.FolderGroup `json:"groups"`
					Bounds types.BBox             `json:"bounds"`
				}{groups, s.Registry().Bounds()}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for _, grp := range groups {
				label := grp.Folder
				if label == "" {
					label = "Sin carpeta"
				}
				fmt.Printf("%s (%d rutas)\n", label, len(grp.Routes))
				for _, r := range grp.Routes {
					date := "—"
					if r.StartTime != nil {
						date = *r.StartTime
						if len(date) > 10 {
							date = date[:10]
						}
					}
					fmt.Printf("  %-30s %8.2f km %7.0f m  %s\n",
						r.Name, r.DistanceKm, r.AscentM, date)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "filter by name substring")
	cmd.Flags().StringVar(&opts.SortBy, "sort", registry.SortByDate, "sort key: date, distance, elevation")
	cmd.Flags().BoolVar(&opts.Ascending, "asc", false, "sort ascending instead of descending")
	return cmd
}
