package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// newImportCmd ingests one or more GPX files into the collection. A file
// that fails to parse aborts that file only; the rest of the batch
// continues.
func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Import GPX track files into the collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
					failed++
					continue
				}
				route, err := s.ImportTrack(filepath.Base(path), data)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Printf("imported %s: %.3f km, %.1f m ascent\n",
					route.ID, route.DistanceKm, route.AscentM)
			}

			if failed == len(args) {
				return fmt.Errorf("no files imported")
			}
			return nil
		},
	}
}
