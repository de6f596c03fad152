package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newExportCmd packages the whole collection into a ZIP archive that can be
// re-imported as a baseline dataset.
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export OUT.zip",
		Short: "Export the collection as a ZIP archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create archive: %w", err)
			}
			defer f.Close()

			if err := s.Export(f); err != nil {
				os.Remove(args[0])
				return err
			}
			fmt.Printf("exported %d routes to %s\n", s.Registry().Len(), args[0])
			return nil
		},
	}
}
