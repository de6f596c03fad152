package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montaraz/rutas/internal/sqlite"
)

// newEditorCmd manages the shared editor credential in the state store.
// This is the bootstrap step before anyone can unlock an edit session.
func newEditorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editor",
		Short: "Manage the shared editor credential",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Set the shared editor passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			pass := editPassphrase()
			if pass == "" {
				return fmt.Errorf("a passphrase is required (--passphrase or RUTAS_PASSPHRASE)")
			}

			store, err := sqlite.Open(cfg.StorePath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SetEditor(cmd.Context(), cfg.Editor, pass); err != nil {
				return err
			}
			fmt.Printf("editor %q configured\n", cfg.Editor)
			return nil
		},
	})

	return cmd
}
