package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/montaraz/rutas/internal/session"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir  string
	dataDir    string
	storePath  string
	passphrase string
	jsonMode   bool
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "rutas",
	Short: "A curated, shared collection of GPS tracks",
	Long: `Rutas manages a shared collection of GPS tracks: importing recorded
tracks, organizing them into folders, and reconciling edits against a
single shared state document so multiple editors converge.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "baseline dataset directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flags.storePath, "store", "", "shared state store file (default: .rutas-db/state.db)")
	rootCmd.PersistentFlags().StringVar(&flags.passphrase, "passphrase", "", "editor passphrase (or RUTAS_PASSPHRASE)")
	rootCmd.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newFolderCmd())
	rootCmd.AddCommand(newMarkersCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newEditorCmd())
}

// editPassphrase returns the passphrase from flag or environment.
func editPassphrase() string {
	if flags.passphrase != "" {
		return flags.passphrase
	}
	return os.Getenv("RUTAS_PASSPHRASE")
}

// openSession loads config, opens the dataset and store, and runs the
// startup reconciliation. With edit set, the session is unlocked with the
// shared passphrase before returning.
func openSession(ctx context.Context, edit bool) (*session.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	s, err := session.OpenDataset(cfg, os.DirFS(cfg.DataDir))
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}

	if edit {
		if err := s.Unlock(ctx, editPassphrase()); err != nil {
			s.Close()
			return nil, fmt.Errorf("unlock edit session: %w", err)
		}
	}
	return s, nil
}
