package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newFolderCmd groups the folder management subcommands.
func newFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create a folder (may stay empty of routes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.CreateFolder(args[0]); err != nil {
				return err
			}
			fmt.Printf("created folder %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a folder; its routes move to the unlabeled folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteFolder(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted folder %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			hues := s.Registry().FolderHues()
			for _, f := range s.Registry().Folders() {
				fmt.Printf("%-30s hue %d\n", f, hues[f])
			}
			return nil
		},
	})

	return cmd
}
