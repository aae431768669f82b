package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage provider API keys in the OS keyring",
	}

	set := &cobra.Command{
		Use:       "set <provider> <api-key>",
		Short:     "Store the API key for gemini, openai or anthropic",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"gemini", "openai", "anthropic"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.keys.StoreApiKey(args[0], args[1]); err != nil {
				return fmt.Errorf("storing key: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for %s\n", args[0])
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <provider>",
		Short: "Remove a stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.keys.DeleteApiKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for %s\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List providers with a stored key",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			keys, err := a.keys.ListApiKeys()
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored keys.")
				return nil
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k["provider"])
			}
			return nil
		},
	}

	cmd.AddCommand(set, del, list)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in style presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			for _, p := range a.svc.Presets.ListPresets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", p.ID, p.Title)
			}
			return nil
		},
	}
}
