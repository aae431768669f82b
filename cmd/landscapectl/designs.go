package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"landscapevision/internal/imaging"
)

func newDesignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "designs",
		Short: "Manage the saved portfolio",
	}
	cmd.AddCommand(newDesignsListCmd(), newDesignsDeleteCmd(), newDesignsExportCmd())
	return cmd
}

func newDesignsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved designs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			designs := a.svc.Designs.List(context.Background())
			if len(designs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved designs.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSAVED\tITERATIONS\tPROMPT")
			for _, d := range designs {
				saved := time.UnixMilli(d.Timestamp).Format("2006-01-02 15:04")
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", d.ID, saved, len(d.Iterations), d.Prompt)
			}
			return w.Flush()
		},
	}
}

func newDesignsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := context.Background()
			before := len(a.svc.Designs.List(ctx))
			left := a.svc.Designs.Remove(ctx, args[0])
			if len(left) == before {
				return fmt.Errorf("design %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%d left)\n", args[0], len(left))
			return nil
		},
	}
}

func newDesignsExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a saved design's generated image to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			for _, d := range a.svc.Designs.List(context.Background()) {
				if d.ID != args[0] {
					continue
				}
				_, data, err := imaging.ParseDataURI(d.GeneratedImage)
				if err != nil {
					return err
				}
				if out == "" {
					out = fmt.Sprintf("landscape-vision-pro-%d.png", d.Timestamp)
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
				return nil
			}
			return fmt.Errorf("design %s not found", args[0])
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}
