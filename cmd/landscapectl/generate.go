package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"landscapevision/internal/models"
	"landscapevision/internal/services"
	"landscapevision/internal/utils"
)

type generateOptions struct {
	prompt string
	preset string
	save   bool
}

// runGeneration loads photo into session and runs one generation with the
// prompt or preset from opts.
func runGeneration(session *services.SessionService, photo string, opts generateOptions) (*models.DownloadResult, error) {
	data, err := os.ReadFile(photo)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", photo, err)
	}
	if _, err := session.SelectImage(filepath.Base(photo), utils.ImageMIMEType(photo), data); err != nil {
		return nil, err
	}

	switch {
	case opts.preset != "":
		if _, err := session.SelectPreset(opts.preset); err != nil {
			return nil, err
		}
	case strings.TrimSpace(opts.prompt) != "":
		session.SetPrompt(opts.prompt)
		session.CommitPrompt()
	default:
		return nil, errors.New("a --prompt or --preset is required")
	}

	view := session.Generate("")
	switch view.AppState {
	case models.AppStateError:
		return nil, errors.New(view.ErrorMessage)
	case models.AppStateSuccess:
	default:
		return nil, errors.New("nothing was generated")
	}

	if opts.save {
		if view := session.ConfirmSave(); view.ErrorMessage != "" {
			return nil, errors.New(view.ErrorMessage)
		}
	}
	return session.Download()
}

func newGenerateCmd() *cobra.Command {
	var (
		opts generateOptions
		out  string
	)
	cmd := &cobra.Command{
		Use:   "generate <photo>",
		Short: "Apply a landscaping edit to one photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := runGeneration(a.newSession(), args[0], opts)
			if err != nil {
				return err
			}
			if out == "" {
				out = res.FileName
			}
			if err := os.WriteFile(out, res.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.prompt, "prompt", "p", "", "Edit instruction")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "Preset id to use instead of --prompt")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Also store the result in the portfolio")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default landscape-vision-pro-<ms>.png)")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		opts     generateOptions
		patterns []string
		outDir   string
	)
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Apply the same edit to every photo under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if !utils.DirectoryExists(root) {
				return fmt.Errorf("%s is not a directory", root)
			}

			var photos []string
			seen := map[string]bool{}
			for _, p := range patterns {
				found, truncated, err := utils.FindImages(root, p)
				if err != nil {
					return err
				}
				if truncated {
					fmt.Fprintf(cmd.ErrOrStderr(), "Pattern %s matched too many files; only the newest were kept\n", p)
				}
				for _, f := range found {
					if !seen[f] {
						seen[f] = true
						photos = append(photos, f)
					}
				}
			}
			if len(photos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No photos found.")
				return nil
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", outDir, err)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			failed := 0
			for _, photo := range photos {
				res, err := runGeneration(a.newSession(), photo, opts)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", photo, err)
					continue
				}
				name := strings.TrimSuffix(filepath.Base(photo), filepath.Ext(photo)) + "-landscaped.png"
				dest := filepath.Join(outDir, name)
				if err := os.WriteFile(dest, res.Data, 0o644); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", photo, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK   %s -> %s\n", photo, dest)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d photos failed", failed, len(photos))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.prompt, "prompt", "p", "", "Edit instruction")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "Preset id to use instead of --prompt")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Also store every result in the portfolio")
	cmd.Flags().StringSliceVar(&patterns, "pattern", []string{"**/*.jpg", "**/*.jpeg", "**/*.png", "**/*.webp"}, "Glob patterns relative to <dir>; ** matches any depth")
	cmd.Flags().StringVar(&outDir, "out-dir", "landscape-vision-out", "Directory for the results")
	return cmd
}
