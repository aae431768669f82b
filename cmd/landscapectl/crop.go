package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"landscapevision/internal/imaging"
)

func newCropCmd() *cobra.Command {
	var (
		area    imaging.CropArea
		display imaging.DisplaySize
		out     string
	)
	cmd := &cobra.Command{
		Use:   "crop <image>",
		Short: "Crop an image to a rectangle",
		Long: "Crop an image to a rectangle. Coordinates are in displayed pixels; " +
			"pass --display-width/--display-height to map them from a scaled view, " +
			"otherwise they are taken as image pixels.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			src, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}

			if display.Width <= 0 || display.Height <= 0 {
				display = imaging.DisplaySize{
					Width:  float64(src.Bounds().Dx()),
					Height: float64(src.Bounds().Dy()),
				}
			}
			cropped, err := imaging.Crop(src, display, area)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()
			if err := png.Encode(f, cropped); err != nil {
				return fmt.Errorf("encoding %s: %w", out, err)
			}
			b := cropped.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", out, b.Dx(), b.Dy())
			return nil
		},
	}
	cmd.Flags().Float64Var(&area.X, "x", 0, "Left edge of the selection")
	cmd.Flags().Float64Var(&area.Y, "y", 0, "Top edge of the selection")
	cmd.Flags().Float64Var(&area.Width, "width", 0, "Selection width")
	cmd.Flags().Float64Var(&area.Height, "height", 0, "Selection height")
	cmd.Flags().Float64Var(&display.Width, "display-width", 0, "Width the image was displayed at")
	cmd.Flags().Float64Var(&display.Height, "display-height", 0, "Height the image was displayed at")
	cmd.Flags().StringVarP(&out, "out", "o", "cropped.png", "Output PNG file")
	return cmd
}
