package imaging

import (
	"errors"
	"image"

	xdraw "golang.org/x/image/draw"
)

// CropArea is a rectangle in displayed (on-screen) pixels, relative to the
// container the image is rendered in.
type CropArea struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the selection has no area.
func (a CropArea) Empty() bool {
	return a.Width <= 0 || a.Height <= 0
}

// DisplaySize is the size an image is rendered at on screen.
type DisplaySize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SourceRect maps a displayed selection onto the natural pixel grid of an
// image whose bounds are natural.
func SourceRect(natural image.Rectangle, display DisplaySize, area CropArea) (image.Rectangle, error) {
	if area.Empty() {
		return image.Rectangle{}, ErrEmptySelection
	}
	if display.Width <= 0 || display.Height <= 0 {
		return image.Rectangle{}, errors.New("displayed size must be positive")
	}

	scaleX := float64(natural.Dx()) / display.Width
	scaleY := float64(natural.Dy()) / display.Height

	x0 := int(area.X * scaleX)
	y0 := int(area.Y * scaleY)
	w := int(area.Width * scaleX)
	h := int(area.Height * scaleY)

	r := image.Rect(x0, y0, x0+w, y0+h).Add(natural.Min).Intersect(natural)
	if r.Empty() {
		return image.Rectangle{}, ErrEmptySelection
	}
	return r, nil
}

// Crop copies the source pixels under area into a new raster.
func Crop(src image.Image, display DisplaySize, area CropArea) (image.Image, error) {
	r, err := SourceRect(src.Bounds(), display, area)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Copy(dst, image.Point{}, src, r, xdraw.Src, nil)
	return dst, nil
}

// CropDataURI crops the image carried in uri and returns the result as a
// PNG data URI. An empty selection returns ErrEmptySelection.
func CropDataURI(uri string, display DisplaySize, area CropArea) (string, error) {
	if area.Empty() {
		return "", ErrEmptySelection
	}
	src, err := DecodeDataURI(uri)
	if err != nil {
		return "", err
	}
	out, err := Crop(src, display, area)
	if err != nil {
		return "", err
	}
	return EncodePNGDataURI(out)
}
