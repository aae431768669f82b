package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"regexp"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidDataURI = errors.New("invalid image data format")
	ErrEmptySelection = errors.New("crop selection is empty")
)

var dataURIPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// ParseDataURI splits a base64 data URI into its MIME type and decoded bytes.
func ParseDataURI(uri string) (string, []byte, error) {
	match := dataURIPattern.FindStringSubmatch(uri)
	if len(match) != 3 {
		return "", nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return match[1], data, nil
}

// EncodeDataURI builds a base64 data URI for data.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI decodes an image carried in a data URI.
func DecodeDataURI(uri string) (image.Image, error) {
	_, data, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodePNGDataURI renders img losslessly as a PNG data URI.
func EncodePNGDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return EncodeDataURI("image/png", buf.Bytes()), nil
}
