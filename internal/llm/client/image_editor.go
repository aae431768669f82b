package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"landscapevision/internal/imaging"
)

var (
	ErrNoContent = errors.New("no content generated")
	ErrNoImage   = errors.New("no image data found")
)

// ContentGenerator is the slice of the genai Models API the editor needs.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImageSource is either a freshly selected file (Data + MIMEType) or an
// image produced earlier and carried as a data URI.
type ImageSource struct {
	Data     []byte
	MIMEType string
	DataURI  string
}

func FileSource(data []byte, mimeType string) ImageSource {
	return ImageSource{Data: data, MIMEType: mimeType}
}

func DataURISource(uri string) ImageSource {
	return ImageSource{DataURI: uri}
}

func (s ImageSource) part() (*genai.Part, error) {
	if len(s.Data) > 0 {
		if s.MIMEType == "" {
			return nil, fmt.Errorf("file MIME type is required")
		}
		return genai.NewPartFromBytes(s.Data, s.MIMEType), nil
	}
	mimeType, data, err := imaging.ParseDataURI(s.DataURI)
	if err != nil {
		return nil, err
	}
	return genai.NewPartFromBytes(data, mimeType), nil
}

type ImageEditorOptions struct {
	Model string
}

// ImageEditor turns a (photo, instruction) pair into an edited photo with a
// single GenerateContent round trip.
type ImageEditor struct {
	models ContentGenerator
	model  string
}

func NewImageEditor(models ContentGenerator, opts ImageEditorOptions) *ImageEditor {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.5-flash-image"
	}
	return &ImageEditor{models: models, model: model}
}

// NewGeminiImageEditor builds an editor backed by the Gemini API.
func NewGeminiImageEditor(ctx context.Context, apiKey string, opts ImageEditorOptions) (*ImageEditor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return nil, err
	}
	return NewImageEditor(c.Models, opts), nil
}

func (e *ImageEditor) Model() string {
	return e.model
}

// Edit asks the model to apply instruction to src and returns the first
// inline image of the response as a PNG data URI.
func (e *ImageEditor) Edit(ctx context.Context, src ImageSource, instruction string) (string, error) {
	imagePart, err := src.part()
	if err != nil {
		return "", err
	}
	prompt, err := EditPrompt(instruction)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{imagePart, genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	resp, err := e.models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		log.Printf("Gemini generation error: %v", err)
		return "", fmt.Errorf("generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoContent
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return "data:image/png;base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
		}
	}
	return "", ErrNoImage
}
