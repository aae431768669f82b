package client

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"landscapevision/internal/imaging"
)

type fakeGenerator struct {
	gotModel    string
	gotContents []*genai.Content
	resp        *genai.GenerateContentResponse
	err         error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotContents = contents
	return f.resp, f.err
}

func responseWith(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestImageEditor_Edit_ReturnsFirstInlineImage(t *testing.T) {
	gen := &fakeGenerator{resp: responseWith(
		genai.NewPartFromText("here you go"),
		genai.NewPartFromBytes([]byte("first"), "image/png"),
		genai.NewPartFromBytes([]byte("second"), "image/png"),
	)}
	editor := NewImageEditor(gen, ImageEditorOptions{})

	out, err := editor.Edit(context.Background(), FileSource([]byte("jpegbytes"), "image/jpeg"), "add a stone patio")
	require.NoError(t, err)
	assert.Equal(t, imaging.EncodeDataURI("image/png", []byte("first")), out)
	assert.Equal(t, "gemini-2.5-flash-image", gen.gotModel)

	require.Len(t, gen.gotContents, 1)
	parts := gen.gotContents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "image/jpeg", parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte("jpegbytes"), parts[0].InlineData.Data)
	assert.Contains(t, parts[1].Text, `USER INSTRUCTION: "add a stone patio"`)
}

func TestImageEditor_Edit_DataURISource(t *testing.T) {
	gen := &fakeGenerator{resp: responseWith(genai.NewPartFromBytes([]byte("out"), "image/png"))}
	editor := NewImageEditor(gen, ImageEditorOptions{Model: "custom-model"})

	_, err := editor.Edit(context.Background(), DataURISource(imaging.EncodeDataURI("image/webp", []byte("prev"))), "remove the shed")
	require.NoError(t, err)
	assert.Equal(t, "custom-model", gen.gotModel)
	assert.Equal(t, "image/webp", gen.gotContents[0].Parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte("prev"), gen.gotContents[0].Parts[0].InlineData.Data)
}

func TestImageEditor_Edit_InvalidDataURI(t *testing.T) {
	gen := &fakeGenerator{}
	editor := NewImageEditor(gen, ImageEditorOptions{})

	_, err := editor.Edit(context.Background(), DataURISource("https://example.com/a.png"), "x")
	assert.ErrorIs(t, err, imaging.ErrInvalidDataURI)
	assert.Nil(t, gen.gotContents)
}

func TestImageEditor_Edit_NoImagePart(t *testing.T) {
	editor := NewImageEditor(&fakeGenerator{resp: responseWith(genai.NewPartFromText("sorry"))}, ImageEditorOptions{})
	_, err := editor.Edit(context.Background(), FileSource([]byte("x"), "image/png"), "x")
	assert.ErrorIs(t, err, ErrNoImage)

	editor = NewImageEditor(&fakeGenerator{resp: &genai.GenerateContentResponse{}}, ImageEditorOptions{})
	_, err = editor.Edit(context.Background(), FileSource([]byte("x"), "image/png"), "x")
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestImageEditor_Edit_TransportError(t *testing.T) {
	boom := errors.New("quota exceeded")
	editor := NewImageEditor(&fakeGenerator{err: boom}, ImageEditorOptions{})
	_, err := editor.Edit(context.Background(), FileSource([]byte("x"), "image/png"), "x")
	assert.ErrorIs(t, err, boom)
}

func TestEditPrompt_QuotesInstruction(t *testing.T) {
	p, err := EditPrompt("make the pond smaller")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "ACT AS A PROFESSIONAL PHOTO EDITOR"))
	assert.Contains(t, p, `"make the pond smaller"`)
}

type fakeChatModel struct {
	answer string
	err    error
	got    []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.got = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.answer, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestSuggester_Suggest_ParsesFencedJSON(t *testing.T) {
	chat := &fakeChatModel{answer: "```json\n" + `[
		{"category":"Plants","item":"Hakonechloa","description":"Soft movement."},
		{"category":"Lighting","item":"","description":"dropped"},
		{"category":"Water","item":"Bubble fountain","description":"Gentle sound."},
		{"category":"Hardscape","item":"Yorkstone","description":"Classic."},
		{"category":"Structures","item":"Arbor","description":"Extra."}
	]` + "\n```"}

	out, err := NewSuggester(chat).Suggest(context.Background(), "add a patio")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Hakonechloa", out[0].Item)
	assert.Equal(t, "Bubble fountain", out[1].Item)
	assert.Equal(t, "Yorkstone", out[2].Item)

	require.Len(t, chat.got, 2)
	assert.Equal(t, schema.System, chat.got[0].Role)
	assert.Contains(t, chat.got[1].Content, "add a patio")
}

func TestSuggester_Suggest_Errors(t *testing.T) {
	_, err := NewSuggester(&fakeChatModel{answer: "I recommend lavender."}).Suggest(context.Background(), "x")
	assert.Error(t, err)

	_, err = NewSuggester(&fakeChatModel{err: errors.New("down")}).Suggest(context.Background(), "x")
	assert.Error(t, err)

	var nilSuggester *Suggester
	_, err = nilSuggester.Suggest(context.Background(), "x")
	assert.Error(t, err)
}

func TestNewProviderSuggester_RejectsUnknownProvider(t *testing.T) {
	_, err := NewProviderSuggester(context.Background(), "key", SuggesterOptions{Provider: "mistral"})
	assert.EqualError(t, err, "unsupported provider: mistral")

	_, err = NewProviderSuggester(context.Background(), "", SuggesterOptions{Provider: "gemini"})
	assert.Error(t, err)
}
