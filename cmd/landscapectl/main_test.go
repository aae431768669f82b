package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landscapevision/internal/imaging"
	"landscapevision/internal/services"
	"landscapevision/internal/tests/mocks"
)

func setupCLI(t *testing.T) (*mocks.ImageEditorMock, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LANDSCAPE_DB_PATH", filepath.Join(dir, "cli.db"))
	t.Setenv("SUGGESTION_PROVIDER", "")
	t.Setenv("AUTOSAVE_INTERVAL", "")
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(name, "")
	}

	ring := keyring.NewArrayKeyring(nil)
	editor := &mocks.ImageEditorMock{Result: "data:image/png;base64,R0VO"}

	prevKeyring, prevEditor := openKeyring, editorFactory
	openKeyring = func() (keyring.Keyring, error) { return ring, nil }
	editorFactory = func(keys *services.KeyringService, model string) services.EditorFactory {
		return func(ctx context.Context) (services.ImageEditor, error) { return editor, nil }
	}
	t.Cleanup(func() {
		openKeyring, editorFactory = prevKeyring, prevEditor
	})
	return editor, dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestCrop_ImagePixels(t *testing.T) {
	_, dir := setupCLI(t)
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "out.png")
	writePNG(t, src, 40, 20)

	out, err := runCLI(t, "crop", src, "--x", "10", "--y", "5", "--width", "20", "--height", "10", "-o", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "(20x10)")
	w, h := decodeSize(t, dst)
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
}

func TestCrop_ScaledDisplay(t *testing.T) {
	_, dir := setupCLI(t)
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "out.png")
	writePNG(t, src, 40, 20)

	_, err := runCLI(t, "crop", src, "--width", "20", "--height", "10",
		"--display-width", "80", "--display-height", "40", "-o", dst)
	require.NoError(t, err)
	w, h := decodeSize(t, dst)
	assert.Equal(t, 10, w)
	assert.Equal(t, 5, h)
}

func TestCrop_EmptySelection(t *testing.T) {
	_, dir := setupCLI(t)
	src := filepath.Join(dir, "in.png")
	writePNG(t, src, 40, 20)

	_, err := runCLI(t, "crop", src, "-o", filepath.Join(dir, "out.png"))
	assert.ErrorIs(t, err, imaging.ErrEmptySelection)
}

func TestGenerate_SaveListDelete(t *testing.T) {
	editor, dir := setupCLI(t)
	photo := filepath.Join(dir, "garden.png")
	writePNG(t, photo, 8, 8)
	dst := filepath.Join(dir, "result.png")

	out, err := runCLI(t, "generate", photo, "-p", "Add a cedar pergola", "--save", "-o", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+dst)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("GEN"), data)
	require.Equal(t, 1, editor.CallCount())
	assert.Equal(t, "image/png", editor.Calls[0].Source.MIMEType)

	out, err = runCLI(t, "designs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Add a cedar pergola")

	_, err = runCLI(t, "designs", "delete", "does-not-exist")
	assert.Error(t, err)
}

func TestGenerate_RequiresPrompt(t *testing.T) {
	_, dir := setupCLI(t)
	photo := filepath.Join(dir, "garden.png")
	writePNG(t, photo, 8, 8)

	_, err := runCLI(t, "generate", photo, "-o", filepath.Join(dir, "x.png"))
	assert.EqualError(t, err, "a --prompt or --preset is required")
}

func TestGenerate_UsesPreset(t *testing.T) {
	editor, dir := setupCLI(t)
	photo := filepath.Join(dir, "garden.png")
	writePNG(t, photo, 8, 8)

	_, err := runCLI(t, "generate", photo, "--preset", "zen", "-o", filepath.Join(dir, "x.png"))
	require.NoError(t, err)
	require.Equal(t, 1, editor.CallCount())
	assert.NotEmpty(t, editor.Calls[0].Instruction)
}

func TestBatch_ProcessesEveryPhoto(t *testing.T) {
	editor, dir := setupCLI(t)
	photos := filepath.Join(dir, "photos")
	writePNG(t, filepath.Join(photos, "front.png"), 8, 8)
	writePNG(t, filepath.Join(photos, "back", "yard.png"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(photos, "notes.txt"), []byte("x"), 0o644))
	outDir := filepath.Join(dir, "out")

	out, err := runCLI(t, "batch", photos, "-p", "Add a pond", "--out-dir", outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, editor.CallCount())
	assert.FileExists(t, filepath.Join(outDir, "front-landscaped.png"))
	assert.FileExists(t, filepath.Join(outDir, "yard-landscaped.png"))
	assert.NotContains(t, out, "FAIL")
}

func TestKey_SetListDelete(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "key", "set", "openai", "sk-test")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored API key for openai")

	out, err = runCLI(t, "key", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "openai")

	_, err = runCLI(t, "key", "delete", "openai")
	require.NoError(t, err)
	out, err = runCLI(t, "key", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stored keys.")
}
