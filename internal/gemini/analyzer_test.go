package gemini_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"kwfind/internal/gemini"
)

type fakeGenerator struct {
	fn func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (g *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.fn(ctx, model, contents, config)
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: s}}},
		}},
	}
}

func writeImage(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestAnalyzer_SendsImageAndPrompt(t *testing.T) {
	t.Parallel()

	p := writeImage(t, "photo.jpg", []byte("jpeg-bytes"))
	gen := &fakeGenerator{fn: func(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		assert.Equal(t, gemini.DefaultModel, model)
		require.Len(t, contents, 1)
		require.Len(t, contents[0].Parts, 2)
		img := contents[0].Parts[0].InlineData
		require.NotNil(t, img)
		assert.Equal(t, "image/jpeg", img.MIMEType)
		assert.Equal(t, []byte("jpeg-bytes"), img.Data)
		assert.Contains(t, contents[0].Parts[1].Text, "『cat』")
		return textResponse("画像の左上にcatがあります"), nil
	}}

	got := gemini.NewAnalyzerWithGenerator(gen, "").Analyze(context.Background(), p, "cat")
	assert.Equal(t, "画像の左上にcatがあります", got)
}

func TestAnalyzer_ConvertsGIFToPNG(t *testing.T) {
	t.Parallel()

	img := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))
	p := writeImage(t, "anim.gif", buf.Bytes())

	gen := &fakeGenerator{fn: func(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		blob := contents[0].Parts[0].InlineData
		assert.Equal(t, "image/png", blob.MIMEType)
		assert.True(t, bytes.HasPrefix(blob.Data, []byte("\x89PNG")))
		return textResponse("含まない"), nil
	}}

	assert.Equal(t, "含まない", gemini.NewAnalyzerWithGenerator(gen, "m").Analyze(context.Background(), p, "x"))
}

func TestAnalyzer_ErrorsBecomeText(t *testing.T) {
	t.Parallel()

	p := writeImage(t, "photo.png", []byte("png"))
	failing := &fakeGenerator{fn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("quota exceeded")
	}}

	got := gemini.NewAnalyzerWithGenerator(failing, "").Analyze(context.Background(), p, "cat")
	assert.True(t, strings.HasPrefix(got, "[Geminiエラー] "+p))
	assert.Contains(t, got, "quota exceeded")

	empty := &fakeGenerator{fn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	}}
	got = gemini.NewAnalyzerWithGenerator(empty, "").Analyze(context.Background(), p, "cat")
	assert.True(t, strings.HasPrefix(got, "[Geminiエラー]"))
}

func TestAnalyzer_UnreadableFile(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{fn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		t.Error("generator should not be called")
		return nil, nil
	}}
	missing := filepath.Join(t.TempDir(), "gone.png")
	got := gemini.NewAnalyzerWithGenerator(gen, "").Analyze(context.Background(), missing, "cat")
	assert.Equal(t, gemini.ErrorText(missing, mustStatErr(missing)), got)

	bmp := writeImage(t, "scan.bmp", []byte("BM"))
	got = gemini.NewAnalyzerWithGenerator(gen, "").Analyze(context.Background(), bmp, "cat")
	assert.Contains(t, got, ".bmp")
}

func mustStatErr(p string) error {
	_, err := os.Stat(p)
	return err
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	p := gemini.BuildPrompt("請求書")
	assert.Contains(t, p, "『請求書』")
	assert.Contains(t, p, "含まない")
}
