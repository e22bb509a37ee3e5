// Package gemini 基于 Google Gemini 实现 search.Analyzer。
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"

	"kwfind/internal/search"
)

const DefaultModel = "gemini-2.5-flash"

// Gemini 内联图片上限约 20MB。
const maxImageBytes = 20 * 1024 * 1024

// 编译期确认 Analyzer 实现 search.Analyzer。
var _ search.Analyzer = (*Analyzer)(nil)

// Generator 是分析器用到的 *genai.Models 子集。
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Analyzer 询问 Gemini 图片是否包含关键字，并原样返回模型回答。
type Analyzer struct {
	gen   Generator
	model string
}

// NewAnalyzer 基于 client 创建 Analyzer。
func NewAnalyzer(client *genai.Client, model string) *Analyzer {
	return NewAnalyzerWithGenerator(client.Models, model)
}

func NewAnalyzerWithGenerator(gen Generator, model string) *Analyzer {
	if model == "" {
		model = DefaultModel
	}
	return &Analyzer{gen: gen, model: model}
}

// Analyze 不返回错误：任何失败都转为 "[Geminiエラー]" 文本。
func (a *Analyzer) Analyze(ctx context.Context, path string, keyword string) string {
	data, mime, err := loadImage(path)
	if err != nil {
		return ErrorText(path, err)
	}

	result, err := a.gen.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				genai.NewPartFromBytes(data, mime),
				genai.NewPartFromText(BuildPrompt(keyword)),
			},
		}},
		nil,
	)
	if err != nil {
		return ErrorText(path, err)
	}
	if result == nil {
		return ErrorText(path, errors.New("Gemini 返回空结果"))
	}
	text := result.Text()
	if text == "" {
		return ErrorText(path, errors.New("Gemini 返回空文本"))
	}
	return text
}

// BuildPrompt 让模型说明关键字在图片中的位置，不存在时只回答「含まない」。
func BuildPrompt(keyword string) string {
	return fmt.Sprintf("この画像に『%s』というキーワードが含まれているかどうかをチェックしてください。"+
		"含まれていれば「画像の〇〇箇所にあります」など画像内での該当箇所を説明し、"+
		"含まれていなければ「含まない」とだけ明記してください。", keyword)
}

// ErrorText 是失败时代替分析结果返回的文本。
func ErrorText(path string, err error) string {
	return fmt.Sprintf("[Geminiエラー] %s: %v", path, err)
}

var mimeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// loadImage 读取图片；GIF 不在 Gemini 支持列表中，取首帧转为 PNG。
func loadImage(path string) ([]byte, string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if st.Size() > maxImageBytes {
		return nil, "", fmt.Errorf("图片过大: %d bytes", st.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gif" {
		img, err := gif.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	}
	mime, ok := mimeByExt[ext]
	if !ok {
		return nil, "", fmt.Errorf("不支持的图片格式: %s", ext)
	}
	return data, mime, nil
}
