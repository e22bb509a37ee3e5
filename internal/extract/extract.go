package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrUnsupported 表示扩展名不在分派表内。
	ErrUnsupported = errors.New("不支持的文件格式")
	// ErrTooLarge 表示文件超过读取上限。
	ErrTooLarge = errors.New("文件过大，超过读取上限")
)

// Extractor 把一个文件转换为有序、可定位的行。
// 实现须在返回前打开、读完并关闭文件。
type Extractor interface {
	Extract(ctx context.Context, path string) ([]Line, error)
}

// Limits 限制单个文件的读取上限。
type Limits struct {
	MaxTextBytes int64
	MaxPDFBytes  int64
}

const defaultMaxBytes = 20 * 1024 * 1024

func (l Limits) maxText() int64 {
	if l.MaxTextBytes > 0 {
		return l.MaxTextBytes
	}
	return defaultMaxBytes
}

func (l Limits) maxPDF() int64 {
	if l.MaxPDFBytes > 0 {
		return l.MaxPDFBytes
	}
	return defaultMaxBytes
}

// Dispatcher 把小写扩展名映射到唯一的解析器。
type Dispatcher struct {
	table map[string]Extractor
}

func NewDispatcher(limits Limits) *Dispatcher {
	text := textExtractor{limit: limits.maxText()}
	return &Dispatcher{table: map[string]Extractor{
		".txt":  text,
		".md":   text,
		".json": jsonExtractor{limit: limits.maxText()},
		".csv":  csvExtractor{limit: limits.maxText()},
		".pdf":  pdfExtractor{limit: limits.maxPDF()},
		".xlsx": xlsxExtractor{},
		".docx": docxExtractor{},
		".pptx": pptxExtractor{},
	}}
}

// Supported 判断 ext（带点，大小写不限）是否有对应解析器。
func (d *Dispatcher) Supported(ext string) bool {
	_, ok := d.table[strings.ToLower(ext)]
	return ok
}

// Extensions 返回排序后的分派表扩展名。
func (d *Dispatcher) Extensions() []string {
	out := make([]string, 0, len(d.table))
	for ext := range d.table {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Lines 调用 path 扩展名对应的解析器。
func (d *Dispatcher) Lines(ctx context.Context, path string) ([]Line, error) {
	ext := strings.ToLower(filepath.Ext(path))
	x, ok := d.table[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return x.Extract(ctx, path)
}

// Dispatch 解析 path 并返回匹配 keyword 的行；出错时匹配列表为空。
func (d *Dispatcher) Dispatch(ctx context.Context, path string, keyword string) ([]Match, error) {
	lines, err := d.Lines(ctx, path)
	if err != nil {
		return nil, err
	}
	return Filter(lines, Normalize(keyword)), nil
}
