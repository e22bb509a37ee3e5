package extract

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

type pdfExtractor struct {
	limit int64
}

func pdfOpen(path string) (*os.File, *pdf.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return f, r, nil
}

// Extract 把每页拆成行，定位为 p{page}-l{line}。
// ledongthuc/pdf 遇到部分损坏的流会 panic，这里转为错误返回。
func (x pdfExtractor) Extract(ctx context.Context, path string) (lines []Line, err error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	// 纯 Go 解析在大文件上可能产生巨量内存/CPU，超过上限直接跳过。
	if st, serr := os.Stat(path); serr == nil && st.Size() > x.limit {
		return nil, ErrTooLarge
	}

	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("PDF 解析异常: %v", r)
		}
	}()

	f, r, err := pdfOpen(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= pages; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; ok {
				continue
			}
			fnt := p.Font(name)
			fonts[name] = &fnt
		}
		texts, err := pageLines(p, fonts)
		if err != nil {
			return nil, fmt.Errorf("第 %d 页: %w", i, err)
		}
		for j, s := range texts {
			lines = append(lines, Line{Pos: PageLine(i, j+1), Text: s})
		}
	}
	return lines, nil
}

// 同一行内字形基线 Y 的允许偏差（单位：pt）。
const baselineTolerance = 1.0

// pageLines 按字形基线分行：Y 坐标变化即开始新行（Td/TD/Tm/T* 换行都会改变 Y）。
// 内容流无法按字形解析时退回 GetPlainText，它只在 T* 处换行。
func pageLines(p pdf.Page, fonts map[string]*pdf.Font) ([]string, error) {
	if lines, ok := contentLines(p); ok {
		return lines, nil
	}
	text, err := p.GetPlainText(fonts)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

func contentLines(p pdf.Page) (lines []string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			lines, ok = nil, false
		}
	}()
	texts := p.Content().Text
	if len(texts) == 0 {
		return nil, false
	}

	var (
		rows []string
		sb   strings.Builder
		y    = texts[0].Y
	)
	for _, t := range texts {
		if math.Abs(t.Y-y) > baselineTolerance {
			rows = append(rows, sb.String())
			sb.Reset()
			y = t.Y
		}
		sb.WriteString(t.S)
	}
	rows = append(rows, sb.String())
	return splitLines(strings.Join(rows, "\n")), true
}
