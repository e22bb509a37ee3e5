package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	nsWord         = "wordprocessingml"
	nsPresentation = "presentationml"
	nsDrawing      = "drawingml"
)

func inNS(n xml.Name, ns string) bool { return strings.Contains(n.Space, ns) }

func zipEntry(zr *zip.ReadCloser, name string) *zip.File {
	for _, f := range zr.File {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

func openEntry(zr *zip.ReadCloser, name string) (io.ReadCloser, error) {
	f := zipEntry(zr, name)
	if f == nil {
		return nil, fmt.Errorf("缺少 %s", name)
	}
	return f.Open()
}

type docxExtractor struct{}

func (docxExtractor) Extract(ctx context.Context, path string) ([]Line, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	rc, err := openEntry(zr, "word/document.xml")
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return docxParagraphs(ctx, rc)
}

// docxParagraphs 只给 w:body 的直接子段落编号；文本框、表格内的段落
// 以及段落属性中声明的制表位都不计入。
func docxParagraphs(ctx context.Context, r io.Reader) ([]Line, error) {
	dec := xml.NewDecoder(r)
	var (
		stack  []xml.Name
		sb     strings.Builder
		lines  []Line
		inPara bool
		nested int
		inText bool
	)
	parent := func() xml.Name {
		if len(stack) == 0 {
			return xml.Name{}
		}
		return stack[len(stack)-1]
	}
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, err
		}
		switch v := tok.(type) {
		case xml.StartElement:
			switch {
			case v.Name.Local == "p" && !inPara && parent().Local == "body":
				inPara = true
				sb.Reset()
			case inPara && v.Name.Local == "p":
				nested++
			case inPara && nested == 0 && parent().Local == "r" && inNS(parent(), nsWord):
				switch v.Name.Local {
				case "t":
					inText = true
				case "tab":
					sb.WriteByte('\t')
				case "br", "cr":
					sb.WriteByte('\n')
				}
			}
			stack = append(stack, v.Name)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch {
			case inPara && v.Name.Local == "p" && nested > 0:
				nested--
			case inPara && v.Name.Local == "p":
				inPara = false
				lines = append(lines, Line{Pos: Ordinal(len(lines) + 1), Text: sb.String()})
			case v.Name.Local == "t":
				inText = false
			}
		case xml.CharData:
			if inPara && inText {
				sb.Write(v)
			}
		}
	}
}

type pptxExtractor struct{}

func (pptxExtractor) Extract(ctx context.Context, path string) ([]Line, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	slides, err := pptxSlideOrder(zr)
	if err != nil {
		return nil, err
	}

	var lines []Line
	for i, name := range slides {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rc, err := openEntry(zr, name)
		if err != nil {
			return nil, err
		}
		texts, err := pptxShapeTexts(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		n := 0
		for _, t := range texts {
			for _, s := range splitLines(t) {
				n++
				lines = append(lines, Line{Pos: SlideLine(i+1, n), Text: s})
			}
		}
	}
	return lines, nil
}

var slideEntryRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// pptxSlideOrder 按演示顺序返回幻灯片部件名。顺序取自 p:sldIdLst，
// 无法解析时按部件编号排序。
func pptxSlideOrder(zr *zip.ReadCloser) ([]string, error) {
	if order, err := pptxSlidesFromPresentation(zr); err == nil && len(order) > 0 {
		return order, nil
	}

	type entry struct {
		n    int
		name string
	}
	var entries []entry
	for _, f := range zr.File {
		m := slideEntryRe.FindStringSubmatch(strings.ToLower(f.Name))
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		entries = append(entries, entry{n: n, name: f.Name})
	}
	if len(entries) == 0 && zipEntry(zr, "ppt/presentation.xml") == nil {
		return nil, errors.New("不是有效的 pptx 文件")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].n < entries[j].n })
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.name)
	}
	return out, nil
}

func pptxSlidesFromPresentation(zr *zip.ReadCloser) ([]string, error) {
	rc, err := openEntry(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}
	var rels struct {
		Items []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	err = xml.NewDecoder(rc).Decode(&rels)
	_ = rc.Close()
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels.Items))
	for _, it := range rels.Items {
		t := it.Target
		if strings.HasPrefix(t, "/") {
			t = strings.TrimPrefix(t, "/")
		} else {
			t = path.Join("ppt", t)
		}
		targets[it.ID] = t
	}

	rc, err = openEntry(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var out []string
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sldId" {
			continue
		}
		for _, a := range se.Attr {
			// r:id 带命名空间；同名的无命名空间 id 是数字编号。
			if a.Name.Local != "id" || a.Name.Space == "" {
				continue
			}
			t, ok := targets[a.Value]
			if !ok || zipEntry(zr, t) == nil {
				return nil, fmt.Errorf("无法解析幻灯片关系 %s", a.Value)
			}
			out = append(out, t)
		}
	}
}

// pptxShapeTexts 按文档顺序返回幻灯片上每个 p:sp（含组合内形状）的文本，
// 段落与 a:br 换行转为 "\n"。
func pptxShapeTexts(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		texts   []string
		sb      strings.Builder
		inShape bool
		inText  bool
		paras   int
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return texts, nil
			}
			return nil, err
		}
		switch v := tok.(type) {
		case xml.StartElement:
			switch {
			case v.Name.Local == "sp" && inNS(v.Name, nsPresentation):
				inShape = true
				paras = 0
				sb.Reset()
			case !inShape || !inNS(v.Name, nsDrawing):
			case v.Name.Local == "p":
				if paras > 0 {
					sb.WriteByte('\n')
				}
				paras++
			case v.Name.Local == "br":
				sb.WriteByte('\n')
			case v.Name.Local == "t":
				inText = true
			}
		case xml.EndElement:
			switch {
			case v.Name.Local == "sp" && inNS(v.Name, nsPresentation):
				inShape = false
				texts = append(texts, sb.String())
			case v.Name.Local == "t":
				inText = false
			}
		case xml.CharData:
			if inShape && inText {
				sb.Write(v)
			}
		}
	}
}
