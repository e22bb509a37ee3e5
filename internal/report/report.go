// Package report 把搜索结果写成表格：每个匹配行一行，每个图片命中一行。
package report

import (
	"encoding/json"
	"io"

	"kwfind/internal/extract"
	"kwfind/internal/search"
)

// Header 为报告的列顺序。
var Header = []string{"種別", "ファイル名", "パス", "行番号", "内容/解析結果"}

// Row 是一行输出；图片行的 Pos 为零值。
type Row struct {
	Kind    search.Kind      `json:"type"`
	File    string           `json:"file"`
	Path    string           `json:"path"`
	Pos     extract.Position `json:"position"`
	Content string           `json:"content"`
}

// Rows 按结果顺序展开 res。
func Rows(res *search.Result) []Row {
	if res == nil {
		return nil
	}
	var rows []Row
	for _, it := range res.Items {
		switch it.Kind {
		case search.KindText:
			for _, m := range it.Matches {
				rows = append(rows, Row{Kind: it.Kind, File: it.File.Name, Path: it.File.Path, Pos: m.Pos, Content: m.Text})
			}
		case search.KindImage:
			rows = append(rows, Row{Kind: it.Kind, File: it.File.Name, Path: it.File.Path, Content: it.Analysis})
		}
	}
	return rows
}

// WriteJSONL 每行写一个 JSON 对象。
func WriteJSONL(w io.Writer, res *search.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range Rows(res) {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
