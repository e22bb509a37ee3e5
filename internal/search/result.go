package search

import (
	"path/filepath"
	"strings"
	"time"

	"kwfind/internal/extract"
)

// FileRef 标识一个已发现的文件，Ext 为带点的小写扩展名。
type FileRef struct {
	Path string `json:"path"`
	Name string `json:"file"`
	Ext  string `json:"-"`
}

func NewFileRef(path string) FileRef {
	return FileRef{
		Path: path,
		Name: filepath.Base(path),
		Ext:  strings.ToLower(filepath.Ext(path)),
	}
}

// Files 是分类结果，各列表均按发现顺序排列。
type Files struct {
	Text  []FileRef
	Image []FileRef
	Other []FileRef
}

func (f Files) Total() int { return len(f.Text) + len(f.Image) + len(f.Other) }

type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Item 是一条命中。文本项的 Matches 非空；图片项携带分析器输出，其中原样包含关键字。
type Item struct {
	Kind     Kind            `json:"type"`
	File     FileRef         `json:"file"`
	Matches  []extract.Match `json:"matches,omitempty"`
	Analysis string          `json:"analysis,omitempty"`
}

func textItem(f FileRef, ms []extract.Match) Item {
	return Item{Kind: KindText, File: f, Matches: ms}
}

func imageItem(f FileRef, analysis string) Item {
	return Item{Kind: KindImage, File: f, Analysis: analysis}
}

// Result 是一次运行的结果：先是按发现顺序的文本项，再是按发现顺序的图片项。
type Result struct {
	RunID   string
	Root    string
	Keyword string
	Items   []Item

	TextFiles  int
	ImageFiles int
	OtherFiles int
	Elapsed    time.Duration
}

// Hits 是命中项（文件）数，而不是匹配行数。
func (r *Result) Hits() int { return len(r.Items) }
