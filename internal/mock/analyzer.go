package mock

import (
	"context"

	"kwfind/internal/search"
)

var _ search.Analyzer = (*Analyzer)(nil)

// Analyzer 是 search.Analyzer 的 mock 实现。
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, path, keyword string) string
}

func (a *Analyzer) Analyze(ctx context.Context, path, keyword string) string {
	return a.AnalyzeFn(ctx, path, keyword)
}
