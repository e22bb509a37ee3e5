package logging

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"kwfind/internal/search"
)

// 编译期确认 Analyzer 实现 search.Analyzer。
var _ search.Analyzer = (*Analyzer)(nil)

// Analyzer 为 search.Analyzer 的每次调用记录日志。
type Analyzer struct {
	next   search.Analyzer
	logger *slog.Logger
}

func NewAnalyzer(next search.Analyzer, logger *slog.Logger) *Analyzer {
	return &Analyzer{next: next, logger: logger}
}

// Analyze 委托给内层分析器，记录耗时与是否命中；错误文本按 warn 记录。
func (a *Analyzer) Analyze(ctx context.Context, path string, keyword string) string {
	begin := time.Now()
	out := a.next.Analyze(ctx, path, keyword)
	attrs := []any{
		"path", path,
		"bytes", len(out),
		"hit", strings.Contains(out, keyword),
		"duration", time.Since(begin),
	}
	if strings.HasPrefix(out, "[Geminiエラー]") {
		a.logger.Warn("analyze failed", append(attrs, "err", out)...)
		return out
	}
	a.logger.Debug("analyze", attrs...)
	return out
}
