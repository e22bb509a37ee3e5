package logging

import (
	"log/slog"
	"sync/atomic"

	"kwfind/internal/search"
)

// 编译期确认 Reporter 实现 search.Reporter。
var _ search.Reporter = (*Reporter)(nil)

// Reporter 记录搜索进度：阶段为 info，每个完成的文件带计数为 debug，可恢复事件为 warn。
type Reporter struct {
	logger *slog.Logger
	total  [3]atomic.Int64
	done   [3]atomic.Int64
}

func NewReporter(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

func phaseIndex(p search.Phase) int {
	switch p {
	case search.PhaseText:
		return 1
	case search.PhaseImage:
		return 2
	default:
		return 0
	}
}

func (r *Reporter) PhaseStart(phase search.Phase, total int) {
	i := phaseIndex(phase)
	r.total[i].Store(int64(total))
	r.done[i].Store(0)
	r.logger.Info("phase start", "phase", string(phase), "files", total)
}

func (r *Reporter) FileDone(phase search.Phase, path string) {
	i := phaseIndex(phase)
	n := r.done[i].Add(1)
	r.logger.Debug("file done", "phase", string(phase), "path", path, "done", n, "total", r.total[i].Load())
}

func (r *Reporter) PhaseDone(phase search.Phase, hits int) {
	if phase == search.PhaseWalk {
		r.logger.Info("phase done", "phase", string(phase), "files", hits)
		return
	}
	r.logger.Info("phase done", "phase", string(phase), "hits", hits)
}

func (r *Reporter) Warn(ev search.Event) {
	r.logger.Warn("file skipped", "kind", string(ev.Kind), "path", ev.Path, "err", ev.Err)
}
