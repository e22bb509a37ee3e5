package search

type Phase string

const (
	PhaseWalk  Phase = "walk"
	PhaseText  Phase = "text"
	PhaseImage Phase = "image"
)

type EventKind string

const (
	// EventWalk: 目录项无法访问（权限、并发删除等）。
	EventWalk EventKind = "walk"
	// EventExtract: 文件损坏或无法解析。
	EventExtract EventKind = "extract"
	// EventUnsupported: 扩展名不在分派表内。
	EventUnsupported EventKind = "unsupported"
)

// Event 是单个文件的可恢复失败：跳过该文件，运行继续。
type Event struct {
	Kind EventKind
	Path string
	Err  error
}

// Reporter 接收进度与可恢复事件。方法会在 worker goroutine 中调用，须并发安全。
type Reporter interface {
	PhaseStart(phase Phase, total int)
	FileDone(phase Phase, path string)
	PhaseDone(phase Phase, hits int)
	Warn(ev Event)
}

// NopReporter 丢弃所有事件。
type NopReporter struct{}

func (NopReporter) PhaseStart(Phase, int) {}
func (NopReporter) FileDone(Phase, string) {}
func (NopReporter) PhaseDone(Phase, int) {}
func (NopReporter) Warn(Event) {}
