package mock

import (
	"sync"

	"kwfind/internal/search"
)

var _ search.Reporter = (*Reporter)(nil)

// Reporter 是 search.Reporter 的并发安全 mock，记录每次调用；WarnFn 可选。
type Reporter struct {
	WarnFn func(ev search.Event)

	mu     sync.Mutex
	events []search.Event
	done   map[search.Phase]int
	hits   map[search.Phase]int
}

func (r *Reporter) PhaseStart(search.Phase, int) {}

func (r *Reporter) FileDone(phase search.Phase, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done == nil {
		r.done = make(map[search.Phase]int)
	}
	r.done[phase]++
}

func (r *Reporter) PhaseDone(phase search.Phase, hits int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hits == nil {
		r.hits = make(map[search.Phase]int)
	}
	r.hits[phase] = hits
}

func (r *Reporter) Warn(ev search.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	if r.WarnFn != nil {
		r.WarnFn(ev)
	}
}

// Events 返回已记录告警的副本。
func (r *Reporter) Events() []search.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]search.Event(nil), r.events...)
}

// Done 返回该阶段已完成的文件数。
func (r *Reporter) Done(phase search.Phase) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done[phase]
}

// Hits 返回阶段结束时上报的命中数。
func (r *Reporter) Hits(phase search.Phase) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[phase]
}
