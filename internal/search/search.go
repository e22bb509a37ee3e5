package search

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"kwfind/internal/extract"
)

var ErrEmptyKeyword = errors.New("关键字为空")

// Analyzer 检查图片中是否含有 keyword。它不返回错误：失败时返回一段说明文字，
// 其中不会包含关键字。
type Analyzer interface {
	Analyze(ctx context.Context, path string, keyword string) string
}

type Config struct {
	Root    string
	Keyword string
	RunID   string

	// Workers 为文本类文件的并发解析数（默认 = CPU 核心数）。
	Workers int
	// ImageWorkers 为并发调用图像分析器的数量（默认 2）。
	ImageWorkers int
	// AnalyzeTimeout 为单次图像分析的超时（默认 60s）。
	AnalyzeTimeout time.Duration
}

func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 4
}

func (c Config) ImageWorkerCount() int {
	if c.ImageWorkers > 0 {
		return c.ImageWorkers
	}
	return 2
}

func (c Config) analyzeTimeout() time.Duration {
	if c.AnalyzeTimeout > 0 {
		return c.AnalyzeTimeout
	}
	return 60 * time.Second
}

// Engine 在一个目录树上执行一次关键字搜索。
type Engine struct {
	dispatcher *extract.Dispatcher
	analyzer   Analyzer
	reporter   Reporter
}

// New 返回 Engine。analyzer 为 nil 时跳过图片分支，reporter 为 nil 时丢弃进度。
func New(d *extract.Dispatcher, a Analyzer, r Reporter) *Engine {
	if r == nil {
		r = NopReporter{}
	}
	return &Engine{dispatcher: d, analyzer: a, reporter: r}
}

// Search 分类 cfg.Root 后并发执行文本与图片两个分支。
// 只有根目录无效、关键字为空或 ctx 取消会返回错误，单个文件的失败上报后跳过。
func (e *Engine) Search(ctx context.Context, cfg Config) (*Result, error) {
	begin := time.Now()
	if strings.TrimSpace(cfg.Keyword) == "" {
		return nil, ErrEmptyKeyword
	}

	e.reporter.PhaseStart(PhaseWalk, 0)
	files, err := Classify(cfg.Root, e.dispatcher.Supported, e.reporter)
	if err != nil {
		return nil, err
	}
	e.reporter.PhaseDone(PhaseWalk, files.Total())

	var textItems, imageItems []Item
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		textItems, err = e.searchText(gctx, cfg, files.Text)
		return err
	})
	g.Go(func() error {
		var err error
		imageItems, err = e.searchImages(gctx, cfg, files.Image)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(textItems)+len(imageItems))
	items = append(items, textItems...)
	items = append(items, imageItems...)
	return &Result{
		RunID:      cfg.RunID,
		Root:       cfg.Root,
		Keyword:    cfg.Keyword,
		Items:      items,
		TextFiles:  len(files.Text),
		ImageFiles: len(files.Image),
		OtherFiles: len(files.Other),
		Elapsed:    time.Since(begin),
	}, nil
}

// searchText 每个 worker 把结果写入按发现顺序编号的槽位，汇总时无需排序。
func (e *Engine) searchText(ctx context.Context, cfg Config, files []FileRef) ([]Item, error) {
	if len(files) == 0 {
		return nil, nil
	}
	e.reporter.PhaseStart(PhaseText, len(files))

	slots := make([]*Item, len(files))
	var hits atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.WorkerCount())
	for i, f := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			ms, err := e.dispatcher.Dispatch(gctx, f.Path, cfg.Keyword)
			e.reporter.FileDone(PhaseText, f.Path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				kind := EventExtract
				if errors.Is(err, extract.ErrUnsupported) {
					kind = EventUnsupported
				}
				e.reporter.Warn(Event{Kind: kind, Path: f.Path, Err: err})
				return nil
			}
			if len(ms) > 0 {
				it := textItem(f, ms)
				slots[i] = &it
				hits.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.reporter.PhaseDone(PhaseText, int(hits.Load()))
	return collect(slots), nil
}

func (e *Engine) searchImages(ctx context.Context, cfg Config, files []FileRef) ([]Item, error) {
	if len(files) == 0 || e.analyzer == nil {
		return nil, nil
	}
	e.reporter.PhaseStart(PhaseImage, len(files))

	slots := make([]*Item, len(files))
	var hits atomic.Int64
	timeout := cfg.analyzeTimeout()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.ImageWorkerCount())
	for i, f := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			actx, cancel := context.WithTimeout(gctx, timeout)
			analysis := e.analyzer.Analyze(actx, f.Path, cfg.Keyword)
			cancel()
			e.reporter.FileDone(PhaseImage, f.Path)
			if gctx.Err() != nil {
				return gctx.Err()
			}
			// 分析结果是自然语言，按原始关键字做字面包含判断。
			if strings.Contains(analysis, cfg.Keyword) {
				it := imageItem(f, analysis)
				slots[i] = &it
				hits.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.reporter.PhaseDone(PhaseImage, int(hits.Load()))
	return collect(slots), nil
}

func collect(slots []*Item) []Item {
	var out []Item
	for _, it := range slots {
		if it != nil {
			out = append(out, *it)
		}
	}
	return out
}
