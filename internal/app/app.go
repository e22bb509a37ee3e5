// Package app 把配置、搜索引擎与报告输出组装为 kwfind 命令。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"google.golang.org/genai"

	"kwfind/internal/config"
	"kwfind/internal/extract"
	"kwfind/internal/gemini"
	"kwfind/internal/logging"
	"kwfind/internal/reveal"
	"kwfind/internal/search"
	"kwfind/internal/validation"
)

// Main 表示整个程序。
type Main struct {
	// Analyzer 非空时替代 Gemini 分析器（测试用）。
	Analyzer search.Analyzer

	// Open 在指定 --open 时以报告路径调用。
	Open func(path string) error
}

// NewMain 返回带默认值的 Main。
func NewMain() *Main {
	return &Main{Open: reveal.Open}
}

// Run 按参数执行一次搜索，缺失的输入从 stdin 询问。
// --jsonl 时 stdout 只输出结果行，面向用户的文字改写到 stderr。
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kwfind"),
		kong.Description("ディレクトリ配下のファイルからキーワードを検索し、結果をExcelに出力します。"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("创建命令行解析器失败: %w", err)
	}
	if isHelp(args) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	apiKey, err := cfg.APIKey()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: .env か環境変数に GEMINI_API_KEY を設定してください")
		return err
	}

	ui := stdout
	if cli.JSONL {
		ui = stderr
	}

	cli.fill(newPrompter(stdin, ui))
	v, err := validation.New()
	if err != nil {
		return err
	}
	if err := v.Validate(validation.Input{Dir: cli.Dir, Keyword: cli.Keyword}); err != nil {
		return err
	}

	level := cfg.LogLevel()
	if cli.LogLevel != "" {
		level = cli.LogLevel
	}
	runID := uuid.NewString()
	logger := logging.New(stderr, level).With(slog.String("run_id", runID))

	printBanner(ui, cli.Dir, cli.Keyword)

	analyzer, err := m.analyzer(ctx, apiKey, cfg.Model())
	if err != nil {
		return err
	}
	logger.Info("analyzer ready", slog.String("model", cfg.Model()))

	dispatcher := extract.NewDispatcher(extract.Limits{
		MaxTextBytes: cfg.MaxTextBytes(),
		MaxPDFBytes:  cfg.MaxPDFBytes(),
	})
	logger.Info("text formats", slog.Any("extensions", dispatcher.Extensions()))
	engine := search.New(
		dispatcher,
		logging.NewAnalyzer(analyzer, logger),
		logging.NewReporter(logger),
	)

	workers := cfg.Workers()
	if cli.Workers > 0 {
		workers = cli.Workers
	}
	root, err := filepath.Abs(cli.Dir)
	if err != nil {
		root = cli.Dir
	}
	res, err := engine.Search(ctx, search.Config{
		Root:           root,
		Keyword:        cli.Keyword,
		RunID:          runID,
		Workers:        workers,
		ImageWorkers:   cfg.ImageWorkers(),
		AnalyzeTimeout: cfg.AnalyzeTimeout(),
	})
	if err != nil {
		return err
	}

	printSummary(ui, res)

	output := cfg.Output()
	if cli.Output != "" {
		output = cli.Output
	}
	written, err := writeReport(res, cli.JSONL, output, stdout, ui)
	if err != nil {
		return err
	}
	logger.Info("run finished",
		slog.String("root", res.Root),
		slog.String("keyword", res.Keyword),
		slog.Int("hits", res.Hits()),
		slog.Duration("elapsed", res.Elapsed),
	)

	if cli.Open && written != "" && m.Open != nil {
		if err := m.Open(written); err != nil {
			logger.Warn("open report failed", slog.String("path", written), slog.Any("error", err))
		}
	}
	return nil
}

func (m *Main) analyzer(ctx context.Context, apiKey, model string) (search.Analyzer, error) {
	if m.Analyzer != nil {
		return m.Analyzer, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("连接 Gemini API 失败: %w", err)
	}
	return gemini.NewAnalyzer(client, model), nil
}
