package logging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"kwfind/internal/logging"
	"kwfind/internal/mock"
	"kwfind/internal/search"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}

func TestReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := logging.NewReporter(logging.New(&buf, "debug"))

	r.PhaseStart(search.PhaseText, 2)
	r.FileDone(search.PhaseText, "/tmp/a.txt")
	r.Warn(search.Event{Kind: search.EventExtract, Path: "/tmp/b.pdf", Err: errors.New("bad xref")})
	r.PhaseDone(search.PhaseText, 1)

	out := buf.String()
	assert.Contains(t, out, "phase start")
	assert.Contains(t, out, "files=2")
	assert.Contains(t, out, "path=/tmp/a.txt")
	assert.Contains(t, out, "done=1")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=extract")
	assert.Contains(t, out, `err="bad xref"`)
	assert.Contains(t, out, "hits=1")
}

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("logs hit with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Analyzer{AnalyzeFn: func(context.Context, string, string) string { return "a cat" }}
		a := logging.NewAnalyzer(inner, logging.New(&buf, "debug"))

		assert.Equal(t, "a cat", a.Analyze(context.Background(), "/img/x.png", "cat"))
		out := buf.String()
		assert.Contains(t, out, "analyze")
		assert.Contains(t, out, "path=/img/x.png")
		assert.Contains(t, out, "hit=true")
		assert.Contains(t, out, "duration=")
	})

	t.Run("logs error payload as warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Analyzer{AnalyzeFn: func(context.Context, string, string) string {
			return "[Geminiエラー] /img/x.png: boom"
		}}
		a := logging.NewAnalyzer(inner, logging.New(&buf, "info"))

		a.Analyze(context.Background(), "/img/x.png", "cat")
		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "analyze failed")
		assert.Contains(t, out, "hit=false")
	})
}
