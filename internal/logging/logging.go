// Package logging 提供基于 slog 的 search 接口实现与运行日志。
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New 返回写入 w 的文本日志，级别为 debug、info、warn 或 error，未知名称按 info 处理。
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
