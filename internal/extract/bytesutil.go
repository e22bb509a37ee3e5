package extract

import (
	"errors"
	"io"
	"os"
	"strings"
)

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, errors.New("limit 必须 > 0")
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, ErrTooLarge
	}
	return b, nil
}

func readFileLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readAllLimit(f, limit)
}

// splitLines 按 \n、\r\n、\r 切分；末尾换行不产生空行。
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

func ordinalLines(parts []string) []Line {
	lines := make([]Line, 0, len(parts))
	for i, p := range parts {
		lines = append(lines, Line{Pos: Ordinal(i + 1), Text: p})
	}
	return lines
}
