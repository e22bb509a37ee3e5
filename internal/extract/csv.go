package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

type csvExtractor struct {
	limit int64
}

// Extract 记录号从 1 开始。encoding/csv 会跳过空行，这里按相邻记录的行号差
// 补回，使空行仍计为空记录。
func (x csvExtractor) Extract(ctx context.Context, path string) ([]Line, error) {
	text, err := readTextFile(ctx, path, x.limit)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var (
		lines   []Line
		idx     int
		prevEnd int
	)
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		start, _ := r.FieldPos(0)
		if gap := start - prevEnd - 1; gap > 0 {
			idx += gap
		}
		idx++
		last := len(rec) - 1
		endLine, _ := r.FieldPos(last)
		prevEnd = endLine + strings.Count(rec[last], "\n")

		lines = append(lines, Line{Pos: Ordinal(idx), Text: strings.Join(rec, ",")})
	}
	return lines, nil
}
