package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var errInvalidJSON = errors.New("JSON 解析失败")

// jsonExtractor 的行号基于重新缩进后的文档，而不是磁盘上的原文件；
// 键顺序与数字字面量保持原样。
type jsonExtractor struct {
	limit int64
}

func (x jsonExtractor) Extract(ctx context.Context, path string) ([]Line, error) {
	text, err := readTextFile(ctx, path, x.limit)
	if err != nil {
		return nil, err
	}
	src := bytes.TrimSpace([]byte(text))
	if !json.Valid(src) {
		return nil, fmt.Errorf("%w: %s", errInvalidJSON, path)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, src, "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return ordinalLines(splitLines(buf.String())), nil
}
