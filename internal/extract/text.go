package extract

import (
	"context"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

type textExtractor struct {
	limit int64
}

func (x textExtractor) Extract(ctx context.Context, path string) ([]Line, error) {
	text, err := readTextFile(ctx, path, x.limit)
	if err != nil {
		return nil, err
	}
	return ordinalLines(splitLines(text)), nil
}

func readTextFile(ctx context.Context, path string, limit int64) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	b, err := readFileLimit(path, limit)
	if err != nil {
		return "", err
	}
	return decodeTextBytes(b), nil
}

// decodeTextBytes 按 BOM 识别 UTF-8 / UTF-16，无法解码的字节直接丢弃。
func decodeTextBytes(b []byte) string {
	// UTF-8 BOM
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return strings.ToValidUTF8(string(b[3:]), "")
	}
	// UTF-16 LE/BE BOM
	if len(b) >= 2 && ((b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF)) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		if len(b)%2 != 0 {
			b = b[:len(b)-1]
		}
		if out, err := dec.Bytes(b); err == nil {
			return strings.ToValidUTF8(string(out), "")
		}
	}
	return strings.ToValidUTF8(string(b), "")
}
