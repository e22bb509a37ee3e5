package extract

import (
	"strings"
	"unicode"
)

// Normalize 去掉所有空白字符并转为小写，关键字与每个候选行都用它生成比较键。
func Normalize(s string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, s))
}

// 额外包含 U+001C..U+001F（信息分隔符），与常见正则 \s 的 Unicode 语义保持一致。
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
