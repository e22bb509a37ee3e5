package extract

import "strings"

// Line 是 Extractor 产出的一个可定位文本单元。
type Line struct {
	Pos  Position
	Text string
}

// Match 是规范化后包含关键字的行，Text 为去掉首尾空白的原始行。
type Match struct {
	Pos  Position `json:"position"`
	Text string   `json:"text"`
}

// Filter 保留规范化后包含 normKeyword 的行；normKeyword 须已规范化。
func Filter(lines []Line, normKeyword string) []Match {
	var out []Match
	for _, l := range lines {
		if strings.Contains(Normalize(l.Text), normKeyword) {
			out = append(out, Match{Pos: l.Pos, Text: strings.TrimSpace(l.Text)})
		}
	}
	return out
}
