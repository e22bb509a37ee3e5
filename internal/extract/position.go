package extract

import "strconv"

// positionKind 区分行号的两种编码。
type positionKind uint8

const (
	// kindOrdinal 为 1 起始的整数行号（txt/md/json/csv/docx）。
	kindOrdinal positionKind = iota + 1
	// kindLocator 为复合定位串（pdf: p1-l2，xlsx: Sheet1!3，pptx: slide1-l2）。
	kindLocator
)

// Position 是提取行的地址：普通行号，或二维定位格式的复合定位串。零值无效。
type Position struct {
	kind    positionKind
	ordinal int
	locator string
}

func Ordinal(n int) Position { return Position{kind: kindOrdinal, ordinal: n} }

func Locator(s string) Position { return Position{kind: kindLocator, locator: s} }

func PageLine(page, line int) Position {
	return Locator("p" + strconv.Itoa(page) + "-l" + strconv.Itoa(line))
}

func SheetRow(sheet string, row int) Position {
	return Locator(sheet + "!" + strconv.Itoa(row))
}

func SlideLine(slide, line int) Position {
	return Locator("slide" + strconv.Itoa(slide) + "-l" + strconv.Itoa(line))
}

func (p Position) IsZero() bool { return p.kind == 0 }

// Ordinal 在 p 为行号时返回行号。
func (p Position) Ordinal() (int, bool) {
	return p.ordinal, p.kind == kindOrdinal
}

// Locator 在 p 为定位串时返回定位串。
func (p Position) Locator() (string, bool) {
	return p.locator, p.kind == kindLocator
}

func (p Position) String() string {
	switch p.kind {
	case kindOrdinal:
		return strconv.Itoa(p.ordinal)
	case kindLocator:
		return p.locator
	default:
		return ""
	}
}

// MarshalJSON 保持两种编码的原始类型：整数行号输出为 number，定位串输出为 string。
func (p Position) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case kindOrdinal:
		return []byte(strconv.Itoa(p.ordinal)), nil
	case kindLocator:
		return []byte(strconv.Quote(p.locator)), nil
	default:
		return []byte("null"), nil
	}
}
