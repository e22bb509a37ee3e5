package extract

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxExtractor struct{}

// Extract 逐个工作表逐行读取。使用范围内的空行同样推进行号，
// 因此 {sheet}!{row} 与表格软件中显示的行号一致。
func (xlsxExtractor) Extract(ctx context.Context, path string) ([]Line, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []Line
	for _, sheet := range f.GetSheetList() {
		rows, err := f.Rows(sheet)
		if err != nil {
			return nil, err
		}
		row := 0
		for rows.Next() {
			if ctx.Err() != nil {
				_ = rows.Close()
				return nil, ctx.Err()
			}
			row++
			cols, err := rows.Columns()
			if err != nil {
				_ = rows.Close()
				return nil, err
			}
			lines = append(lines, Line{Pos: SheetRow(sheet, row), Text: strings.Join(cols, "\t")})
		}
		if err := rows.Error(); err != nil {
			_ = rows.Close()
			return nil, err
		}
		_ = rows.Close()
	}
	return lines, nil
}
