package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"kwfind/internal/search"
)

const SheetName = "検索結果"

var colWidths = []struct {
	col   string
	width float64
}{
	{"A", 8}, {"B", 30}, {"C", 60}, {"D", 10}, {"E", 60},
}

// WriteXLSX 把 res 保存到 path；结果为空时仍写出表头行。
func WriteXLSX(path string, res *search.Result) error {
	f, err := buildWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存 %s 失败: %w", path, err)
	}
	return nil
}

func buildWorkbook(res *search.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeRows(f, Rows(res)); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, rows []Row) error {
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		var pos interface{} = ""
		if n, ok := r.Pos.Ordinal(); ok {
			pos = n
		} else if s, ok := r.Pos.Locator(); ok {
			pos = s
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{string(r.Kind), r.File, r.Path, pos, r.Content}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}

	for _, c := range colWidths {
		if err := f.SetColWidth(SheetName, c.col, c.col, c.width); err != nil {
			return err
		}
	}

	if len(rows) == 0 {
		return nil
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(5, len(rows)+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, "E2", last, wrap)
}
