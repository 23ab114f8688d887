package laporan

import (
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Laporan"

func RenderExcel(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	_ = f.SetCellValue(sheetName, "A1", r.Title)
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	_ = f.SetCellValue(sheetName, "A2", r.Periode)

	const headerRow = 4
	for i, h := range r.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for ri, row := range r.Rows {
		for ci, v := range row {
			cell, _ := excelize.CoordinatesToCellName(ci+1, headerRow+1+ri)
			if d, ok := v.(decimal.Decimal); ok {
				_ = f.SetCellValue(sheetName, cell, d.InexactFloat64())
				_ = f.SetCellStyle(sheetName, cell, cell, moneyStyle)
				continue
			}
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	footerRow := headerRow + len(r.Rows) + 2
	for i, line := range r.Footer {
		cell, _ := excelize.CoordinatesToCellName(1, footerRow+i)
		_ = f.SetCellValue(sheetName, cell, line)
	}

	if len(r.Headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(r.Headers))
		_ = f.SetColWidth(sheetName, "A", "A", 6)
		if last != "A" {
			_ = f.SetColWidth(sheetName, "B", last, 18)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
