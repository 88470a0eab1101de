package mirror

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
)

// BuildWorkbook збирає повну таблицю дзеркала: фіксований порядок колонок,
// закріплений рядок заголовка, статуси у відображуваному тексті.
func BuildWorkbook(items []cartridges.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"Id", "DateWithdrawn", "Department", "Status",
		"DateSent", "DateReturned", "DateIssued", "BatchId",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freezing header: %w", err)
	}

	row := 2
	for _, it := range items {
		excelRow := []interface{}{
			it.ID,
			it.DateWithdrawn,
			it.Department,
			it.Status.Title(),
			it.DateSent,
			it.DateReturned,
			it.DateIssued,
			it.BatchID,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("building cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
