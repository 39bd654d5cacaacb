package infra

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/thiagofdruzian/ERP/internal/model"
)

const quotesSheet = "Cotacoes"

var quoteColumns = []struct {
	header string
	width  float64
}{
	{"ID", 38},
	{"Versão", 8},
	{"Status", 14},
	{"Produto", 32},
	{"Categoria", 20},
	{"Fornecedor", 26},
	{"Responsável", 16},
	{"Custo efetivo", 14},
	{"Preço de venda", 14},
	{"Margem %", 10},
	{"Atualizado em", 18},
}

// GenerateQuotesXLSX writes one row per quote head into a single-sheet
// workbook, money columns as numbers so the sheet stays summable.
func GenerateQuotesXLSX(quotes []model.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quotesSheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    cellBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	rowStyle, err := f.NewStyle(&excelize.Style{Border: cellBorders()})
	if err != nil {
		return nil, fmt.Errorf("xlsx: row style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{Border: cellBorders(), CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: money style: %w", err)
	}

	for i, col := range quoteColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(quotesSheet, cell, col.header)
		_ = f.SetColWidth(quotesSheet, name, name, col.width)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(quoteColumns))
	_ = f.SetCellStyle(quotesSheet, "A1", lastCol+"1", headerStyle)

	for i, q := range quotes {
		row := i + 2
		res := q.Result.Data()
		values := []interface{}{
			q.ID.String(),
			q.Version,
			q.Status,
			q.ProductName,
			q.CategoryName,
			q.SupplierName,
			q.OwnerUser,
			res.EffectiveCost.InexactFloat64(),
			res.SalePrice.InexactFloat64(),
			res.MarginPct.InexactFloat64(),
			q.UpdatedAt.UTC().Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = f.SetCellValue(quotesSheet, cell, v)
		}
		_ = f.SetCellStyle(quotesSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), rowStyle)
		_ = f.SetCellStyle(quotesSheet, fmt.Sprintf("H%d", row), fmt.Sprintf("J%d", row), moneyStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

func cellBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#BFBFBF", Style: 1},
		{Type: "top", Color: "#BFBFBF", Style: 1},
		{Type: "right", Color: "#BFBFBF", Style: 1},
		{Type: "bottom", Color: "#BFBFBF", Style: 1},
	}
}
