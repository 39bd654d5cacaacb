package infra

// pdf.go: quote sheet rendering using go-pdf/fpdf.
// A4 portrait page with:
//   - Identity block (product, category, supplier, owner, status, version)
//   - Purchase breakdown (base price, each tax, credits, effective cost)
//   - Sale breakdown (tax load, base price, markup, final price)
//   - Bold margin and net profit summary
//
// The PDF is rendered in memory and streamed by the handler.

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/thiagofdruzian/ERP/internal/model"
)

// GenerateQuotePDF renders one quote version as a printable sheet.
func GenerateQuotePDF(q *model.Quote) ([]byte, error) {
	purchase := q.Purchase.Data()
	sale := q.Sale.Data()
	res := q.Result.Data()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30
	labelW := contentW * 0.6
	valueW := contentW * 0.4

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Cotação de Preço"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("%s  ·  v%d  ·  %s", q.ID, q.Version, q.UpdatedAt.Format("02/01/2006 15:04"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Identity ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range [][2]string{
		{"Produto", q.ProductName},
		{"Categoria", q.CategoryName},
		{"Fornecedor", q.SupplierName},
		{"Responsável", q.OwnerUser},
		{"Status", q.Status},
	} {
		pdf.CellFormat(35, 6, tr(row[0]+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW-35, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(contentW, 7, tr(title), "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	line := func(label string, value string) {
		pdf.CellFormat(labelW, 6, tr(label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "B", 1, "R", false, 0, "")
	}

	// ── Purchase ─────────────────────────────────────────────────────────────
	section("Compra")
	line("Preço base", money(purchase.BasePrice))
	line(fmt.Sprintf("IPI (%s%%)", purchase.IPIRatePct.StringFixed(2)), money(res.IPIValue))
	line(fmt.Sprintf("ST (%s%%)", purchase.STRatePct.StringFixed(2)), money(res.STValue))
	line(fmt.Sprintf("ICMS (%s%%)", purchase.ICMSRatePct.StringFixed(2)), money(res.ICMSPurchaseValue))
	line(fmt.Sprintf("PIS (%s%%)", purchase.PISRatePct.StringFixed(2)), money(res.PISPurchaseValue))
	line(fmt.Sprintf("COFINS (%s%%)", purchase.COFINSRatePct.StringFixed(2)), money(res.COFINSPurchaseValue))
	line("Total de impostos", money(res.PurchaseTaxesTotal))
	line("Créditos", "-"+money(res.PurchaseCreditsTotal))
	pdf.SetFont("Helvetica", "B", 10)
	line("Custo efetivo", money(res.EffectiveCost))
	pdf.Ln(3)

	// ── Sale ─────────────────────────────────────────────────────────────────
	section("Venda")
	line("Carga tributária de venda", res.SalesTaxRatePct.StringFixed(2)+"%")
	line("Preço base de venda", money(res.SalePriceBase))
	if sale.ApplyMarkup {
		line(fmt.Sprintf("Markup (%s%%)", res.MarkupRatePct.StringFixed(2)), money(res.MarkupValue))
	}
	line("Impostos sobre venda", money(res.SaleTaxesValue))
	line("Receita líquida", money(res.NetRevenue))
	pdf.SetFont("Helvetica", "B", 12)
	line("Preço de venda", money(res.SalePrice))
	pdf.Ln(3)

	// ── Summary ──────────────────────────────────────────────────────────────
	section("Resultado")
	line("Lucro líquido", money(res.NetProfit))
	line("Margem", res.MarginPct.StringFixed(2)+"%")

	if q.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, tr(q.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
