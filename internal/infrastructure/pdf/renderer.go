// Package pdf renders quote documents. Rendering is deterministic:
// the same quote detail always produces byte-identical output, so the
// document dates come from the quote itself rather than the clock.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cotizador/backend/internal/domain/quote"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 15.0
	footerBrand  = "REC-Soluciones"
	watermarkTxt = "REC-Soluciones"

	businessSignature = "Atte. REC-Soluciones S.A.S"
	businessPhone     = "Contacto: 311 222 33 44"
	businessEmail     = "Correo: recsoluciones@gmail.com"
	businessAddress   = "Calle 2 #a - 23"
	closingLine       = "A la espera de una favorable respuesta, agradecemos su interés."
)

// Renderer produces quote PDFs
type Renderer struct{}

// NewRenderer creates a quote PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderQuote renders the full quote document and returns the PDF bytes
func (r *Renderer) RenderQuote(detail *quote.Detail) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Pin metadata dates and sort catalog maps so output is reproducible
	pdf.SetCreationDate(detail.CreatedAt.UTC())
	pdf.SetModificationDate(detail.CreatedAt.UTC())
	pdf.SetCatalogSort(true)
	pdf.SetTitle(tr(fmt.Sprintf("COTIZACIÓN No. %d", detail.Number)), true)
	pdf.SetAuthor(footerBrand, true)

	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	r.drawWatermark(pdf, pageW, pageH)

	// Issue date, right aligned
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, detail.CreatedAt.Format("02/01/2006"), "", 1, "R", false, 0, "")

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, tr(fmt.Sprintf("COTIZACIÓN No. %d", detail.Number)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.drawClientBlock(pdf, tr, detail)
	pdf.Ln(4)

	r.drawItemTable(pdf, tr, detail, contentW)
	pdf.Ln(2)

	r.drawTotals(pdf, tr, detail, contentW)

	if detail.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, tr("Observaciones:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, tr(detail.Notes), "", "L", false)
	}

	r.drawFooter(pdf, tr, detail, pageW, pageH)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawWatermark(pdf *fpdf.Fpdf, pageW, pageH float64) {
	pdf.SetFont("Helvetica", "B", 60)
	pdf.SetTextColor(235, 235, 235)
	pdf.TransformBegin()
	pdf.TransformRotate(45, pageW/2, pageH/2)
	pdf.Text(pageW/2-70, pageH/2, watermarkTxt)
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)
}

func (r *Renderer) drawClientBlock(pdf *fpdf.Fpdf, tr func(string) string, detail *quote.Detail) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("Señores:"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(detail.Client.FullName), "", 1, "L", false, 0, "")
	if detail.Client.Company != "" {
		pdf.CellFormat(0, 5, tr(detail.Client.Company), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, tr("NIT/CC: "+detail.Client.IDNumber), "", 1, "L", false, 0, "")
	if detail.Client.Address != "" {
		line := detail.Client.Address
		if detail.Client.City != "" {
			line += ", " + detail.Client.City
		}
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	if detail.Client.Email != "" {
		pdf.CellFormat(0, 5, tr(detail.Client.Email), "", 1, "L", false, 0, "")
	}
}

func (r *Renderer) drawItemTable(pdf *fpdf.Fpdf, tr func(string) string, detail *quote.Detail, contentW float64) {
	// Column widths sum to the content width
	colW := []float64{10, 45, 55, 15, 15, 20, contentW - 160}
	headers := []string{"#", "Producto", "Descripción", "Cant.", "IVA %", "Vr. Unit.", "Vr. Total"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, line := range detail.Lines {
		name := truncate(line.ProductName, 28)
		desc := truncate(line.Description, 35)
		pdf.CellFormat(colW[0], 6, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 6, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 6, tr(desc), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 6, strconv.Itoa(line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[4], 6, strconv.Itoa(line.Tax), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[5], 6, FormatCurrency(line.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[6], 6, FormatCurrency(line.LineTotal()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

func (r *Renderer) drawTotals(pdf *fpdf.Fpdf, tr func(string) string, detail *quote.Detail, contentW float64) {
	labelW := contentW - 40
	rows := []struct {
		label string
		value string
		bold  bool
	}{
		{"SUBTOTAL", FormatCurrency(detail.Subtotal()), false},
		{"IVA", FormatCurrency(detail.TaxTotal()), false},
		{"TOTAL", FormatCurrency(detail.Total), true},
	}
	for _, row := range rows {
		style := ""
		if row.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, 6, tr(row.label), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, row.value, "", 1, "R", false, 0, "")
	}
}

func (r *Renderer) drawFooter(pdf *fpdf.Fpdf, tr func(string) string, detail *quote.Detail, pageW, pageH float64) {
	contentW := pageW - 2*pageMargin
	pdf.SetY(pageH - 48)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr(businessSignature), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, tr(businessPhone), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, tr(businessEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, tr(businessAddress), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, tr("Quien realizó: "+detail.CreatedBy), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, tr(closingLine), "", 1, "C", false, 0, "")
}

// truncate shortens s to at most max characters, counting runes so
// multi-byte text is never cut mid-character
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
