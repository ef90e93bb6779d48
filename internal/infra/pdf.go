package infra

// pdf.go — settlement summary PDF using go-pdf/fpdf.
// A5 landscape one-pager: restaurant header, settlement date, closed-order
// count, total tips, total sales. Rendered from the figures the POS API
// returned — nothing is recomputed locally.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
)

// GenerateCierrePDF writes the day-close summary to
// storagePath/cierre_{fecha}.pdf and returns the absolute path.
func GenerateCierrePDF(cierre *model.Cierre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s.pdf", cierre.Fecha.Format("2006-01-02"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Celeste Restaurant", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Cierre del Dia", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	// ── Figures ──────────────────────────────────────────────────────────────
	labelW := contentW * 0.55
	valueW := contentW * 0.45

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(labelW, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(valueW, 8, value, "", 1, "R", false, 0, "")
	}

	row("Fecha:", cierre.Fecha.Format("02/01/2006"), false)
	row("Pedidos cerrados:", fmt.Sprintf("%d", cierre.PedidosCerrados), false)
	row("Total propinas:", "$"+cierre.TotalPropinas.StringFixed(2), false)

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(labelW, 9, "TOTAL VENTAS:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 9, "$"+cierre.TotalVentas.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Generado por el panel de administracion", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
