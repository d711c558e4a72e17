package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/zant/accident-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live.
	// In Docker runtime we copy fonts to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
// Polish diacritics render as garbage without it.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

func (pf *PDFFormatter) Format(report *entity.EWYPReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	pdf.SetFont(fontName, "B", 20)
	pdf.CellFormat(contentWidth, 10, docTitle, "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(contentWidth, 8, docSubtitle, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, it := range layoutReport(report) {
		switch it.kind {
		case sectionItem:
			pdf.SetFont(fontName, "B", 14)
			pdf.MultiCell(contentWidth, 7, it.label, "", "", false)
			pdf.Ln(1)
		case subsectionItem:
			pdf.SetFont(fontName, "B", 12)
			pdf.MultiCell(contentWidth, 6, it.label, "", "", false)
		case fieldItem:
			if it.value == "" {
				continue
			}
			pdf.SetFont(fontName, "B", 10)
			pdf.Write(5, it.label+": ")
			pdf.SetFont(fontName, "", 10)
			pdf.Write(5, it.value)
			pdf.Ln(5)
		case checkboxItem:
			mark := "[ ]"
			if it.checked {
				mark = "[X]"
			}
			pdf.SetFont(fontName, "", 10)
			pdf.MultiCell(contentWidth, 5, mark+" "+it.label, "", "", false)
		case textItem:
			if it.value == "" {
				continue
			}
			pdf.SetFont(fontName, "", 10)
			pdf.MultiCell(contentWidth, 5, it.value, "", "", false)
		case spacerItem:
			pdf.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
