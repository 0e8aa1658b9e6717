package pageops

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"

	"github.com/lvillar/calcpdf/table"
)

// Stamp is a text printed diagonally across the pages of a PDF, for example
// "DRAFT" or "COPY".
type Stamp struct {
	Text     string      // stamp text
	FontSize float64     // font size in points (default: 60)
	Color    table.Color // text color (default: light gray)
	Opacity  float64     // 0.0 to 1.0 (default: 0.3)
	Angle    float64     // rotation angle in degrees (default: 45)
}

func (s *Stamp) defaults() {
	if s.FontSize == 0 {
		s.FontSize = 60
	}
	if s.Opacity == 0 {
		s.Opacity = 0.3
	}
	if s.Angle == 0 {
		s.Angle = 45
	}
	if s.Color == (table.Color{}) {
		s.Color = table.NewColor(200, 200, 200)
	}
}

// StampFile prints the stamp on all the pages of inputPath and writes the
// result to w. Page numbers are added with "Page %d / %d" when numbered is
// true.
func StampFile(w io.Writer, inputPath string, s Stamp, numbered bool) error {
	if s.Text == "" && !numbered {
		return fmt.Errorf("pageops: empty stamp")
	}
	s.defaults()

	pageCount, err := PageCount(inputPath)
	if err != nil {
		return err
	}

	pdf := newTarget()
	imp := gofpdi.NewImporter()
	for i := 1; i <= pageCount; i++ {
		tplID, pw, ph := importPage(pdf, imp, inputPath, i)
		if pw == 0 || ph == 0 {
			pw, ph = a4Width, a4Height
		}
		orientation := "P"
		if pw > ph {
			orientation = "L"
		}
		pdf.AddPageFormat(orientation, fpdf.SizeType{Wd: pw, Ht: ph})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, pw, ph)

		if s.Text != "" {
			drawStamp(pdf, s, pw, ph)
		}
		if numbered {
			drawPageNumber(pdf, i, pageCount, pw, ph)
		}
	}

	if pdf.Err() {
		return fmt.Errorf("pageops: stamp: %w", pdf.Error())
	}
	return writePDF(pdf, w)
}

// drawStamp renders the stamp text centered on the current page.
func drawStamp(pdf *fpdf.Fpdf, s Stamp, pageW, pageH float64) {
	pdf.SetFont(table.DefaultFontName, table.StyleBold, s.FontSize)
	pdf.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
	pdf.SetAlpha(s.Opacity, "Normal")

	textW := pdf.GetStringWidth(s.Text)
	cx := pageW / 2
	cy := pageH / 2

	pdf.TransformBegin()
	pdf.TransformRotate(s.Angle, cx, cy)
	// approximate vertical centering
	pdf.Text(cx-textW/2, cy+s.FontSize/3, s.Text)
	pdf.TransformEnd()

	pdf.SetAlpha(1.0, "Normal")
}

func drawPageNumber(pdf *fpdf.Fpdf, page, total int, pageW, pageH float64) {
	const margin = 20
	pdf.SetFont(table.DefaultFontName, table.StyleRegular, 8)
	pdf.SetTextColor(0, 0, 0)
	text := fmt.Sprintf("Page %d / %d", page, total)
	pdf.Text(pageW-margin-pdf.GetStringWidth(text), pageH-margin/2, text)
}
