// Package pageops attaches existing PDF documents to generated reports and
// merges PDF files.
//
// Pages are imported as templates with the gofpdi contrib package and drawn
// at their original size on new pages.
package pageops

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
	pdfreader "github.com/phpdave11/gofpdi"
)

const mediaBox = "/MediaBox"

// A4 size in points, used when an imported page has no media box.
const (
	a4Width  = 595.28
	a4Height = 841.89
)

var errNoInput = errors.New("pageops: no input files provided")

// target is the document pages are imported into.
type target interface {
	AddPageFormat(orientationStr string, size fpdf.SizeType)
	GetConversionRatio() float64
	ImportObjects(objs map[string][]byte)
	ImportObjPos(objPos map[string]map[int]string)
	ImportTemplates(tpls map[string]string)
	UseImportedTemplate(tplName string, scaleX float64, scaleY float64, tX float64, tY float64)
	Error() error
	SetError(err error)
}

// PageCount returns the number of pages of a PDF file.
func PageCount(path string) (n int, err error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("pageops: %w", err)
	}
	if _, err := pdfreader.NewPdfReader(path); err != nil {
		return 0, fmt.Errorf("pageops: reading %s: %w", path, err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pageops: reading %s: %v", path, r)
		}
	}()
	imp := pdfreader.NewImporter()
	imp.SetSourceFile(path)
	return imp.GetNumPages(), nil
}

// importFile imports all pages of inputPath into pdf and returns the number
// of pages added.
func importFile(pdf target, inputPath string) (added int, err error) {
	pageCount, err := PageCount(inputPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pageops: importing %s: %v", inputPath, r)
		}
	}()

	imp := gofpdi.NewImporter()
	k := pdf.GetConversionRatio()
	for i := 1; i <= pageCount; i++ {
		tplID, w, h := importPage(pdf, imp, inputPath, i)
		if w == 0 || h == 0 {
			w, h = a4Width, a4Height
		}
		// sizes are in points
		w, h = w/k, h/k
		orientation := "P"
		if w > h {
			orientation = "L"
		}
		pdf.AddPageFormat(orientation, fpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, w, h)
		added++
	}
	return added, pdf.Error()
}

// importPage imports a single page from a source file into the target PDF.
// Returns the template ID and page dimensions in points.
func importPage(pdf target, imp *gofpdi.Importer, sourceFile string, pageNum int) (tplID int, w, h float64) {
	tplID = imp.ImportPage(pdf, sourceFile, pageNum, mediaBox)
	sizes := imp.GetPageSizes()
	if dims, ok := sizes[pageNum]; ok {
		if mb, ok := dims[mediaBox]; ok {
			w = mb["w"]
			h = mb["h"]
		}
	}
	return
}

// newTarget returns an empty document in points.
func newTarget() *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// writePDFToFile writes the PDF to a file.
func writePDFToFile(pdf *fpdf.Fpdf, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("pageops: creating %s: %w", filename, err)
	}
	if err := writePDF(pdf, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writePDF writes the PDF to a writer.
func writePDF(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pageops: %w", err)
	}
	return nil
}
