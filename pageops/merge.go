package pageops

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/calcpdf"
)

// MergeFiles combines multiple PDF files into a single output file.
// Pages are added in order: all pages from the first file, then all from the second, etc.
func MergeFiles(outputPath string, inputPaths ...string) error {
	pdf, err := merge(inputPaths)
	if err != nil {
		return err
	}
	return writePDFToFile(pdf, outputPath)
}

// Merge combines multiple PDF files and writes the result to w.
func Merge(w io.Writer, inputPaths ...string) error {
	pdf, err := merge(inputPaths)
	if err != nil {
		return err
	}
	return writePDF(pdf, w)
}

func merge(inputPaths []string) (*fpdf.Fpdf, error) {
	if len(inputPaths) == 0 {
		return nil, errNoInput
	}
	pdf := newTarget()
	for _, inputPath := range inputPaths {
		if _, err := importFile(pdf, inputPath); err != nil {
			return nil, fmt.Errorf("pageops: merging %s: %w", inputPath, err)
		}
	}
	return pdf, nil
}

// AppendFile adds the pages of a PDF file at the end of a report document,
// without the report header and footer. It returns the number of pages
// added.
func AppendFile(doc *calcpdf.Document, inputPath string) (int, error) {
	doc.SetDecorated(false)
	defer doc.SetDecorated(true)
	n, err := importFile(doc, inputPath)
	if err != nil {
		return n, fmt.Errorf("pageops: appending %s: %w", inputPath, err)
	}
	return n, nil
}
