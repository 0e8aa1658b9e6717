// Package report renders the reports of the calculation application onto a
// calcpdf.Document: a calculation with its totals, and the lists of states,
// products, tasks, global margins and log entries.
package report

import (
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/table"
)

// Report kinds.
const (
	KindCalculation = "calculation"
	KindStates      = "states"
	KindProducts    = "products"
	KindTasks       = "tasks"
	KindLog         = "log"
	KindMargins     = "margins"
)

// Report draws itself onto a document.
type Report interface {
	// Kind returns the registry name of the report.
	Kind() string
	// Title returns the title printed in the page header.
	Title() string
	// Render adds the report pages to doc.
	Render(doc *calcpdf.Document) error
}

// Options configures the reports.
type Options struct {
	// ID selects the calculation of the calculation report.
	ID int
	// Locale formats the numbers, "de-CH" when empty.
	Locale string
	// MinMargin is the overall margin under which a calculation is flagged.
	MinMargin float64
	// QRBaseURL, when set, prints a QR code linking to QRBaseURL + ID.
	QRBaseURL string
	// PDF417 prints a PDF417 code with the calculation summary.
	PDF417 bool
	// DraftStates lists the state codes stamped as draft.
	DraftStates []string
	// LevelColors maps log levels to the color of their marker.
	LevelColors map[string]table.Color
}

// DefaultLocale formats the numbers when Options.Locale is empty.
const DefaultLocale = "de-CH"

// formats are the value formatters shared by the reports.
type formats struct {
	amount  table.AmountFormatter
	percent table.PercentFormatter
	integer table.IntegerFormatter
	date    table.DateFormatter
	yesNo   table.BoolFormatter
}

func newFormats(locale string) formats {
	if locale == "" {
		locale = DefaultLocale
	}
	p := table.NewPrinter(locale)
	return formats{
		amount:  table.AmountFormatter{Printer: p, Decimals: 2},
		percent: table.PercentFormatter{Printer: p, Decimals: 1},
		integer: table.IntegerFormatter{Printer: p},
		date:    table.DateFormatter{Layout: "02.01.2006"},
		yesNo:   table.BoolFormatter{},
	}
}

// begin sets the title and adds the first page.
func begin(doc *calcpdf.Document, title string) {
	doc.SetReportTitle(title)
	doc.AddPage()
}

// finish returns the first error of the builders.
func finish(op string, builders ...interface{ Err() error }) error {
	for _, b := range builders {
		if err := b.Err(); err != nil {
			return calcpdf.WrapError(op, err)
		}
	}
	return nil
}

// Build renders r onto a new document and returns it open, so that pages
// can be appended before output. The document options are applied before
// the report title.
func Build(r Report, opts ...calcpdf.Option) (*calcpdf.Document, error) {
	doc := calcpdf.NewDocument(append(slices.Clip(opts), calcpdf.WithTitle(r.Title()))...)
	if err := r.Render(doc); err != nil {
		return nil, fmt.Errorf("report %s: %w", r.Kind(), err)
	}
	return doc, nil
}

// Generate renders r to a new document and returns its bytes.
func Generate(r Report, logger logrus.FieldLogger, opts ...calcpdf.Option) ([]byte, error) {
	start := time.Now()
	doc, err := Build(r, opts...)
	if err != nil {
		return nil, err
	}
	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", r.Kind(), err)
	}
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"kind":     r.Kind(),
			"pages":    doc.PageNo(),
			"bytes":    len(data),
			"duration": time.Since(start),
		}).Debug("Report rendered.")
	}
	return data, nil
}
