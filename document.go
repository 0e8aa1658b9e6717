// Package calcpdf generates the PDF reports of the calculation application:
// quotations made of groups, categories and items, and the lists of states,
// products, tasks, margins and log entries.
//
// A Document is the drawing surface shared by all the reports. It wraps an
// fpdf document, prints the company and report title on top of every page
// and the page number and creation date at the bottom. Text is converted
// from UTF-8 to the code page of the core fonts before it is drawn, so that
// a Document can be handed directly to a table.Builder.
package calcpdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/calcpdf/table"
)

const (
	headerFontSize = 10.0
	smallFontSize  = 8.0
	footerOffset   = -12.0
	// pagesAlias is replaced with the total number of pages on output.
	pagesAlias = "{nb}"
)

// Document is a report document. It satisfies table.Surface.
type Document struct {
	*fpdf.Fpdf
	title   string
	company Company
	draft   string
	created time.Time
	tr      func(string) string
	plain   bool
	// undecorated pages get no footer
	undecorated map[int]bool
}

var _ table.Surface = (*Document)(nil)

// NewDocument creates a new report document using functional options.
// If no options are specified, defaults to portrait A4 with millimeter units
// and 10mm margins.
func NewDocument(opts ...Option) *Document {
	cfg := &documentConfig{
		orientation: "portrait",
		unit:        "mm",
		size:        "A4",
		margin:      10,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.created.IsZero() {
		cfg.created = time.Now()
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: cfg.orientation,
		UnitStr:        cfg.unit,
		SizeStr:        cfg.size,
		Size:           cfg.pageSize,
		FontDirStr:     cfg.fontDir,
	})
	d := &Document{
		Fpdf:    pdf,
		company: cfg.company,
		draft:   cfg.draft,
		created: cfg.created,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
	}

	pdf.SetMargins(cfg.margin, cfg.margin, cfg.margin)
	pdf.SetAutoPageBreak(true, cfg.margin+5)
	pdf.SetCreationDate(cfg.created)
	pdf.SetModificationDate(cfg.created)
	// same content and date give the same bytes
	pdf.SetCatalogSort(true)
	pdf.SetCreator("calcpdf", true)
	if cfg.author != "" {
		pdf.SetAuthor(cfg.author, true)
	}
	d.SetReportTitle(cfg.title)
	pdf.AliasNbPages(pagesAlias)
	pdf.SetHeaderFunc(d.header)
	pdf.SetFooterFunc(d.footer)
	pdf.SetFont(table.DefaultFontName, table.StyleRegular, table.DefaultFontSize)
	return d
}

// ReportTitle returns the title printed in the page header.
func (d *Document) ReportTitle() string { return d.title }

// SetReportTitle sets the title printed in the page header of the pages
// added afterwards, and the title metadata.
func (d *Document) SetReportTitle(title string) {
	d.title = title
	if title != "" {
		d.Fpdf.SetTitle(title, true)
	}
}

// Company returns the company printed in the page header.
func (d *Document) Company() Company { return d.company }

// Created returns the creation date printed in the footer.
func (d *Document) Created() time.Time { return d.created }

// Draft returns the stamp printed on every page, if any.
func (d *Document) Draft() string { return d.draft }

// SetDraft sets the stamp printed on the pages added afterwards.
func (d *Document) SetDraft(text string) { d.draft = text }

// SetDecorated turns the header, footer and draft stamp of the pages added
// afterwards on or off. Imported pages are added undecorated.
func (d *Document) SetDecorated(on bool) { d.plain = !on }

// Translate converts UTF-8 text to the code page of the core fonts.
func (d *Document) Translate(s string) string {
	return d.tr(s)
}

// MultiCell prints UTF-8 text wrapped within w.
func (d *Document) MultiCell(w, h float64, txtStr, borderStr, alignStr string, fill bool) {
	d.Fpdf.MultiCell(w, h, d.tr(txtStr), borderStr, alignStr, fill)
}

// CellFormat prints a UTF-8 text cell.
func (d *Document) CellFormat(w, h float64, txtStr, borderStr string, ln int, alignStr string, fill bool, link int, linkStr string) {
	d.Fpdf.CellFormat(w, h, d.tr(txtStr), borderStr, ln, alignStr, fill, link, linkStr)
}

// Cell prints a UTF-8 text cell without border.
func (d *Document) Cell(w, h float64, txtStr string) {
	d.Fpdf.Cell(w, h, d.tr(txtStr))
}

// Text prints UTF-8 text at the given position.
func (d *Document) Text(x, y float64, txtStr string) {
	d.Fpdf.Text(x, y, d.tr(txtStr))
}

// SplitText splits UTF-8 text in lines fitting within w, measured like
// MultiCell does. The lines are returned in the code page of the core fonts.
func (d *Document) SplitText(txt string, w float64) []string {
	// translated text is measured byte by byte, SplitText reads runes
	split := d.Fpdf.SplitLines([]byte(d.tr(txt)), w)
	lines := make([]string, len(split))
	for i, line := range split {
		lines[i] = string(line)
	}
	return lines
}

// GetStringWidth returns the width of UTF-8 text in the current font.
func (d *Document) GetStringWidth(s string) float64 {
	return d.Fpdf.GetStringWidth(d.tr(s))
}

// Bytes closes the document and returns its content.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return nil, WrapError("Output", err)
	}
	return buf.Bytes(), nil
}

// OutputFile closes the document and writes it to path.
func (d *Document) OutputFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WrapError("OutputFile", err)
	}
	return nil
}

func (d *Document) header() {
	if d.plain {
		if d.undecorated == nil {
			d.undecorated = map[int]bool{}
		}
		d.undecorated[d.PageNo()] = true
		return
	}
	if d.draft != "" {
		d.drawDraft()
	}
	if d.company.Name == "" && d.title == "" {
		return
	}
	left, top, _, _ := d.GetMargins()
	half := table.PrintableWidth(d) / 2
	d.SetXY(left, top)
	d.SetTextColor(0, 0, 0)

	d.SetFont(table.DefaultFontName, table.StyleBold, headerFontSize)
	d.CellFormat(half, 5, d.company.Name, "", 0, "L", false, 0, "")
	d.CellFormat(half, 5, d.title, "", 1, "R", false, 0, "")
	if d.company.Address != "" || d.company.URL != "" {
		d.SetFont(table.DefaultFontName, table.StyleRegular, smallFontSize)
		d.CellFormat(half, 4, d.company.Address, "", 0, "L", false, 0, "")
		d.CellFormat(half, 4, d.company.URL, "", 1, "R", false, 0, d.company.URL)
	}

	y := d.GetY() + 1
	d.SetDrawColor(0, 0, 0)
	d.SetLineWidth(table.DefaultLineWidth)
	d.Line(left, y, left+2*half, y)
	d.SetXY(left, y+3)
	d.SetFont(table.DefaultFontName, table.StyleRegular, table.DefaultFontSize)
}

func (d *Document) drawDraft() {
	w, h := d.GetPageSize()
	d.SetFont(table.DefaultFontName, table.StyleBold, 72)
	d.SetTextColor(235, 235, 235)
	textWidth := d.GetStringWidth(d.draft)
	d.TransformBegin()
	d.TransformRotate(45, w/2, h/2)
	d.Text((w-textWidth)/2, h/2, d.draft)
	d.TransformEnd()
	d.SetTextColor(0, 0, 0)
}

func (d *Document) footer() {
	if d.undecorated[d.PageNo()] {
		return
	}
	left, _, _, _ := d.GetMargins()
	half := table.PrintableWidth(d) / 2
	d.SetY(footerOffset)
	y := d.GetY()
	d.SetDrawColor(0, 0, 0)
	d.SetLineWidth(table.DefaultLineWidth)
	d.Line(left, y, left+2*half, y)
	d.SetTextColor(0, 0, 0)
	d.SetFont(table.DefaultFontName, table.StyleRegular, smallFontSize)
	d.CellFormat(half, 5, fmt.Sprintf("Page %d / %s", d.PageNo(), pagesAlias), "", 0, "L", false, 0, "")
	d.CellFormat(half, 5, d.created.Format("02.01.2006 15:04"), "", 0, "R", false, 0, "")
}
