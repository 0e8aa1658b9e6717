package doctpl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/message"
	"sigs.k8s.io/yaml"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/table"
)

const defaultColumnWidth = 30

// headingSizes are the font sizes of the heading levels 1 to 6.
var headingSizes = []float64{24, 20, 16, 14, 12, 11}

// Parse decodes a JSON or YAML template.
func Parse(data []byte) (*Document, error) {
	converted, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("doctpl: parsing template: %w", err)
	}
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(converted))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("doctpl: parsing template: %w", err)
	}
	return &doc, nil
}

// Render parses a JSON or YAML template and writes the resulting PDF to w.
func Render(w io.Writer, template []byte, opts ...calcpdf.Option) error {
	doc, err := Parse(template)
	if err != nil {
		return err
	}
	return RenderDocument(w, doc, opts...)
}

// RenderDocument renders a Document struct to a PDF written to w. The
// options are applied before the settings of the template.
func RenderDocument(w io.Writer, tpl *Document, opts ...calcpdf.Option) error {
	doc, err := Build(tpl, opts...)
	if err != nil {
		return err
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("doctpl: %w", err)
	}
	return nil
}

// Build draws the template onto a new document and returns it open, so that
// more content can be added before output.
func Build(tpl *Document, opts ...calcpdf.Option) (*calcpdf.Document, error) {
	doc := calcpdf.NewDocument(append(slices.Clip(opts), documentOptions(tpl)...)...)

	r := &renderer{doc: doc, font: Font{Family: table.DefaultFontName, Size: 11}}
	if tpl.Font != nil {
		if tpl.Font.Family != "" {
			r.font.Family = tpl.Font.Family
		}
		if tpl.Font.Size > 0 {
			r.font.Size = tpl.Font.Size
		}
		r.font.Style = tpl.Font.Style
	}
	r.printer = table.NewPrinter(tpl.Locale)

	for pageIdx, page := range tpl.Pages {
		doc.AddPage()
		r.resetFont()
		for elemIdx, elem := range page.Elements {
			if err := r.renderElement(elem); err != nil {
				return nil, fmt.Errorf("doctpl: page %d: element %d: %w", pageIdx+1, elemIdx+1, err)
			}
		}
	}

	// If no pages were defined, add one empty page
	if len(tpl.Pages) == 0 {
		doc.AddPage()
	}

	if doc.Err() {
		return nil, fmt.Errorf("doctpl: %w", doc.Error())
	}
	return doc, nil
}

func documentOptions(tpl *Document) []calcpdf.Option {
	var opts []calcpdf.Option
	if tpl.PageSize != "" {
		opts = append(opts, calcpdf.WithPageSize(tpl.PageSize))
	}
	if tpl.Orientation != "" {
		opts = append(opts, calcpdf.WithOrientation(tpl.Orientation))
	}
	if tpl.Margin > 0 {
		opts = append(opts, calcpdf.WithMargin(tpl.Margin))
	}
	if tpl.Title != "" {
		opts = append(opts, calcpdf.WithTitle(tpl.Title))
	}
	if tpl.Author != "" {
		opts = append(opts, calcpdf.WithAuthor(tpl.Author))
	}
	if tpl.Draft != "" {
		opts = append(opts, calcpdf.WithDraft(tpl.Draft))
	}
	if tpl.Company != nil {
		opts = append(opts, calcpdf.WithCompany(calcpdf.Company(*tpl.Company)))
	}
	return opts
}

type renderer struct {
	doc     *calcpdf.Document
	font    Font
	printer *message.Printer
}

func (r *renderer) resetFont() {
	r.doc.SetFont(r.font.Family, r.font.Style, r.font.Size)
	r.doc.SetTextColor(0, 0, 0)
}

// setFont applies the element font over base.
func (r *renderer) setFont(base Font, override *Font) float64 {
	if override != nil {
		if override.Family != "" {
			base.Family = override.Family
		}
		if override.Style != "" {
			base.Style = override.Style
		}
		if override.Size > 0 {
			base.Size = override.Size
		}
	}
	r.doc.SetFont(base.Family, strings.ToUpper(base.Style), base.Size)
	return base.Size
}

func (r *renderer) setTextColor(hex string) error {
	if hex == "" {
		return nil
	}
	c, ok := table.CreateColor(hex)
	if !ok {
		return fmt.Errorf("invalid color %q", hex)
	}
	r.doc.SetTextColor(c.R, c.G, c.B)
	return nil
}

func (r *renderer) renderElement(elem Element) error {
	defer r.resetFont()
	switch elem.Type {
	case "heading":
		return r.renderHeading(elem)
	case "paragraph", "text":
		return r.renderParagraph(elem)
	case "table":
		return r.renderTable(elem)
	case "image":
		return r.renderImage(elem)
	case "spacer":
		r.renderSpacer(elem)
	case "hr":
		return r.renderHR(elem)
	case "list":
		r.renderList(elem)
	default:
		return fmt.Errorf("unknown element type %q", elem.Type)
	}
	return nil
}

func align(s string) string {
	if a := table.ParseAlignment(s); a != table.AlignInherit {
		return string(a)
	}
	return string(table.AlignLeft)
}

func (r *renderer) renderHeading(elem Element) error {
	level := min(max(elem.Level, 1), len(headingSizes))
	size := r.setFont(Font{Family: r.font.Family, Style: "B", Size: headingSizes[level-1]}, elem.Font)
	if err := r.setTextColor(elem.Color); err != nil {
		return err
	}

	// Add spacing before heading
	if level <= 2 {
		r.doc.Ln(size * 0.4)
	} else {
		r.doc.Ln(size * 0.3)
	}
	r.doc.MultiCell(table.PrintableWidth(r.doc), size*0.5, elem.Text, "", align(elem.Align), false)
	r.doc.Ln(size * 0.2)
	return nil
}

func (r *renderer) renderParagraph(elem Element) error {
	size := r.setFont(r.font, elem.Font)
	if err := r.setTextColor(elem.Color); err != nil {
		return err
	}
	r.doc.MultiCell(table.PrintableWidth(r.doc), size*0.5, elem.Text, "", align(elem.Align), false)
	r.doc.Ln(size * 0.3)
	return nil
}

func (r *renderer) renderList(elem Element) {
	size := r.setFont(r.font, elem.Font)
	left, _, _, _ := r.doc.GetMargins()
	contentW := table.PrintableWidth(r.doc) - 10 // indent for bullet

	bullet := "• " // default bullet
	if elem.BulletStr != "" {
		bullet = elem.BulletStr + " "
	}
	for i, item := range elem.Items {
		prefix := bullet
		if elem.Ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		r.doc.SetX(left + 5)
		r.doc.MultiCell(contentW, size*0.5, prefix+item, "", "L", false)
		r.doc.Ln(1)
	}
	r.doc.Ln(2)
}

func (r *renderer) renderSpacer(elem Element) {
	h := elem.SpacerHeight
	if h == 0 {
		h = 10
	}
	r.doc.Ln(h)
}

func (r *renderer) renderHR(elem Element) error {
	left, _, _, _ := r.doc.GetMargins()
	r.doc.Ln(3)
	y := r.doc.GetY()

	lw := elem.LineWidth
	if lw == 0 {
		lw = 0.3
	}
	r.doc.SetLineWidth(lw)
	r.doc.SetDrawColor(180, 180, 180)
	if elem.Color != "" {
		c, ok := table.CreateColor(elem.Color)
		if !ok {
			return fmt.Errorf("invalid color %q", elem.Color)
		}
		r.doc.SetDrawColor(c.R, c.G, c.B)
	}
	r.doc.Line(left, y, left+table.PrintableWidth(r.doc), y)
	r.doc.SetDrawColor(0, 0, 0)
	r.doc.SetLineWidth(table.DefaultLineWidth)
	r.doc.Ln(3)
	return nil
}

func (r *renderer) renderImage(elem Element) error {
	if elem.Src == "" {
		return errors.New("image element requires 'src' field")
	}
	img, err := table.NewImage(elem.Src)
	if err != nil {
		return err
	}
	img.Resize(elem.Height, elem.Width)

	h := table.PixelsToUnits(r.doc, float64(img.Height()))
	if !table.IsPrintable(r.doc, h) {
		r.doc.AddPage()
	}
	left, _, _, _ := r.doc.GetMargins()
	y := r.doc.GetY()
	bounds := table.Rect{X: left, Y: y, W: table.PrintableWidth(r.doc), H: h}
	if err := img.Draw(r.doc, bounds, table.ParseAlignment(elem.Align)); err != nil {
		return err
	}
	r.doc.SetY(y + h + 2)
	return nil
}

func (r *renderer) renderTable(elem Element) error {
	if len(elem.Columns) == 0 {
		return errors.New("table element requires 'columns' field")
	}
	gb := table.NewGroupBuilder(r.doc)
	if elem.FullWidth != nil {
		gb.SetFullWidth(*elem.FullWidth)
	}
	if elem.Border != "" {
		gb.SetBorder(table.ParseBorder(elem.Border))
	}
	if elem.HeaderStyle != nil {
		style, err := cellStyle(table.HeaderStyle(), elem.HeaderStyle)
		if err != nil {
			return err
		}
		gb.SetHeaderStyle(style)
	}
	rowStyle, err := cellStyle(table.CellStyle(), elem.CellStyle)
	if err != nil {
		return err
	}

	for _, c := range elem.Columns {
		width := c.Width
		if width <= 0 {
			width = defaultColumnWidth
		}
		col := table.NewColumn(c.Header, width, table.ParseAlignment(c.Align), c.Fixed && c.Width > 0)
		f, err := r.formatter(c.Format)
		if err != nil {
			return err
		}
		if f != nil {
			col = col.WithFormatter(f)
		}
		gb.AddColumn(col)
	}
	if err := gb.OutputHeaders(); err != nil {
		return err
	}

	addRows := func(rows [][]any, style *table.Style) error {
		for i, row := range rows {
			if len(row) > len(elem.Columns) {
				return fmt.Errorf("row %d: %d values for %d columns", i+1, len(row), len(elem.Columns))
			}
			if err := gb.StartRow(style).AddValues(row...).CompleteRow(true); err != nil {
				return err
			}
		}
		return nil
	}
	if err := addRows(elem.Rows, rowStyle); err != nil {
		return err
	}
	for _, g := range elem.Groups {
		if err := gb.SetGroupKey(g.Title); err != nil {
			return err
		}
		if err := addRows(g.Rows, rowStyle); err != nil {
			return fmt.Errorf("group %q: %w", g.Title, err)
		}
	}
	if err := gb.SetGroupKey(""); err != nil {
		return err
	}
	if len(elem.Footer) > 0 {
		if err := addRows([][]any{elem.Footer}, rowStyle.Clone().SetFontBold(true)); err != nil {
			return fmt.Errorf("footer: %w", err)
		}
	}
	r.doc.Ln(2)
	return gb.Err()
}

// cellStyle applies the template style over base.
func cellStyle(base *table.Style, cs *CellStyle) (*table.Style, error) {
	if cs == nil {
		return base, nil
	}
	if cs.FillColor != "" {
		c, ok := table.CreateColor(cs.FillColor)
		if !ok {
			return nil, fmt.Errorf("invalid fill color %q", cs.FillColor)
		}
		base.SetFillColor(c)
	}
	if cs.TextColor != "" {
		c, ok := table.CreateColor(cs.TextColor)
		if !ok {
			return nil, fmt.Errorf("invalid text color %q", cs.TextColor)
		}
		base.SetTextColor(c)
	}
	if cs.Font != nil {
		if cs.Font.Family != "" {
			base.SetFontName(cs.Font.Family)
		}
		if cs.Font.Style != "" {
			base.Font.SetStyle(cs.Font.Style)
		}
		if cs.Font.Size > 0 {
			base.SetFontSize(cs.Font.Size)
		}
	}
	if cs.Border != "" {
		base.SetBorder(table.ParseBorder(cs.Border))
	}
	return base, nil
}

func (r *renderer) formatter(name string) (table.ValueFormatter, error) {
	p := r.printer
	switch strings.ToLower(name) {
	case "", "text":
		return nil, nil
	case "amount":
		return table.AmountFormatter{Printer: p}, nil
	case "percent":
		return table.PercentFormatter{Printer: p, Decimals: 1}, nil
	case "integer":
		return table.IntegerFormatter{Printer: p}, nil
	case "date":
		return isoDate{}, nil
	case "bool":
		return table.BoolFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown column format %q", name)
}

// isoDate formats "2006-01-02" strings and time values as dates.
type isoDate struct {
	table.DateFormatter
}

func (f isoDate) Format(v any) string {
	if s, ok := v.(string); ok {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return f.DateFormatter.Format(t)
		}
	}
	return f.DateFormatter.Format(v)
}
