// Package table lays out tabular content on a paginated PDF surface.
//
// A Builder accumulates cells into rows, resolves each cell's style,
// alignment and width against the declared columns, computes the row height
// from the wrapped text, breaks pages (repeating the headers) and draws the
// cells. Styles, fonts, colors and borders are plain values: copying a
// Style never shares state with the original.
package table

// DefaultLineWidth is the line width of borders, in user units.
const DefaultLineWidth = 0.2

// Style is the paint state applied to the surface before a cell is drawn.
// Style is a value type; Clone and plain assignment both produce independent
// copies.
type Style struct {
	Font      Font
	DrawColor Color
	FillColor Color
	TextColor Color
	LineWidth float64
	Border    Border
	indent    int
}

// DefaultStyle returns the base style: default font, black lines and text,
// white background and the table border.
func DefaultStyle() *Style {
	return &Style{
		Font:      DefaultFont(),
		DrawColor: Black(),
		FillColor: White(),
		TextColor: Black(),
		LineWidth: DefaultLineWidth,
		Border:    BorderInherited(),
	}
}

// CellStyle returns the default style of body cells.
func CellStyle() *Style {
	return DefaultStyle().SetDrawColor(CellBorder())
}

// HeaderStyle returns the style of header cells.
func HeaderStyle() *Style {
	return CellStyle().SetFillColor(HeaderFill()).SetFontBold(false)
}

// BoldCellStyle returns a bold body cell style.
func BoldCellStyle() *Style {
	return CellStyle().SetFontBold(false)
}

// BlackHeaderStyle returns a header style with white text on black.
func BlackHeaderStyle() *Style {
	return CellStyle().
		SetFillColor(Black()).
		SetDrawColor(Black()).
		SetTextColor(White()).
		SetFontBold(false)
}

// LinkStyle returns the style of hyperlinks.
func LinkStyle() *Style {
	return DefaultStyle().SetTextColor(LinkColor())
}

// NoBorderStyle returns the default style without border.
func NoBorderStyle() *Style {
	return DefaultStyle().SetBorder(BorderNone())
}

// Clone returns an independent copy of s.
func (s *Style) Clone() *Style {
	c := *s
	return &c
}

// Reset restores the default style values.
func (s *Style) Reset() *Style {
	*s = *DefaultStyle()
	return s
}

// Indent returns the left indent of the text, in user units.
func (s *Style) Indent() int {
	return s.indent
}

// SetIndent sets the left indent; negative values are set to 0.
func (s *Style) SetIndent(indent int) *Style {
	s.indent = max(0, indent)
	return s
}

// SetFont replaces the font.
func (s *Style) SetFont(f Font) *Style {
	s.Font = f
	return s
}

// SetFontName sets the font family.
func (s *Style) SetFontName(name string) *Style {
	s.Font.Name = name
	return s
}

// SetFontSize sets the font size, in points.
func (s *Style) SetFontSize(size float64) *Style {
	s.Font.Size = size
	return s
}

// SetFontBold sets the bold flag; see Font.Bold.
func (s *Style) SetFontBold(add bool) *Style {
	s.Font.Bold(add)
	return s
}

// SetFontItalic sets the italic flag; see Font.Italic.
func (s *Style) SetFontItalic(add bool) *Style {
	s.Font.Italic(add)
	return s
}

// SetFontUnderline sets the underline flag; see Font.Underline.
func (s *Style) SetFontUnderline(add bool) *Style {
	s.Font.Underline(add)
	return s
}

// SetFontRegular clears the font style flags.
func (s *Style) SetFontRegular() *Style {
	s.Font.Regular()
	return s
}

// SetDrawColor sets the border color.
func (s *Style) SetDrawColor(c Color) *Style {
	s.DrawColor = c
	return s
}

// SetFillColor sets the background color.
func (s *Style) SetFillColor(c Color) *Style {
	s.FillColor = c
	return s
}

// SetTextColor sets the text color.
func (s *Style) SetTextColor(c Color) *Style {
	s.TextColor = c
	return s
}

// SetLineWidth sets the border line width, in user units.
func (s *Style) SetLineWidth(w float64) *Style {
	s.LineWidth = w
	return s
}

// SetBorder sets the border; BorderInherited uses the table border.
func (s *Style) SetBorder(b Border) *Style {
	s.Border = b
	return s
}

// IsFillColor reports whether a background must be painted, that is when
// the fill color is not white.
func (s *Style) IsFillColor() bool {
	return s.FillColor != White()
}

// Apply sets the font, line width, draw color, fill color and text color on
// the surface, in that order.
func (s *Style) Apply(surface Surface) {
	s.Font.Apply(surface)
	surface.SetLineWidth(s.LineWidth)
	s.DrawColor.applyDraw(surface)
	s.FillColor.applyFill(surface)
	s.TextColor.applyText(surface)
}
