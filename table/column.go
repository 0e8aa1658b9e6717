package table

import "strings"

// Alignment is a horizontal text alignment. The empty value means the
// alignment is inherited (from the column, then left).
type Alignment string

const (
	AlignInherit Alignment = ""
	AlignLeft    Alignment = "L"
	AlignCenter  Alignment = "C"
	AlignRight   Alignment = "R"
	AlignJustify Alignment = "J"
)

// ParseAlignment accepts "L", "C", "R", "J" or the full words
// (case-insensitive). Anything else is AlignInherit.
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return AlignLeft
	case "c", "center", "centre":
		return AlignCenter
	case "r", "right":
		return AlignRight
	case "j", "justify", "justified":
		return AlignJustify
	}
	return AlignInherit
}

// Column declares the width, alignment and sizing of a table column.
type Column struct {
	Text  string
	Width float64
	Align Alignment
	// Fixed columns keep their width when a full width table redistributes
	// the printable width.
	Fixed bool
	// Formatter converts the raw values passed to Builder.AddValues.
	// Nil means TextFormatter.
	Formatter ValueFormatter
}

// NewColumn returns a column. Non positive widths are set to 1.
func NewColumn(text string, width float64, align Alignment, fixed bool) Column {
	if width <= 0 {
		width = 1
	}
	return Column{Text: text, Width: width, Align: align, Fixed: fixed}
}

// LeftColumn returns a left aligned column.
func LeftColumn(text string, width float64, fixed bool) Column {
	return NewColumn(text, width, AlignLeft, fixed)
}

// CenterColumn returns a centered column.
func CenterColumn(text string, width float64, fixed bool) Column {
	return NewColumn(text, width, AlignCenter, fixed)
}

// RightColumn returns a right aligned column.
func RightColumn(text string, width float64, fixed bool) Column {
	return NewColumn(text, width, AlignRight, fixed)
}

// WithFormatter returns a copy of c using the given formatter.
func (c Column) WithFormatter(f ValueFormatter) Column {
	c.Formatter = f
	return c
}

func (c Column) format(v any) string {
	if c.Formatter == nil {
		return TextFormatter{}.Format(v)
	}
	return c.Formatter.Format(v)
}
