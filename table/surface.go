package table

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// Surface is the drawing surface a Builder lays out on. *fpdf.Fpdf
// satisfies it, as does any type embedding it.
type Surface interface {
	GetX() float64
	GetY() float64
	SetX(x float64)
	SetXY(x, y float64)
	AddPage()
	PageNo() int
	GetPageSize() (width, height float64)
	GetMargins() (left, top, right, bottom float64)
	GetAutoPageBreak() (auto bool, margin float64)
	GetCellMargin() float64
	GetFontSize() (ptSize, unitSize float64)
	PointToUnitConvert(pt float64) float64

	SetFont(familyStr, styleStr string, size float64)
	SetLineWidth(width float64)
	SetDrawColor(r, g, b int)
	SetFillColor(r, g, b int)
	SetTextColor(r, g, b int)

	Rect(x, y, w, h float64, styleStr string)
	Line(x1, y1, x2, y2 float64)
	MultiCell(w, h float64, txtStr, borderStr, alignStr string, fill bool)
	SplitText(txt string, w float64) []string
	GetStringWidth(s string) float64
	LinkString(x, y, w, h float64, linkStr string)
	ImageOptions(imageNameStr string, x, y, w, h float64, flow bool, options fpdf.ImageOptions, link int, linkStr string)
	RegisterImageOptionsReader(imgName string, options fpdf.ImageOptions, r io.Reader) *fpdf.ImageInfoType

	SetError(err error)
	Err() bool
	Error() error
}

var _ Surface = (*fpdf.Fpdf)(nil)

// Rect is the bounding box of a drawn cell, in user units.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// PrintableWidth returns the page width minus the left and right margins.
func PrintableWidth(s Surface) float64 {
	w, _ := s.GetPageSize()
	left, _, right, _ := s.GetMargins()
	return w - left - right
}

// PrintableHeight returns the page height minus the top and bottom margins.
func PrintableHeight(s Surface) float64 {
	_, h := s.GetPageSize()
	_, top, _, _ := s.GetMargins()
	_, bottom := s.GetAutoPageBreak()
	return h - top - bottom
}

// IsPrintable reports whether height fits between the current position and
// the bottom margin of the current page.
func IsPrintable(s Surface, height float64) bool {
	_, h := s.GetPageSize()
	_, bottom := s.GetAutoPageBreak()
	return s.GetY()+height <= h-bottom
}

// PixelsToUnits converts a length in pixels (96 dpi) to user units.
func PixelsToUnits(s Surface, pixels float64) float64 {
	return s.PointToUnitConvert(pixels * 72.0 / 96.0)
}
