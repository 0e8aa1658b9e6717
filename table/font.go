package table

import "strings"

// Default font values.
const (
	DefaultFontName = "Arial"
	DefaultFontSize = 9.0
)

// Font style flags, in the notation of the PDF surface.
const (
	StyleRegular   = ""
	StyleBold      = "B"
	StyleItalic    = "I"
	StyleUnderline = "U"
)

// Font is a font name, size (in points) and style. The style is a
// combination of "B", "I" and "U" without duplicates.
type Font struct {
	Name  string
	Size  float64
	style string
}

// DefaultFont returns Arial 9pt regular.
func DefaultFont() Font {
	return Font{Name: DefaultFontName, Size: DefaultFontSize}
}

// Style returns the style flags.
func (f Font) Style() string {
	return f.style
}

// SetStyle replaces the style with the recognized flags of s. Unknown
// characters are ignored and the comparison is case-insensitive.
func (f *Font) SetStyle(s string) *Font {
	f.style = StyleRegular
	return f.AddStyle(s)
}

// AddStyle adds the recognized flags of s that are not already set.
func (f *Font) AddStyle(s string) *Font {
	for _, r := range strings.ToUpper(s) {
		flag := string(r)
		switch flag {
		case StyleBold, StyleItalic, StyleUnderline:
			if !strings.Contains(f.style, flag) {
				f.style += flag
			}
		}
	}
	return f
}

// Regular clears all the style flags.
func (f *Font) Regular() *Font {
	f.style = StyleRegular
	return f
}

// Bold sets the bold flag. When add is false the style becomes bold only.
func (f *Font) Bold(add bool) *Font {
	return f.flag(StyleBold, add)
}

// Italic sets the italic flag. When add is false the style becomes italic only.
func (f *Font) Italic(add bool) *Font {
	return f.flag(StyleItalic, add)
}

// Underline sets the underline flag. When add is false the style becomes
// underline only.
func (f *Font) Underline(add bool) *Font {
	return f.flag(StyleUnderline, add)
}

func (f *Font) flag(flag string, add bool) *Font {
	if add {
		return f.AddStyle(flag)
	}
	return f.SetStyle(flag)
}

// IsBold reports whether the style has the bold flag.
func (f Font) IsBold() bool { return strings.Contains(f.style, StyleBold) }

// IsItalic reports whether the style has the italic flag.
func (f Font) IsItalic() bool { return strings.Contains(f.style, StyleItalic) }

// IsUnderline reports whether the style has the underline flag.
func (f Font) IsUnderline() bool { return strings.Contains(f.style, StyleUnderline) }

// IsDefaultSize reports whether the size is DefaultFontSize.
func (f Font) IsDefaultSize() bool {
	return f.Size == DefaultFontSize
}

// Apply sets this font on the surface.
func (f Font) Apply(s Surface) {
	name := f.Name
	if name == "" {
		name = DefaultFontName
	}
	size := f.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	s.SetFont(name, f.style, size)
}
