package table

import "strings"

// Side is one side of a cell rectangle.
type Side uint8

const (
	SideLeft Side = 1 << iota
	SideTop
	SideRight
	SideBottom
)

var sideLetters = [...]struct {
	side   Side
	letter byte
}{
	{SideLeft, 'L'},
	{SideTop, 'T'},
	{SideRight, 'R'},
	{SideBottom, 'B'},
}

type borderMode uint8

const (
	borderSides borderMode = iota
	borderNone
	borderAll
	borderInherited
)

// Border describes which sides of a cell are drawn. It is either one of the
// whole rectangle modes (none, all, inherited) or an explicit set of sides.
// The zero value is BorderNone.
type Border struct {
	mode  borderMode
	sides Side
}

// Canonical string forms.
const (
	BorderNoneString      = "0"
	BorderAllString       = "1"
	BorderInheritedString = "-1"
)

// BorderNone draws no border.
func BorderNone() Border { return Border{mode: borderNone} }

// BorderAll draws the four sides.
func BorderAll() Border { return Border{mode: borderAll} }

// BorderInherited uses the default border of the table.
func BorderInherited() Border { return Border{mode: borderInherited} }

// BorderSides draws the given sides. With no side it is BorderNone.
func BorderSides(sides ...Side) Border {
	var set Side
	for _, s := range sides {
		set |= s & (SideLeft | SideTop | SideRight | SideBottom)
	}
	return fromSet(set)
}

func fromSet(set Side) Border {
	if set == 0 {
		return BorderNone()
	}
	return Border{mode: borderSides, sides: set}
}

// ParseBorder normalizes a border string. Empty input is none, "1" and
// "all" are all, "-1" and "inherited" are inherited. Anything else is
// scanned for the L, T, R and B letters (case-insensitive), duplicates and
// unknown characters are dropped; when nothing remains the border is none.
func ParseBorder(s string) Border {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", BorderNoneString, "none":
		return BorderNone()
	case BorderAllString, "all":
		return BorderAll()
	case BorderInheritedString, "inherited":
		return BorderInherited()
	}
	var set Side
	upper := strings.ToUpper(s)
	for i := 0; i < len(upper); i++ {
		for _, sl := range sideLetters {
			if upper[i] == sl.letter {
				set |= sl.side
			}
		}
	}
	return fromSet(set)
}

// ValidateBorder returns the canonical form of s.
func ValidateBorder(s string) string {
	return ParseBorder(s).String()
}

// String returns "0", "1", "-1" or the drawn sides in LTRB order.
func (b Border) String() string {
	switch b.mode {
	case borderAll:
		return BorderAllString
	case borderInherited:
		return BorderInheritedString
	case borderSides:
		if b.sides != 0 {
			var sb strings.Builder
			for _, sl := range sideLetters {
				if b.sides&sl.side != 0 {
					sb.WriteByte(sl.letter)
				}
			}
			return sb.String()
		}
	}
	return BorderNoneString
}

// Has reports whether the given side is drawn.
func (b Border) Has(side Side) bool {
	switch b.mode {
	case borderAll:
		return true
	case borderSides:
		return b.sides&side != 0
	}
	return false
}

// IsLeft reports whether the left side is drawn.
func (b Border) IsLeft() bool { return b.Has(SideLeft) }

// IsTop reports whether the top side is drawn.
func (b Border) IsTop() bool { return b.Has(SideTop) }

// IsRight reports whether the right side is drawn.
func (b Border) IsRight() bool { return b.Has(SideRight) }

// IsBottom reports whether the bottom side is drawn.
func (b Border) IsBottom() bool { return b.Has(SideBottom) }

// IsNone reports whether nothing is drawn.
func (b Border) IsNone() bool {
	return b.mode == borderNone || (b.mode == borderSides && b.sides == 0)
}

// IsAll reports whether the four sides are drawn.
func (b Border) IsAll() bool {
	return b.mode == borderAll
}

// IsInherited reports whether the border must be taken from the table.
func (b Border) IsInherited() bool {
	return b.mode == borderInherited
}

// IsRectangleStyle reports whether the border can be drawn with a single
// rectangle call (all or none).
func (b Border) IsRectangleStyle() bool {
	return b.IsAll() || b.IsNone()
}

// With returns a copy of b where the given side is set or cleared. An
// inherited border is returned unchanged.
func (b Border) With(side Side, on bool) Border {
	var set Side
	switch b.mode {
	case borderInherited:
		return b
	case borderAll:
		set = SideLeft | SideTop | SideRight | SideBottom
	case borderSides:
		set = b.sides
	}
	if on {
		set |= side
	} else {
		set &^= side
	}
	if set == SideLeft|SideTop|SideRight|SideBottom {
		return BorderAll()
	}
	return fromSet(set)
}
