package table

// GroupBuilder is a Builder that outputs a group row, spanning all the
// columns, each time the group key changes. After a page break the current
// group is output again below the headers.
type GroupBuilder struct {
	*Builder
	key        string
	style      *Style
	align      Alignment
	repeat     bool
	outputting bool
}

// NewGroupBuilder returns a full width GroupBuilder drawing on s.
func NewGroupBuilder(s Surface) *GroupBuilder {
	g := &GroupBuilder{
		Builder: New(s),
		style:   BoldCellStyle(),
		align:   AlignLeft,
		repeat:  true,
	}
	g.afterHeaders = g.repeatGroup
	return g
}

// GroupKey returns the current group key.
func (g *GroupBuilder) GroupKey() string { return g.key }

// SetGroupStyle sets the style of group rows; nil restores BoldCellStyle.
func (g *GroupBuilder) SetGroupStyle(s *Style) *GroupBuilder {
	if s == nil {
		s = BoldCellStyle()
	} else {
		s = s.Clone()
	}
	g.style = s
	return g
}

// SetGroupAlignment sets the alignment of the group text.
func (g *GroupBuilder) SetGroupAlignment(a Alignment) *GroupBuilder {
	g.align = a
	return g
}

// SetRepeatGroup sets whether the current group is output again after a
// page break. It is true by default.
func (g *GroupBuilder) SetRepeatGroup(repeat bool) *GroupBuilder {
	g.repeat = repeat
	return g
}

// SetGroupKey changes the current group and outputs the group row when the
// key differs from the previous one. An empty key closes the group without
// output. A new page is started first when the group row and at least one
// line would not fit.
func (g *GroupBuilder) SetGroupKey(key string) error {
	if g.err != nil {
		return g.err
	}
	if key == g.key {
		return nil
	}
	g.key = key
	if key == "" {
		return nil
	}
	if g.CheckNewPage(2*g.lineHeight) && g.repeat {
		// the group has been output below the repeated headers
		return g.err
	}
	return g.OutputGroup()
}

// OutputGroup outputs the current group row.
func (g *GroupBuilder) OutputGroup() error {
	g.outputting = true
	defer func() { g.outputting = false }()
	return g.SingleLine(g.key, g.style, g.align)
}

func (g *GroupBuilder) repeatGroup() error {
	if !g.repeat || g.key == "" || g.outputting {
		return nil
	}
	return g.OutputGroup()
}
