package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lvillar/calcpdf/table"
)

func TestValidateBorder(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "0"},
		{"0", "0"},
		{"none", "0"},
		{"1", "1"},
		{"all", "1"},
		{"-1", "-1"},
		{"inherited", "-1"},
		{"ltlt", "LT"},
		{"TL", "LT"},
		{"brtl", "LTRB"},
		{"xyz", "0"},
		{"l-x-b", "LB"},
	}
	for _, tt := range tests {
		if got := table.ValidateBorder(tt.in); got != tt.want {
			t.Errorf("ValidateBorder(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateBorderIdempotent(t *testing.T) {
	inputs := []string{"", "0", "1", "-1", "all", "inherited", "ltlt", "RRB", "q", "bottom", "LTRB", " t "}
	for _, in := range inputs {
		once := table.ValidateBorder(in)
		if twice := table.ValidateBorder(once); twice != once {
			t.Errorf("ValidateBorder not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestBorderQueries(t *testing.T) {
	b := table.ParseBorder("LB")
	assert.True(t, b.IsLeft())
	assert.True(t, b.IsBottom())
	assert.False(t, b.IsTop())
	assert.False(t, b.IsRight())
	assert.False(t, b.IsRectangleStyle())
	assert.False(t, b.IsInherited())

	assert.True(t, table.BorderAll().IsRectangleStyle())
	assert.True(t, table.BorderNone().IsRectangleStyle())
	assert.True(t, table.Border{}.IsNone())
	assert.True(t, table.BorderInherited().IsInherited())
	assert.False(t, table.BorderInherited().IsRectangleStyle())
	assert.False(t, table.BorderInherited().IsLeft())

	assert.True(t, table.BorderSides().IsNone())
	assert.Equal(t, "TR", table.BorderSides(table.SideRight, table.SideTop).String())
}

func TestBorderWith(t *testing.T) {
	b := table.BorderAll().With(table.SideTop, false)
	assert.Equal(t, "LRB", b.String())
	assert.True(t, b.With(table.SideTop, true).IsAll())
	assert.True(t, table.BorderSides(table.SideLeft).With(table.SideLeft, false).IsNone())
	assert.True(t, table.BorderInherited().With(table.SideLeft, true).IsInherited())
}
