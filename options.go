package calcpdf

import (
	"time"

	"github.com/go-pdf/fpdf"
)

// Option is a functional option for configuring a new report document via
// NewDocument.
type Option func(*documentConfig)

type documentConfig struct {
	orientation string
	unit        string
	size        string
	fontDir     string
	pageSize    fpdf.SizeType
	title       string
	author      string
	company     Company
	draft       string
	created     time.Time
	margin      float64
}

// Company is printed in the header of every page.
type Company struct {
	Name    string
	Address string
	URL     string
}

// WithOrientation sets the default page orientation.
// Use "portrait" or "landscape" (or "P" and "L").
func WithOrientation(orientation string) Option {
	return func(c *documentConfig) {
		c.orientation = orientation
	}
}

// WithUnit sets the measurement unit: "pt", "mm", "cm" or "inch".
func WithUnit(unit string) Option {
	return func(c *documentConfig) {
		c.unit = unit
	}
}

// WithPageSize sets the default page size by name (A3, A4, A5, Letter,
// Legal, Tabloid).
func WithPageSize(size string) Option {
	return func(c *documentConfig) {
		c.size = size
	}
}

// WithPageSizeCustom sets a custom default page size in the configured unit.
func WithPageSizeCustom(width, height float64) Option {
	return func(c *documentConfig) {
		c.pageSize = fpdf.SizeType{Wd: width, Ht: height}
	}
}

// WithFontDir sets the directory where font files are located.
func WithFontDir(dir string) Option {
	return func(c *documentConfig) {
		c.fontDir = dir
	}
}

// WithTitle sets the report title, printed in the page header and stored in
// the document metadata.
func WithTitle(title string) Option {
	return func(c *documentConfig) {
		c.title = title
	}
}

// WithAuthor sets the author metadata.
func WithAuthor(author string) Option {
	return func(c *documentConfig) {
		c.author = author
	}
}

// WithCompany sets the company printed in the page header.
func WithCompany(company Company) Option {
	return func(c *documentConfig) {
		c.company = company
	}
}

// WithDraft stamps every page with the given text, for example "DRAFT".
func WithDraft(text string) Option {
	return func(c *documentConfig) {
		c.draft = text
	}
}

// WithCreated sets the creation date printed in the footer and stored in the
// metadata. It defaults to the current time.
func WithCreated(t time.Time) Option {
	return func(c *documentConfig) {
		c.created = t
	}
}

// WithMargin sets the left, top and right page margins.
func WithMargin(margin float64) Option {
	return func(c *documentConfig) {
		c.margin = margin
	}
}
