// Package doctpl renders declarative document templates to PDF.
//
// A template is a JSON or YAML document made of pages of elements: headings,
// paragraphs, lists, spacers, rules, images and tables. Tables are laid out
// by the table package, so they wrap, break across pages and repeat their
// header like the reports do.
//
// Example YAML:
//
//	title: Offer
//	locale: de-CH
//	pages:
//	  - elements:
//	      - {type: heading, text: Garden wall, level: 1}
//	      - {type: paragraph, text: Prices include delivery.}
//	      - type: table
//	        columns:
//	          - {header: Item}
//	          - {header: Price, width: 30, fixed: true, align: R, format: amount}
//	        rows:
//	          - [Concrete blocks, 500]
package doctpl

// Document is the top-level template.
type Document struct {
	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	PageSize    string   `json:"pageSize,omitempty"`    // A4, A5, Letter, Legal (default: A4)
	Orientation string   `json:"orientation,omitempty"` // portrait, landscape (default: portrait)
	Margin      float64  `json:"margin,omitempty"`      // left, top and right margin (default: 10)
	Locale      string   `json:"locale,omitempty"`      // number formatting (default: de-CH)
	Draft       string   `json:"draft,omitempty"`       // stamp printed on every page
	Company     *Company `json:"company,omitempty"`
	Font        *Font    `json:"font,omitempty"` // default font for the document
	Pages       []Page   `json:"pages"`
}

// Company is printed in the header of every page.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Font specifies a font face.
type Font struct {
	Family string  `json:"family,omitempty"` // Arial, Courier, Times
	Style  string  `json:"style,omitempty"`  // "" (regular), "B", "I", "U" or a combination
	Size   float64 `json:"size,omitempty"`
}

// Page starts on a new page.
type Page struct {
	Elements []Element `json:"elements"`
}

// Element is a single visual element within a page.
// The Type field determines which other fields are relevant.
type Element struct {
	Type string `json:"type"` // heading, paragraph, table, image, spacer, list, hr

	// Text content (heading, paragraph)
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"` // heading level 1-6
	Align string `json:"align,omitempty"` // L, C, R, J (default: L)

	// Font override for this element
	Font  *Font  `json:"font,omitempty"`
	Color string `json:"color,omitempty"` // hex, e.g. "#336699"

	// Table
	Columns     []TableColumn `json:"columns,omitempty"`
	Rows        [][]any       `json:"rows,omitempty"`
	Groups      []TableGroup  `json:"groups,omitempty"`
	Footer      []any         `json:"footer,omitempty"` // bold last row
	HeaderStyle *CellStyle    `json:"headerStyle,omitempty"`
	CellStyle   *CellStyle    `json:"cellStyle,omitempty"`
	FullWidth   *bool         `json:"fullWidth,omitempty"` // default: true
	Border      string        `json:"border,omitempty"`    // table default border: 1, 0, LTRB subset

	// Image
	Src    string `json:"src,omitempty"`
	Width  int    `json:"width,omitempty"`  // pixels, 0 keeps the aspect ratio
	Height int    `json:"height,omitempty"` // pixels, 0 keeps the aspect ratio

	// Spacer / HR
	SpacerHeight float64 `json:"spacerHeight,omitempty"`
	LineWidth    float64 `json:"lineWidth,omitempty"`

	// List
	Items     []string `json:"items,omitempty"`
	Ordered   bool     `json:"ordered,omitempty"`
	BulletStr string   `json:"bullet,omitempty"` // custom bullet character
}

// TableColumn defines a column in a table element.
type TableColumn struct {
	Header string  `json:"header"`
	Width  float64 `json:"width,omitempty"` // 0 = shares the remaining width
	Fixed  bool    `json:"fixed,omitempty"`
	Align  string  `json:"align,omitempty"`  // L, C, R
	Format string  `json:"format,omitempty"` // text, amount, percent, integer, date, bool
}

// TableGroup is a set of rows printed under a group line.
type TableGroup struct {
	Title string  `json:"title"`
	Rows  [][]any `json:"rows"`
}

// CellStyle defines styling for table cells.
type CellStyle struct {
	FillColor string `json:"fillColor,omitempty"`
	TextColor string `json:"textColor,omitempty"`
	Font      *Font  `json:"font,omitempty"`
	Border    string `json:"border,omitempty"`
}
