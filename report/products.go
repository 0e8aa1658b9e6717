package report

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/table"
)

// ProductsReport lists the visible products by group and category.
type ProductsReport struct {
	ds *model.Dataset
	f  formats
}

// NewProductsReport returns the products report.
func NewProductsReport(ds *model.Dataset, opts Options) *ProductsReport {
	return &ProductsReport{ds: ds, f: newFormats(opts.Locale)}
}

func (r *ProductsReport) Kind() string  { return KindProducts }
func (r *ProductsReport) Title() string { return "Products" }

// Products returns the visible products sorted by group, category and
// description.
func (r *ProductsReport) Products() []model.Product {
	var products []model.Product
	for _, p := range r.ds.Products {
		if !p.Hidden {
			products = append(products, p)
		}
	}
	slices.SortStableFunc(products, func(a, b model.Product) int {
		return cmp.Or(
			cmp.Compare(a.Group, b.Group),
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Description, b.Description),
		)
	})
	return products
}

func (r *ProductsReport) Render(doc *calcpdf.Document) error {
	const op = "ProductsReport"
	products := r.Products()
	if len(products) == 0 {
		return calcpdf.WrapError(op, calcpdf.ErrNoData)
	}
	begin(doc, r.Title())

	gb := table.NewGroupBuilder(doc)
	gb.AddColumns(
		table.LeftColumn("Description", 120, false),
		table.CenterColumn("Unit", 20, true),
		table.RightColumn("Price", 30, true).WithFormatter(r.f.amount),
	)
	if err := gb.OutputHeaders(); err != nil {
		return calcpdf.WrapError(op, err)
	}
	for _, p := range products {
		if err := gb.SetGroupKey(p.Group + " / " + p.Category); err != nil {
			return calcpdf.WrapError(op, err)
		}
		if err := gb.StartRow(nil).AddValues(p.Description, p.Unit, p.Price).EndRow(); err != nil {
			return calcpdf.WrapError(op, err)
		}
	}
	gb.SetGroupKey("")
	gb.SingleLine(fmt.Sprintf("%d products", len(products)), table.BoldCellStyle(), table.AlignRight)
	return finish(op, gb)
}
