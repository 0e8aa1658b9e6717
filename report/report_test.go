package report_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/report"
	"github.com/lvillar/calcpdf/table"
)

func loadDataset(t *testing.T) *model.Dataset {
	t.Helper()
	ds, err := model.LoadFile("../model/testdata/dataset.yaml")
	require.NoError(t, err)
	return ds
}

// render draws r on an uncompressed document and returns the PDF source.
func render(t *testing.T, r report.Report) string {
	t.Helper()
	doc := calcpdf.NewDocument()
	doc.SetCompression(false)
	require.NoError(t, r.Render(doc))
	data, err := doc.Bytes()
	require.NoError(t, err)
	return string(data)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{"calculation", "log", "margins", "products", "states", "tasks"}, report.Kinds())
}

func TestNewUnknownKind(t *testing.T) {
	ds := loadDataset(t)
	_, err := report.New("state", ds, report.Options{})
	require.ErrorIs(t, err, calcpdf.ErrUnknownKind)
	assert.Contains(t, err.Error(), `did you mean "states"?`)

	_, err = report.New("inventory", ds, report.Options{})
	require.ErrorIs(t, err, calcpdf.ErrUnknownKind)
	assert.Contains(t, err.Error(), "known kinds")

	_, err = report.New("states", nil, report.Options{})
	assert.ErrorIs(t, err, calcpdf.ErrNoData)
}

func TestNewCalculationErrors(t *testing.T) {
	ds := loadDataset(t)
	_, err := report.New(report.KindCalculation, ds, report.Options{})
	assert.ErrorIs(t, err, calcpdf.ErrInvalidParam)
	_, err = report.New(report.KindCalculation, ds, report.Options{ID: 99})
	assert.ErrorIs(t, err, calcpdf.ErrNotFound)
}

func TestGenerateAllKinds(t *testing.T) {
	ds := loadDataset(t)
	for _, kind := range report.Kinds() {
		t.Run(kind, func(t *testing.T) {
			r, err := report.New(kind, ds, report.Options{ID: 12, MinMargin: 0.1})
			require.NoError(t, err)
			data, err := report.Generate(r, nil)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
			t.Logf("%s: %d bytes", kind, len(data))
		})
	}
}

func TestGenerateAccentedText(t *testing.T) {
	ds := loadDataset(t)
	ds.Calculations[0].Customer = "Café Zürich"
	ds.Calculations[0].Description = "Rénovation de la façade"
	for i := range ds.Calculations[0].Items {
		ds.Calculations[0].Items[i].Description += " à l'étage"
	}
	for i := range ds.States {
		ds.States[i].Description = "État " + ds.States[i].Description
	}
	for i := range ds.Groups {
		ds.Groups[i].Description += " généraux"
	}
	for i := range ds.Products {
		ds.Products[i].Description += " spécial"
	}
	for i := range ds.Tasks {
		ds.Tasks[i].Description += " réparée"
	}
	for i := range ds.Logs {
		ds.Logs[i].Message = "Übertragung: " + ds.Logs[i].Message
	}

	for _, kind := range report.Kinds() {
		t.Run(kind, func(t *testing.T) {
			r, err := report.New(kind, ds, report.Options{ID: 12, MinMargin: 0.1})
			require.NoError(t, err)
			var data []byte
			require.NotPanics(t, func() { data, err = report.Generate(r, nil) })
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		})
	}
}

func TestGenerateLogs(t *testing.T) {
	ds := loadDataset(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r, err := report.New(report.KindStates, ds, report.Options{})
	require.NoError(t, err)
	data, err := report.Generate(r, logger, calcpdf.WithCompany(calcpdf.Company{Name: "Acme"}))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "states", entry.Data["kind"])
	assert.Equal(t, 1, entry.Data["pages"])
	assert.Equal(t, len(data), entry.Data["bytes"])
}

func TestBuild(t *testing.T) {
	ds := loadDataset(t)
	r, err := report.New(report.KindCalculation, ds, report.Options{ID: 12})
	require.NoError(t, err)
	doc, err := report.Build(r, calcpdf.WithTitle("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "Calculation n°12", doc.ReportTitle())
	assert.GreaterOrEqual(t, doc.PageNo(), 1)
}

func TestGenerateNoData(t *testing.T) {
	r := report.NewStatesReport(&model.Dataset{}, report.Options{})
	_, err := report.Generate(r, nil)
	assert.ErrorIs(t, err, calcpdf.ErrNoData)
}

func TestCalculationReport(t *testing.T) {
	ds := loadDataset(t)
	r, err := report.NewCalculationReport(ds, report.Options{ID: 12, MinMargin: 0.1})
	require.NoError(t, err)
	assert.Equal(t, "Calculation n°12", r.Title())
	assert.False(t, r.IsDraft())

	out := render(t, r)
	for _, want := range []string{"Acme Corp", "Materials", "Masonry", "Concrete blocks", "Total Labour", "Overall total", "Overall margin"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "below the minimum margin")
	assert.NotContains(t, out, report.DraftText)
}

func TestCalculationBelowMinimum(t *testing.T) {
	ds := loadDataset(t)
	r, err := report.NewCalculationReport(ds, report.Options{ID: 12, MinMargin: 0.5})
	require.NoError(t, err)
	assert.True(t, r.Totals().IsBelow(0.5))
	assert.Contains(t, render(t, r), "below the minimum margin")
}

func TestCalculationDraft(t *testing.T) {
	ds := loadDataset(t)
	r, err := report.NewCalculationReport(ds, report.Options{ID: 12, DraftStates: []string{"open"}})
	require.NoError(t, err)
	assert.True(t, r.IsDraft())
	assert.Contains(t, render(t, r), report.DraftText)
}

func TestEmptyCalculation(t *testing.T) {
	ds := loadDataset(t)
	r, err := report.NewCalculationReport(ds, report.Options{ID: 13})
	require.NoError(t, err)
	out := render(t, r)
	assert.Contains(t, out, "No item.")
	assert.NotContains(t, out, "Overall total")
}

func TestCalculationCodes(t *testing.T) {
	ds := loadDataset(t)
	r, err := report.NewCalculationReport(ds, report.Options{
		ID:        12,
		QRBaseURL: "https://calc.example/calculation/",
		PDF417:    true,
	})
	require.NoError(t, err)
	out := render(t, r)
	assert.Contains(t, out, "https://calc.example/calculation/12")
}

func TestProductsReport(t *testing.T) {
	ds := loadDataset(t)
	ds.Products = append(ds.Products, model.Product{Group: "Materials", Category: "Masonry", Description: "Old bricks", Hidden: true})
	r := report.NewProductsReport(ds, report.Options{})

	var got []string
	for _, p := range r.Products() {
		got = append(got, p.Description)
	}
	assert.Equal(t, []string{"Coping stones", "Concrete blocks", "Mortar", "Concrete mixer"}, got)

	out := render(t, r)
	assert.Contains(t, out, "Materials / Masonry")
	assert.Contains(t, out, "4 products")
	assert.NotContains(t, out, "Old bricks")
}

func TestTasksReport(t *testing.T) {
	ds := loadDataset(t)
	out := render(t, report.NewTasksReport(ds, report.Options{}))
	assert.Contains(t, out, "Wall building \\(Work\\)")
	assert.Contains(t, out, "Total per m2")
	assert.Contains(t, out, "Margin from")
}

func TestLogReportColors(t *testing.T) {
	ds := loadDataset(t)
	r := report.NewLogReport(ds, report.Options{})
	c, ok := r.LevelColor("ERROR")
	require.True(t, ok)
	assert.Equal(t, table.NewColor(220, 53, 69), c)

	custom := report.NewLogReport(ds, report.Options{LevelColors: map[string]table.Color{"info": table.Green()}})
	_, ok = custom.LevelColor("error")
	assert.False(t, ok)

	out := render(t, r)
	assert.Contains(t, out, "security")
	assert.Contains(t, out, "WARNING")
}

func TestMarginsReport(t *testing.T) {
	ds := loadDataset(t)
	out := render(t, report.NewMarginsReport(ds, report.Options{}))
	assert.Contains(t, out, "Minimum")

	_, err := report.Generate(report.NewMarginsReport(&model.Dataset{}, report.Options{}), nil)
	assert.ErrorIs(t, err, calcpdf.ErrNoData)
}
