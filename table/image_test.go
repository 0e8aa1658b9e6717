package table_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/lvillar/calcpdf/table"
)

func writeImage(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	switch filepath.Ext(name) {
	case ".bmp":
		require.NoError(t, bmp.Encode(f, img))
	default:
		require.NoError(t, png.Encode(f, img))
	}
	return path
}

func TestNewImageMissingFile(t *testing.T) {
	_, err := table.NewImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, table.ErrImageNotFound)

	_, err = table.NewImageCell(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, table.ErrImageNotFound)
}

func TestImageResize(t *testing.T) {
	img, err := table.NewImage(writeImage(t, "logo.png", 40, 20))
	require.NoError(t, err)

	w, h := img.NaturalSize()
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)

	img.Resize(10, 0)
	assert.Equal(t, 20, img.Width())
	assert.Equal(t, 10, img.Height())

	img.Resize(0, 15)
	assert.Equal(t, 15, img.Width())
	assert.Equal(t, 8, img.Height()) // 7.5 rounded

	img.Resize(0, 0)
	assert.Equal(t, 40, img.Width())
	assert.Equal(t, 20, img.Height())
}

func TestImageCellRow(t *testing.T) {
	pdf := newTestPDF()
	tb, rec := newRecordedBuilder(pdf)
	tb.AddColumns(table.LeftColumn("Logo", 30, true), table.LeftColumn("Name", 60, false))

	cell, err := table.NewImageCell(writeImage(t, "logo.png", 60, 40), table.WithAlign(table.AlignCenter))
	require.NoError(t, err)
	require.True(t, cell.IsImage())
	require.NoError(t, tb.StartRow(nil).AddCell(cell).Add("Acme").EndRow())

	require.Len(t, rec.events, 1) // image cells do not draw text
	want := table.PixelsToUnits(pdf, 40) + 2*pdf.GetCellMargin()
	assert.InDelta(t, want, rec.events[0].Bounds.H, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
}

func TestImageCellTranscodesBMP(t *testing.T) {
	pdf := newTestPDF()
	tb := table.New(pdf)
	tb.AddColumn(table.LeftColumn("Picture", 30, false))

	cell, err := table.NewImageCell(writeImage(t, "picture.bmp", 16, 16))
	require.NoError(t, err)
	require.NoError(t, tb.Row(nil, cell))

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.Greater(t, buf.Len(), 0)
}
