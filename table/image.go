package table

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type imageInfo struct {
	width, height int
	format        string
}

type imageKey struct {
	path    string
	size    int64
	modTime int64
}

var imageInfos, _ = lru.New[imageKey, imageInfo](256)

// Image is a picture drawn inside a cell. Sizes are in pixels (96 dpi).
type Image struct {
	path          string
	format        string
	naturalWidth  int
	naturalHeight int
	width         int
	height        int
}

// NewImage reads the dimensions of the image at path. It fails when the file
// does not exist or is not a decodable image.
func NewImage(path string) (*Image, error) {
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return nil, newError("NewImage", fmt.Errorf("%w: %s", ErrImageNotFound, path))
	}
	key := imageKey{path: path, size: st.Size(), modTime: st.ModTime().UnixNano()}
	info, ok := imageInfos.Get(key)
	if !ok {
		info, err = decodeImageInfo(path)
		if err != nil {
			return nil, newError("NewImage", err)
		}
		imageInfos.Add(key, info)
	}
	return &Image{
		path:          path,
		format:        info.format,
		naturalWidth:  info.width,
		naturalHeight: info.height,
		width:         info.width,
		height:        info.height,
	}, nil
}

func decodeImageInfo(path string) (imageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return imageInfo{}, err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return imageInfo{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return imageInfo{width: cfg.Width, height: cfg.Height, format: format}, nil
}

// Path returns the image file path.
func (img *Image) Path() string { return img.path }

// Width returns the drawn width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the drawn height in pixels.
func (img *Image) Height() int { return img.height }

// NaturalSize returns the original dimensions in pixels.
func (img *Image) NaturalSize() (width, height int) {
	return img.naturalWidth, img.naturalHeight
}

// Resize sets the drawn size keeping the natural aspect ratio. When both
// values are 0 the natural size is restored; a positive height takes
// precedence over the width.
func (img *Image) Resize(height, width int) *Image {
	switch {
	case height <= 0 && width <= 0:
		img.width, img.height = img.naturalWidth, img.naturalHeight
	case height > 0:
		img.height = height
		img.width = int(math.Round(float64(height) * float64(img.naturalWidth) / float64(max(1, img.naturalHeight))))
	default:
		img.width = width
		img.height = int(math.Round(float64(width) * float64(img.naturalHeight) / float64(max(1, img.naturalWidth))))
	}
	return img
}

// embeddable reports whether the surface can read the file directly.
func (img *Image) embeddable() bool {
	switch img.format {
	case "jpeg", "png", "gif":
		return true
	}
	return false
}

// register makes the image known to the surface. Formats the surface cannot
// embed are transcoded to PNG.
func (img *Image) register(s Surface) (string, fpdf.ImageOptions, error) {
	if img.embeddable() {
		return img.path, fpdf.ImageOptions{ImageType: strings.ToUpper(img.format)}, nil
	}
	name := img.path + "#png"
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	f, err := os.Open(img.path)
	if err != nil {
		return "", opts, err
	}
	defer f.Close()
	decoded, _, err := image.Decode(f)
	if err != nil {
		return "", opts, fmt.Errorf("decoding %s: %w", img.path, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return "", opts, err
	}
	s.RegisterImageOptionsReader(name, opts, &buf)
	return name, opts, nil
}

// Draw draws the image inside bounds. The image is always vertically
// centered; horizontally it is left aligned unless align is right, center or
// justify.
func (img *Image) Draw(s Surface, bounds Rect, align Alignment) error {
	name, opts, err := img.register(s)
	if err != nil {
		return newError("Image.Draw", err)
	}
	w := PixelsToUnits(s, float64(img.width))
	h := PixelsToUnits(s, float64(img.height))
	margin := s.GetCellMargin()
	y := bounds.Y + (bounds.H-h)/2
	var x float64
	switch align {
	case AlignRight:
		x = bounds.Right() - w - margin
	case AlignCenter, AlignJustify:
		x = bounds.X + (bounds.W-w)/2
	default:
		x = bounds.X + margin
	}
	s.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}
