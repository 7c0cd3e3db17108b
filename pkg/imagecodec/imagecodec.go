// Package imagecodec reads slide images and converts them for embedding.
//
// Two representations are produced:
//
//   - For HTML, the stored bytes are embedded verbatim as a base64 data
//     URI. Nothing is re-encoded, so alpha and metadata survive.
//   - For PDF, the image is decoded to 8-bit interleaved RGB samples.
//     Alpha is dropped without compositing.
//
// PNG, JPEG and GIF are decoded by the standard library; WebP, BMP and
// TIFF decoders are registered from golang.org/x/image.
//
// Failures are reported as IMAGE_READ or IMAGE_DECODE errors carrying the
// slide's image path.
package imagecodec

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/slidelinker/pkg/errors"
)

// Source returns the raw bytes of a slide image given its project-relative
// path.
type Source interface {
	ReadImage(ctx context.Context, path string) ([]byte, error)
}

// Dir is a Source reading from a project directory on disk.
type Dir string

// ReadImage reads path relative to d. Paths that could escape d are
// rejected.
func (d Dir) ReadImage(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, errors.WrapPath(errors.ErrCodeImageRead, err, path, "read slide image")
	}
	data, err := os.ReadFile(filepath.Join(string(d), filepath.FromSlash(path)))
	if err != nil {
		return nil, errors.WrapPath(errors.ErrCodeImageRead, err, path, "read slide image")
	}
	return data, nil
}

// Memory is a Source backed by a map, keyed by project-relative path.
type Memory map[string][]byte

// ReadImage returns the stored bytes for path.
func (m Memory) ReadImage(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m[path]
	if !ok {
		return nil, errors.WrapPath(errors.ErrCodeImageRead, os.ErrNotExist, path, "read slide image")
	}
	return data, nil
}

// Pixels is a decoded image as tightly packed 8-bit RGB samples.
type Pixels struct {
	Width  int
	Height int
	RGB    []byte // len = Width*Height*3, row-major
}

// Decode decodes data into RGB samples. path is only used for error
// reporting.
func Decode(data []byte, path string) (*Pixels, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapPath(errors.ErrCodeImageDecode, err, path, "decode slide image")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.WrapPath(errors.ErrCodeImageDecode, image.ErrFormat, path, "decode slide image: empty bounds")
	}
	return &Pixels{Width: b.Dx(), Height: b.Dy(), RGB: toRGB(img)}, nil
}

// Load reads path from src and decodes it.
func Load(ctx context.Context, src Source, path string) (*Pixels, error) {
	data, err := src.ReadImage(ctx, path)
	if err != nil {
		return nil, err
	}
	return Decode(data, path)
}

// DecodeConfig returns the dimensions of an encoded image without decoding
// the pixel data.
func DecodeConfig(data []byte, path string) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, errors.WrapPath(errors.ErrCodeImageDecode, err, path, "read image header")
	}
	return cfg.Width, cfg.Height, nil
}

// EncodeBase64 returns the standard base64 encoding of data.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DataURI returns data as a base64 data URI with a sniffed media type.
func DataURI(data []byte) string {
	return "data:" + MediaType(data) + ";base64," + EncodeBase64(data)
}

// MediaType sniffs the image media type of data, falling back to
// image/png for anything it does not recognize.
func MediaType(data []byte) string {
	switch ct := http.DetectContentType(data); ct {
	case "image/png", "image/jpeg", "image/gif", "image/webp", "image/bmp":
		return ct
	}
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return "image/tiff"
	}
	return "image/png"
}

func toRGB(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, w*h*3)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := 0; x < len(row); x += 4 {
				out = append(out, row[x], row[x+1], row[x+2])
			}
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := 0; x < len(row); x += 4 {
				c := color.NRGBAModel.Convert(color.RGBA{row[x], row[x+1], row[x+2], row[x+3]}).(color.NRGBA)
				out = append(out, c.R, c.G, c.B)
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				out = append(out, c.R, c.G, c.B)
			}
		}
	}
	return out
}
