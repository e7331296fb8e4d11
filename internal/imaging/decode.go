package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Dimensions is the shape of an image decoded as color: rows, columns and channels.
type Dimensions struct {
	// Height is the image height in pixels.
	Height int `json:"height"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Depth is the channel count of the color decode. It is 3 for every
	// readable image; see Channels for what the file itself stores.
	Depth int `json:"depth"`

	// Format is the name reported by the registered decoder ("png", "jpeg", ...).
	Format string `json:"format"`
}

// FileDecoder reads image headers from disk. It never decodes pixel data.
//
// The zero value is ready to use.
type FileDecoder struct{}

// DecodeDimensions opens path and decodes only the image configuration.
// Gray and alpha images report the same depth as RGB ones, since the pipeline
// treats every image as a three-channel color image.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a PNG, JPEG, GIF, BMP, TIFF or WebP image
func (FileDecoder) DecodeDimensions(path string) (Dimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to decode image header: %w", err)
	}

	return Dimensions{
		Height: cfg.Height,
		Width:  cfg.Width,
		Depth:  colorDepth,
		Format: format,
	}, nil
}

// colorDepth is the channel count of an image decoded as color.
const colorDepth = 3

// Channels returns the number of color channels stored by a color model.
//
// Gray models have one channel. Opaque RGB-like models (RGBA written without
// alpha, YCbCr, opaque palettes) have three. Models that carry alpha, and
// CMYK, have four. Unknown models are reported as three channels.
func Channels(m color.Model) int {
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}

	switch m {
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel, color.CMYKModel:
		return 4
	default:
		return 3
	}
}

// hasAlpha reports whether a color model carries an alpha channel. CMYK has
// four channels but no alpha.
func hasAlpha(m color.Model) bool {
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}

	switch m {
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return true
	default:
		return false
	}
}

// bitDepth reports "16-bit" for models with 16-bit components, "8-bit" otherwise.
func bitDepth(m color.Model) string {
	switch m {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model, color.Alpha16Model:
		return "16-bit"
	default:
		return "8-bit"
	}
}
