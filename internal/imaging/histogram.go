package imaging

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// ChannelStats summarizes one color channel of a histogram.
type ChannelStats struct {
	// Bins holds the pixel count for each intensity 0-255.
	Bins []int `json:"bins"`

	// Mean is the average intensity (0-255).
	Mean float64 `json:"mean"`

	// Peak is the most frequent intensity. Ties resolve to the lowest value.
	Peak int `json:"peak"`
}

// HistogramResult contains per-channel intensity histograms of an image.
type HistogramResult struct {
	Pixels int          `json:"pixels"`
	Red    ChannelStats `json:"red"`
	Green  ChannelStats `json:"green"`
	Blue   ChannelStats `json:"blue"`

	// MeanColor is the per-channel mean as "#rrggbb".
	MeanColor string `json:"mean_color"`

	// MeanHSL is the mean color in HSL: hue 0-360, saturation and lightness 0-100.
	MeanHSL HSL `json:"mean_hsl"`
}

// HSL is a color in hue/saturation/lightness space.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// ChannelHistogram counts pixel intensities for the red, green and blue channels.
func ChannelHistogram(img image.Image) *HistogramResult {
	h := histogram.NewRGBAHistogram(img)

	bounds := img.Bounds()
	result := &HistogramResult{
		Pixels: bounds.Dx() * bounds.Dy(),
		Red:    channelStats(h.R.Bins),
		Green:  channelStats(h.G.Bins),
		Blue:   channelStats(h.B.Bins),
	}

	mean := colorful.Color{
		R: result.Red.Mean / 255,
		G: result.Green.Mean / 255,
		B: result.Blue.Mean / 255,
	}
	hue, sat, light := mean.Hsl()
	result.MeanColor = mean.Hex()
	result.MeanHSL = HSL{
		H: math.Round(hue*10) / 10,
		S: math.Round(sat*1000) / 10,
		L: math.Round(light*1000) / 10,
	}
	return result
}

func channelStats(bins []int) ChannelStats {
	out := ChannelStats{Bins: append([]int(nil), bins...)}

	var total, weighted int
	for v, n := range bins {
		total += n
		weighted += v * n
		if n > bins[out.Peak] {
			out.Peak = v
		}
	}
	if total > 0 {
		out.Mean = math.Round(float64(weighted)/float64(total)*100) / 100
	}
	return out
}

// SaveGrayscale converts img to grayscale and writes it to outPath as a
// single-channel image. The output format follows the file extension (png,
// jpg, jpeg, gif, bmp, tif, tiff).
func SaveGrayscale(img image.Image, outPath string) error {
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
	default:
		return fmt.Errorf("unsupported output format: %q", filepath.Ext(outPath))
	}

	// imaging.Grayscale keeps an NRGBA layout; encoders only write one
	// channel for *image.Gray.
	luma := imaging.Grayscale(img)
	gray := image.NewGray(luma.Bounds())
	draw.Draw(gray, gray.Bounds(), luma, luma.Bounds().Min, draw.Src)
	if err := imaging.Save(gray, outPath); err != nil {
		return fmt.Errorf("failed to save grayscale image: %w", err)
	}
	return nil
}
