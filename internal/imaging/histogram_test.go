package imaging

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func solid(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestChannelHistogram_Solid(t *testing.T) {
	h := ChannelHistogram(solid(4, 4, color.RGBA{255, 0, 0, 255}))

	if h.Pixels != 16 {
		t.Errorf("Pixels: got %d, want 16", h.Pixels)
	}
	if len(h.Red.Bins) != 256 {
		t.Fatalf("Red bins: got %d, want 256", len(h.Red.Bins))
	}
	if h.Red.Bins[255] != 16 || h.Green.Bins[0] != 16 || h.Blue.Bins[0] != 16 {
		t.Errorf("bins: red[255]=%d green[0]=%d blue[0]=%d, want 16 each",
			h.Red.Bins[255], h.Green.Bins[0], h.Blue.Bins[0])
	}
	if h.Red.Mean != 255 || h.Red.Peak != 255 {
		t.Errorf("red: mean %v peak %d, want 255", h.Red.Mean, h.Red.Peak)
	}
	if h.Green.Mean != 0 || h.Green.Peak != 0 {
		t.Errorf("green: mean %v peak %d, want 0", h.Green.Mean, h.Green.Peak)
	}
	if h.MeanColor != "#ff0000" {
		t.Errorf("MeanColor: got %s, want #ff0000", h.MeanColor)
	}
	if h.MeanHSL.H != 0 || h.MeanHSL.S != 100 || h.MeanHSL.L != 50 {
		t.Errorf("MeanHSL: got %+v, want {0 100 50}", h.MeanHSL)
	}
}

func TestChannelHistogram_Split(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 0, 255})
	img.Set(2, 0, color.RGBA{100, 100, 100, 255})
	img.Set(3, 0, color.RGBA{200, 200, 200, 255})

	h := ChannelHistogram(img)
	if h.Red.Mean != 75 {
		t.Errorf("mean: got %v, want 75", h.Red.Mean)
	}
	if h.Red.Peak != 0 {
		t.Errorf("peak: got %d, want 0", h.Red.Peak)
	}
}

func TestSaveGrayscale(t *testing.T) {
	img := solid(8, 6, color.RGBA{200, 30, 30, 255})

	tests := []struct {
		ext          string
		wantChannels int
	}{
		{".png", 1},
		{".jpg", 1},
		{".tif", 1},
		// BMP stores 8-bit gray as a gray palette.
		{".bmp", 3},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "gray"+tt.ext)
			if err := SaveGrayscale(img, out); err != nil {
				t.Fatalf("SaveGrayscale failed: %v", err)
			}

			saved, err := Decode(out)
			if err != nil {
				t.Fatalf("failed to read output: %v", err)
			}
			if b := saved.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("size: got %dx%d, want 8x6", b.Dx(), b.Dy())
			}
			r, g, b, _ := saved.At(3, 3).RGBA()
			if r != g || g != b {
				t.Errorf("pixel is not gray: %d %d %d", r>>8, g>>8, b>>8)
			}

			info, err := Inspect(out)
			if err != nil {
				t.Fatalf("Inspect failed: %v", err)
			}
			if info.Channels != tt.wantChannels {
				t.Errorf("Channels: got %d, want %d", info.Channels, tt.wantChannels)
			}
		})
	}
}

func TestSaveGrayscale_UnsupportedExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gray.xyz")
	if err := SaveGrayscale(solid(2, 2, color.White), out); err == nil {
		t.Error("SaveGrayscale should reject unknown extensions")
	}
}
