// Package imaging is the image-decoding side of the dataset tools.
//
// The dataset pipeline needs only one thing from an image: its shape. The
// FileDecoder reads that from the file header with image.DecodeConfig and
// never decodes pixels. PNG, JPEG and GIF decoders come from the standard
// library; BMP, TIFF and WebP from golang.org/x/image.
//
// The remaining functions back the single-image tools. Inspect reads header
// metadata the same way FileDecoder does. ChannelHistogram, SaveGrayscale and
// Preview work on fully decoded images, which Cache keeps in memory between
// calls.
//
// # Channels
//
// Dataset depth is always 3: every readable image is treated as a color
// image, whatever the file stores. Channels reports what the file stores and
// is what Inspect returns:
//   - 1: gray (8 or 16 bit)
//   - 3: RGB without alpha, YCbCr (JPEG), opaque palettes
//   - 4: RGB with alpha, translucent palettes, CMYK
//
// CMYK counts four channels but has no alpha.
//
// # Thread Safety
//
// Cache is safe for concurrent use. All other functions are stateless.
package imaging
