package cursor

import (
	"errors"

	"github.com/ironsheep/image-dataset-tools/internal/imaging"
)

// stubDecoder fails for every image.
type stubDecoder struct{}

func (stubDecoder) DecodeDimensions(string) (imaging.Dimensions, error) {
	return imaging.Dimensions{}, errors.New("not an image")
}
