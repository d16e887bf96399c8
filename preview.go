package hdrio

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// ToneMap renders t as an 8-bit RGBA image using the same display-gamma
// transfer as the PPM encoder. Alpha is fully opaque.
func ToneMap(t *Tensor) (*image.RGBA, error) {
	if err := requireRGB(t); err != nil {
		return nil, err
	}
	height, width := t.Dims[0], t.Dims[1]
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := t.Offset(x, y)
			dst := img.PixOffset(x, y)
			img.Pix[dst] = toneByte(t.Pix[src])
			img.Pix[dst+1] = toneByte(t.Pix[src+1])
			img.Pix[dst+2] = toneByte(t.Pix[src+2])
			img.Pix[dst+3] = 0xff
		}
	}
	return img, nil
}

// Thumbnail tone maps t and scales it down, preserving aspect ratio, so
// that neither side exceeds maxDim. Images already within bounds are
// returned unscaled.
func Thumbnail(t *Tensor, maxDim int) (image.Image, error) {
	if maxDim <= 0 {
		return nil, fmt.Errorf("%w: thumbnail size must be positive", ErrInvalidArgument)
	}
	img, err := ToneMap(t)
	if err != nil {
		return nil, err
	}
	if t.Dims[0] <= maxDim && t.Dims[1] <= maxDim {
		return img, nil
	}
	return resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3), nil
}
