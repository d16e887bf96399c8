package hdrio

import "fmt"

// Layout identifies the axis order of a Tensor.
type Layout int

const (
	// LayoutHWC is row-major, channel-interleaved: consecutive elements vary
	// fastest over channel, then width, then height.
	LayoutHWC Layout = iota
)

// Tensor stores a linear-light image as a fixed-shape float32 buffer.
// The shape is immutable once created; the content is not.
// Pixel values are scene-referred (1.0 = nominal white).
type Tensor struct {
	Dims   [3]int // height, width, channels
	Layout Layout
	Pix    []float32
}

// NewTensor allocates a zeroed tensor of the given shape in HWC layout.
// Channels must be 1 or 3.
func NewTensor(height, width, channels int) (*Tensor, error) {
	if height <= 0 || width <= 0 || (channels != 1 && channels != 3) {
		return nil, fmt.Errorf("%w: invalid tensor shape %dx%dx%d", ErrInvalidArgument, height, width, channels)
	}
	return &Tensor{
		Dims:   [3]int{height, width, channels},
		Layout: LayoutHWC,
		Pix:    make([]float32, height*width*channels),
	}, nil
}

// Height returns the number of rows.
func (t *Tensor) Height() int { return t.Dims[0] }

// Width returns the number of columns.
func (t *Tensor) Width() int { return t.Dims[1] }

// Channels returns the number of interleaved channels per pixel.
func (t *Tensor) Channels() int { return t.Dims[2] }

// Len returns the total element count.
func (t *Tensor) Len() int { return t.Dims[0] * t.Dims[1] * t.Dims[2] }

// Offset returns the index of the first channel of pixel (x, y).
func (t *Tensor) Offset(x, y int) int {
	return (y*t.Dims[1] + x) * t.Dims[2]
}

// Pixel returns the RGB triplet at (x, y), clamping coordinates to the
// image bounds. Single-channel tensors replicate the value across R, G, B.
func (t *Tensor) Pixel(x, y int) (r, g, b float32) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= t.Dims[1] {
		x = t.Dims[1] - 1
	}
	if y >= t.Dims[0] {
		y = t.Dims[0] - 1
	}
	i := t.Offset(x, y)
	if t.Dims[2] == 1 {
		v := t.Pix[i]
		return v, v, v
	}
	return t.Pix[i], t.Pix[i+1], t.Pix[i+2]
}
