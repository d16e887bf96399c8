package hdrio

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a caller-supplied tensor or filename
	// violating a codec precondition.
	ErrInvalidArgument = errors.New("hdrio: invalid argument")

	// ErrUnsupportedFormat is returned when no codec handles the input.
	ErrUnsupportedFormat = errors.New("hdrio: unsupported format")

	// ErrCorruptData indicates malformed or truncated image data.
	ErrCorruptData = errors.New("hdrio: corrupt data")
)

// requireRGB rejects tensors a 3-channel codec cannot consume.
func requireRGB(t *Tensor) error {
	if t == nil || t.Dims[2] != 3 || t.Layout != LayoutHWC {
		return fmt.Errorf("%w: image must have 3 channels in HWC layout", ErrInvalidArgument)
	}
	return nil
}
