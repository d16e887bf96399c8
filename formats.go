package hdrio

import (
	"fmt"
	"strings"
)

// format couples the decoder and encoder for one filename extension.
type format struct {
	decode func(path string) (*Tensor, error)
	encode func(t *Tensor, path string) error
}

// formats maps a filename extension, matched case-sensitively, to its
// codec. Entries are registered by the codec files at init time and the
// table is read-only afterwards.
var formats = map[string]format{}

func registerFormat(ext string, f format) {
	formats[ext] = f
}

// ExtensionOf returns the substring after the last '.' in filename.
func ExtensionOf(filename string) (string, error) {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return "", fmt.Errorf("%w: filename %q has no extension", ErrInvalidArgument, filename)
	}
	return filename[i+1:], nil
}

// Load reads an image tensor from filename, picking the codec by extension.
func Load(filename string) (*Tensor, error) {
	ext, err := ExtensionOf(filename)
	if err != nil {
		return nil, err
	}
	f, ok := formats[ext]
	if !ok || f.decode == nil {
		return nil, fmt.Errorf("%w: no decoder for %q", ErrUnsupportedFormat, ext)
	}
	return f.decode(filename)
}

// Save writes an image tensor to filename, picking the codec by extension.
func Save(t *Tensor, filename string) error {
	ext, err := ExtensionOf(filename)
	if err != nil {
		return err
	}
	f, ok := formats[ext]
	if !ok || f.encode == nil {
		return fmt.Errorf("%w: no encoder for %q", ErrUnsupportedFormat, ext)
	}
	return f.encode(t, filename)
}
