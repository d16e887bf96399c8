package hdrio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func init() {
	registerFormat("ppm", format{decode: LoadPPM, encode: SavePPM})
}

// toneByte maps a linear sample to a display byte: gamma-encode, scale to
// [0, 255] with truncation, clamp. Negative input never wraps and NaN
// maps to black.
func toneByte(x float32) uint8 {
	if !(x > 0) {
		return 0
	}
	v := powf(x, 1/displayGamma) * 255
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// EncodePPM writes t to w as a binary (P6) PPM image, tone mapped with
// display gamma. Rows are written top-to-bottom, no flip.
func EncodePPM(w io.Writer, t *Tensor) error {
	if err := requireRGB(t); err != nil {
		return err
	}
	height, width := t.Dims[0], t.Dims[1]

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height)

	row := make([]byte, width*3)
	for h := 0; h < height; h++ {
		src := t.Pix[h*width*3 : (h+1)*width*3]
		for i, v := range src {
			row[i] = toneByte(v)
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodePPM reads a binary (P6) PPM image from r and linearizes it with
// the inverse of the EncodePPM transfer. Only max-value 255 is supported.
func DecodePPM(r io.Reader) (*Tensor, error) {
	br := bufio.NewReader(r)

	magic, err := readPNMToken(br)
	if err != nil || magic != "P6" {
		return nil, fmt.Errorf("%w: bad PPM magic %q", ErrCorruptData, magic)
	}
	width, err := readPNMInt(br)
	if err != nil {
		return nil, err
	}
	height, err := readPNMInt(br)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || width > maxDecodePixels/height {
		return nil, fmt.Errorf("%w: bad PPM dimensions %dx%d", ErrCorruptData, width, height)
	}
	maxVal, err := readPNMInt(br)
	if err != nil {
		return nil, err
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("%w: PPM max value %d (only 255 supported)", ErrUnsupportedFormat, maxVal)
	}

	t, err := NewTensor(height, width, 3)
	if err != nil {
		return nil, err
	}
	body := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, fmt.Errorf("%w: truncated PPM body: %v", ErrCorruptData, err)
	}
	for i, b := range body {
		t.Pix[i] = powf(float32(b)/255, displayGamma)
	}
	return t, nil
}

// LoadPPM reads a PPM image from path.
func LoadPPM(path string) (*Tensor, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePPM(f)
}

// SavePPM writes t to path as a PPM image.
func SavePPM(t *Tensor, path string) error {
	if err := requireRGB(t); err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := EncodePPM(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
