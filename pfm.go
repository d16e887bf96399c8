package hdrio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

func init() {
	registerFormat("pfm", format{decode: LoadPFM, encode: SavePFM})
}

// DecodePFM reads a PFM (Portable FloatMap) image from r.
//
// The header is ASCII: a "PF" (RGB) or "Pf" (grayscale) magic token, width
// and height, and a scale token that doubles as the byte-order flag. Only
// little-endian bodies (negative scale) are supported. Rows are stored
// bottom-to-top on disk and flipped on load; every sample is multiplied by
// the absolute scale.
func DecodePFM(r io.Reader) (*Tensor, error) {
	br := bufio.NewReader(r)

	magic, err := readPNMToken(br)
	if err != nil {
		return nil, fmt.Errorf("%w: missing PFM header", ErrCorruptData)
	}
	var channels int
	switch magic {
	case "PF":
		channels = 3
	case "Pf":
		channels = 1
	default:
		return nil, fmt.Errorf("%w: bad PFM magic %q", ErrCorruptData, magic)
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
		return nil, fmt.Errorf("%w: bad PFM dimensions %dx%d", ErrCorruptData, width, height)
	}

	tok, err := readPNMToken(br)
	if err != nil {
		return nil, fmt.Errorf("%w: missing PFM scale", ErrCorruptData)
	}
	scale, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: bad PFM scale %q", ErrCorruptData, tok)
	}
	if scale >= 0 {
		return nil, fmt.Errorf("%w: big-endian PFM images are not supported", ErrUnsupportedFormat)
	}
	mul := float32(-scale)

	t, err := NewTensor(height, width, channels)
	if err != nil {
		return nil, err
	}

	// Disk row 0 is the bottom scanline.
	rowLen := width * channels
	row := make([]byte, rowLen*4)
	for h := 0; h < height; h++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("%w: truncated PFM body: %v", ErrCorruptData, err)
		}
		dst := t.Pix[(height-1-h)*rowLen : (height-h)*rowLen]
		for i := range dst {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(row[i*4:])) * mul
		}
	}
	return t, nil
}

// EncodePFM writes t to w as a little-endian RGB PFM image.
// The scale token is fixed at -1.0, so readers apply a unit multiplier.
func EncodePFM(w io.Writer, t *Tensor) error {
	if err := requireRGB(t); err != nil {
		return err
	}
	height, width := t.Dims[0], t.Dims[1]

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", width, height)

	// Disk rows run bottom-to-top: the first row written is the last row
	// in memory.
	rowLen := width * 3
	row := make([]byte, rowLen*4)
	for h := 0; h < height; h++ {
		src := t.Pix[(height-1-h)*rowLen : (height-h)*rowLen]
		for i, v := range src {
			binary.LittleEndian.PutUint32(row[i*4:], math.Float32bits(v))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadPFM reads a PFM image from path.
func LoadPFM(path string) (*Tensor, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePFM(f)
}

// SavePFM writes t to path as a PFM image.
func SavePFM(t *Tensor, path string) error {
	if err := requireRGB(t); err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := EncodePFM(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readPNMToken skips leading whitespace, reads one token, and consumes
// exactly one trailing whitespace byte. The single byte after the scale
// token is the header/body separator, so the body read starts cleanly.
func readPNMToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			if len(tok) == 0 {
				continue
			}
			return string(tok), nil
		default:
			tok = append(tok, b)
		}
	}
}

func readPNMInt(br *bufio.Reader) (int, error) {
	tok, err := readPNMToken(br)
	if err != nil {
		return 0, fmt.Errorf("%w: truncated header", ErrCorruptData)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: bad header token %q", ErrCorruptData, tok)
	}
	return v, nil
}
