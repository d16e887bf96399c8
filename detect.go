package hdrio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// DetectFormat sniffs the image format from the leading magic bytes of r
// and returns the matching extension ("pfm", "ppm" or "exr"). It reads at
// most four bytes; callers that need the stream afterwards should buffer.
func DetectFormat(r io.Reader) (string, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", fmt.Errorf("%w: file too short to identify", ErrUnsupportedFormat)
		}
		return "", err
	}

	switch {
	case magic[0] == 'P' && (magic[1] == 'F' || magic[1] == 'f') && isPnmSpace(magic[2]):
		return "pfm", nil
	case magic[0] == 'P' && magic[1] == '6' && isPnmSpace(magic[2]):
		return "ppm", nil
	case binary.LittleEndian.Uint32(magic[:]) == exrMagic:
		return "exr", nil
	}
	return "", fmt.Errorf("%w: unrecognized magic %q", ErrUnsupportedFormat, magic[:])
}

func isPnmSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
