package hdrio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawPFM(magic string, width, height int, scale string, samples []float32) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n%d %d\n%s\n", magic, width, height, scale)
	var b [4]byte
	for _, v := range samples {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}
	return buf.Bytes()
}

func testTensor(t *testing.T, height, width int) *Tensor {
	t.Helper()
	img, err := NewTensor(height, width, 3)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = float32(i) * 0.25
	}
	return img
}

func TestPFMRoundTrip(t *testing.T) {
	img := testTensor(t, 3, 4)

	var buf bytes.Buffer
	require.NoError(t, EncodePFM(&buf, img))

	got, err := DecodePFM(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Dims, got.Dims)
	assert.Equal(t, img.Pix, got.Pix)
}

func TestPFMRowOrderOnDisk(t *testing.T) {
	// Disk row 0 must be the last in-memory row.
	img := testTensor(t, 2, 2)

	var buf bytes.Buffer
	require.NoError(t, EncodePFM(&buf, img))

	header := []byte("PF\n2 2\n-1.0\n")
	raw := buf.Bytes()
	require.Equal(t, header, raw[:len(header)])

	body := raw[len(header):]
	require.Len(t, body, 2*2*3*4)
	first := math.Float32frombits(binary.LittleEndian.Uint32(body[:4]))
	assert.Equal(t, img.Pix[img.Offset(0, 1)], first)
	secondRow := math.Float32frombits(binary.LittleEndian.Uint32(body[2*3*4:]))
	assert.Equal(t, img.Pix[img.Offset(0, 0)], secondRow)
}

func TestPFMSinglePixelOrientation(t *testing.T) {
	img := testTensor(t, 1, 1)

	var buf bytes.Buffer
	require.NoError(t, EncodePFM(&buf, img))
	got, err := DecodePFM(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)
}

func TestPFMDecodeGrayscale(t *testing.T) {
	data := rawPFM("Pf", 2, 1, "-1.0", []float32{0.5, 2})

	got, err := DecodePFM(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 2, 1}, got.Dims)
	assert.Equal(t, []float32{0.5, 2}, got.Pix)
}

func TestPFMDecodeAppliesScale(t *testing.T) {
	data := rawPFM("Pf", 1, 1, "-2.5", []float32{2})

	got, err := DecodePFM(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, float32(5), got.Pix[0])
}

func TestPFMDecodeBadMagic(t *testing.T) {
	data := rawPFM("PX", 1, 1, "-1.0", []float32{1, 1, 1})

	_, err := DecodePFM(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestPFMDecodeBigEndianRejected(t *testing.T) {
	data := rawPFM("PF", 1, 1, "1.0", []float32{1, 1, 1})

	_, err := DecodePFM(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPFMDecodeTruncatedBody(t *testing.T) {
	data := rawPFM("PF", 2, 2, "-1.0", []float32{1, 2, 3}) // needs 12 samples

	_, err := DecodePFM(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestPFMDecodeEmptyInput(t *testing.T) {
	_, err := DecodePFM(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestPFMDecodeBadDimensions(t *testing.T) {
	for _, data := range [][]byte{
		rawPFM("PF", 0, 1, "-1.0", nil),
		[]byte("PF\nx 1\n-1.0\n"),
		// Dimensions whose product overflows int must fail, not panic
		// in allocation.
		[]byte("PF\n2147483648 2147483648\n-1.0\n"),
		[]byte("PF\n1 999999999999\n-1.0\n"),
	} {
		_, err := DecodePFM(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrCorruptData)
	}
}

func TestPFMEncodeRequiresRGB(t *testing.T) {
	gray, err := NewTensor(2, 2, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, EncodePFM(&buf, gray), ErrInvalidArgument)
}

func TestPFMFileRoundTrip(t *testing.T) {
	img := testTensor(t, 2, 3)
	path := filepath.Join(t.TempDir(), "img.pfm")

	require.NoError(t, SavePFM(img, path))
	got, err := LoadPFM(path)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)
}

func TestLoadPFMMissingFile(t *testing.T) {
	_, err := LoadPFM(filepath.Join(t.TempDir(), "nope.pfm"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
