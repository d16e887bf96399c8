package hdrio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionOf(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{filename: "a.pfm", want: "pfm"},
		{filename: "dir/a.b.exr", want: "exr"},
		{filename: "a.PFM", want: "PFM"}, // no normalization
		{filename: "a.", want: ""},
	}
	for _, tc := range cases {
		got, err := ExtensionOf(tc.filename)
		require.NoError(t, err, tc.filename)
		assert.Equal(t, tc.want, got, tc.filename)
	}
}

func TestExtensionOfMissing(t *testing.T) {
	_, err := ExtensionOf("noext")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLoadDispatch(t *testing.T) {
	img := testTensor(t, 2, 2)
	dir := t.TempDir()
	path := filepath.Join(dir, "img.pfm")
	require.NoError(t, SavePFM(img, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)

	_, err = Load(filepath.Join(dir, "img.xyz"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "noext"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Extension match is case-sensitive.
	_, err = Load(filepath.Join(dir, "img.PFM"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveDispatch(t *testing.T) {
	img := testTensor(t, 2, 2)
	dir := t.TempDir()

	assert.ErrorIs(t, Save(img, filepath.Join(dir, "img.xyz")), ErrUnsupportedFormat)
	assert.ErrorIs(t, Save(img, filepath.Join(dir, "noext")), ErrInvalidArgument)
}

// Each extension must encode its own on-disk format.
func TestSaveDispatchEncodesMatchingFormat(t *testing.T) {
	img := testTensor(t, 2, 2)
	dir := t.TempDir()

	for _, ext := range []string{"pfm", "ppm", "exr"} {
		path := filepath.Join(dir, "img."+ext)
		require.NoError(t, Save(img, path))

		f, err := os.Open(path)
		require.NoError(t, err)
		got, err := DetectFormat(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		assert.Equal(t, ext, got)
	}
}
