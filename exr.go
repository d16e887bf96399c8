package hdrio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrjoshuak/go-openexr/exr"
)

// The OpenEXR codec registers itself so that builds excluding this file
// fall through to the unsupported-format error in Load/Save.
func init() {
	registerFormat("exr", format{decode: LoadEXR, encode: SaveEXR})
}

var exrChannelNames = [3]string{"R", "G", "B"}

// LoadEXR reads an OpenEXR image from path. The file must carry scalar
// float planes named R, G and B over its data window; any other channel
// layout is rejected.
func LoadEXR(path string) (*Tensor, error) {
	f, err := exr.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sr, err := exr.NewScanlineReader(f)
	if err != nil {
		return nil, err
	}

	channels := sr.Header().Channels()
	for _, name := range exrChannelNames {
		if !hasEXRChannel(channels, name) {
			return nil, fmt.Errorf("%w: image must have R, G and B channels", ErrInvalidArgument)
		}
	}

	dw := sr.DataWindow()
	width, height := int(dw.Width()), int(dw.Height())
	t, err := NewTensor(height, width, 3)
	if err != nil {
		return nil, err
	}

	fb := exr.NewFrameBuffer()
	for _, name := range exrChannelNames {
		fb.Set(name, exr.NewSlice(exr.PixelTypeFloat, make([]byte, width*height*4), width, height))
	}
	sr.SetFrameBuffer(fb)
	if err := sr.ReadPixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
		return nil, err
	}

	for c, name := range exrChannelNames {
		slice := fb.Get(name)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				t.Pix[t.Offset(x, y)+c] = slice.GetFloat32(x, y)
			}
		}
	}
	return t, nil
}

// SaveEXR writes t to path as a scanline OpenEXR file with float R, G, B
// planes and ZIP (lossless) compression.
func SaveEXR(t *Tensor, path string) error {
	if err := requireRGB(t); err != nil {
		return err
	}
	height, width := t.Dims[0], t.Dims[1]

	h := exr.NewScanlineHeader(width, height)
	h.SetCompression(exr.CompressionZIP)
	channels := exr.NewChannelList()
	for _, name := range exrChannelNames {
		channels.Add(exr.Channel{Name: name, Type: exr.PixelTypeFloat, XSampling: 1, YSampling: 1})
	}
	h.SetChannels(channels)

	fb := exr.NewFrameBuffer()
	for _, name := range exrChannelNames {
		fb.Set(name, exr.NewSlice(exr.PixelTypeFloat, make([]byte, width*height*4), width, height))
	}
	for c, name := range exrChannelNames {
		slice := fb.Get(name)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				slice.SetFloat32(x, y, t.Pix[t.Offset(x, y)+c])
			}
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	sw, err := exr.NewScanlineWriter(f, h)
	if err != nil {
		f.Close()
		return err
	}
	sw.SetFrameBuffer(fb)
	dw := h.DataWindow()
	if err := sw.WritePixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
		f.Close()
		return err
	}
	if err := sw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func hasEXRChannel(cl *exr.ChannelList, name string) bool {
	if cl == nil {
		return false
	}
	for i := 0; i < cl.Len(); i++ {
		if cl.At(i).Name == name {
			return true
		}
	}
	return false
}
