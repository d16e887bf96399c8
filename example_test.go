package hdrio_test

import (
	"fmt"
	"path/filepath"

	"github.com/vearutop/hdrio"
)

func ExampleLoad() {
	img, err := hdrio.Load(filepath.FromSlash("testdata/scene.pfm"))
	if err != nil {
		return
	}

	scale, err := hdrio.AutoExposure(img)
	if err != nil {
		return
	}
	for i := range img.Pix {
		img.Pix[i] *= scale
	}

	_ = hdrio.Save(img, filepath.FromSlash("testdata/scene_exposed.exr"))
	fmt.Println(scale)
}

func ExampleThumbnail() {
	img, err := hdrio.Load(filepath.FromSlash("testdata/scene.exr"))
	if err != nil {
		return
	}

	_, _ = hdrio.Thumbnail(img, 256)
}
