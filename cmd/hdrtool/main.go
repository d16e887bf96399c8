package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/vearutop/hdrio"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "convert":
		if err := runConvert(os.Args[2:]); err != nil {
			fail(err)
		}
	case "exposure":
		if err := runExposure(os.Args[2:]); err != nil {
			fail(err)
		}
	case "resize":
		if err := runResize(os.Args[2:]); err != nil {
			fail(err)
		}
	case "thumb":
		if err := runThumb(os.Args[2:]); err != nil {
			fail(err)
		}
	case "detect":
		if err := runDetect(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: hdrtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  convert  -in input.pfm -out output.exr")
	fmt.Fprintln(os.Stderr, "  exposure -in input.pfm")
	fmt.Fprintln(os.Stderr, "  resize   -in input.pfm -out output.pfm -w 1920 -h 1080 [-interp bilinear]")
	fmt.Fprintln(os.Stderr, "  thumb    -in input.exr -out thumb.png [-max 256]")
	fmt.Fprintln(os.Stderr, "  detect   -in input")
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	t, err := hdrio.Load(*inPath)
	if err != nil {
		return err
	}
	return hdrio.Save(t, *outPath)
}

func runExposure(args []string) error {
	fs := flag.NewFlagSet("exposure", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	t, err := hdrio.Load(*inPath)
	if err != nil {
		return err
	}
	scale, err := hdrio.AutoExposure(t)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, scale)
	return nil
}

func runResize(args []string) error {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image")
	width := fs.Int("w", 0, "target width")
	height := fs.Int("h", 0, "target height")
	interp := fs.String("interp", "lanczos3", "nearest|bilinear|bicubic|mitchell|lanczos2|lanczos3")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" || *width <= 0 || *height <= 0 {
		return errors.New("missing required arguments")
	}
	mode, err := parseInterpolation(*interp)
	if err != nil {
		return err
	}
	t, err := hdrio.Load(*inPath)
	if err != nil {
		return err
	}
	resized, err := hdrio.Resize(t, *width, *height, mode)
	if err != nil {
		return err
	}
	return hdrio.Save(resized, *outPath)
}

func runThumb(args []string) error {
	fs := flag.NewFlagSet("thumb", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output PNG")
	maxDim := fs.Int("max", 256, "longest thumbnail side")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	t, err := hdrio.Load(*inPath)
	if err != nil {
		return err
	}
	img, err := hdrio.Thumbnail(t, *maxDim)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(*outPath))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()
	name, err := hdrio.DetectFormat(f)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, name)
	return nil
}

func parseInterpolation(name string) (hdrio.Interpolation, error) {
	switch strings.ToLower(name) {
	case "nearest":
		return hdrio.InterpolationNearest, nil
	case "bilinear":
		return hdrio.InterpolationBilinear, nil
	case "bicubic":
		return hdrio.InterpolationBicubic, nil
	case "mitchell":
		return hdrio.InterpolationMitchellNetravali, nil
	case "lanczos2":
		return hdrio.InterpolationLanczos2, nil
	case "lanczos3":
		return hdrio.InterpolationLanczos3, nil
	}
	return 0, fmt.Errorf("unknown interpolation %q", name)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
