package hdrio

import (
	"fmt"
	"math"
	"sync"
)

// Interpolation selects the resampling mode for Resize.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

type kernelDef struct {
	interp Interpolation
	taps   int
	kernel func(float64) float64
}

func kernelForInterpolation(interp Interpolation) kernelDef {
	switch interp {
	case InterpolationBilinear:
		return kernelDef{interp: InterpolationBilinear, taps: 2, kernel: linearKernel}
	case InterpolationBicubic:
		return kernelDef{interp: InterpolationBicubic, taps: 4, kernel: cubicKernel}
	case InterpolationMitchellNetravali:
		return kernelDef{interp: InterpolationMitchellNetravali, taps: 4, kernel: mitchellNetravaliKernel}
	case InterpolationLanczos2:
		return kernelDef{interp: InterpolationLanczos2, taps: 4, kernel: lanczos2Kernel}
	case InterpolationLanczos3:
		return kernelDef{interp: InterpolationLanczos3, taps: 6, kernel: lanczos3Kernel}
	default:
		return kernelDef{interp: InterpolationNearest, taps: 2, kernel: nearestKernel}
	}
}

type resampleWeights struct {
	coeffs       []float32
	start        []int
	filterLength int
}

type weightsKey struct {
	src    int
	dst    int
	interp Interpolation
}

var weightsCache sync.Map

// Resize resamples t to width x height in the linear float domain and
// returns a new tensor; t is not modified. All channel counts of a valid
// tensor are handled.
func Resize(t *Tensor, width, height int, interp Interpolation) (*Tensor, error) {
	if t == nil || t.Layout != LayoutHWC {
		return nil, fmt.Errorf("%w: image must use HWC layout", ErrInvalidArgument)
	}
	out, err := NewTensor(height, width, t.Dims[2])
	if err != nil {
		return nil, err
	}
	if interp == InterpolationNearest {
		resizeNearest(out, t)
		return out, nil
	}
	resample(out, t, kernelForInterpolation(interp))
	return out, nil
}

func resizeNearest(dst, src *Tensor) {
	srcH, srcW, c := src.Dims[0], src.Dims[1], src.Dims[2]
	dstH, dstW := dst.Dims[0], dst.Dims[1]
	parallelFor(dstH, func(start, end int) {
		for y := start; y < end; y++ {
			sy := y * srcH / dstH
			for x := 0; x < dstW; x++ {
				sx := x * srcW / dstW
				copy(dst.Pix[(y*dstW+x)*c:(y*dstW+x+1)*c], src.Pix[(sy*srcW+sx)*c:(sy*srcW+sx+1)*c])
			}
		}
	})
}

// resample runs a separable two-pass filter: horizontal into a temporary
// srcH x dstW plane set, then vertical into the destination.
func resample(dst, src *Tensor, def kernelDef) {
	srcH, srcW, c := src.Dims[0], src.Dims[1], src.Dims[2]
	dstH, dstW := dst.Dims[0], dst.Dims[1]

	wx := getWeights(srcW, dstW, def, float64(srcW)/float64(dstW))
	wy := getWeights(srcH, dstH, def, float64(srcH)/float64(dstH))

	temp := make([]float32, srcH*dstW*c)
	parallelFor(srcH, func(start, end int) {
		for y := start; y < end; y++ {
			row := src.Pix[y*srcW*c:]
			outRow := temp[y*dstW*c:]
			for x := 0; x < dstW; x++ {
				s := wx.start[x]
				base := x * wx.filterLength
				for ch := 0; ch < c; ch++ {
					var sum float32
					for i := 0; i < wx.filterLength; i++ {
						xi := s + i
						if xi < 0 {
							xi = 0
						} else if xi >= srcW {
							xi = srcW - 1
						}
						sum += row[xi*c+ch] * wx.coeffs[base+i]
					}
					outRow[x*c+ch] = sum
				}
			}
		}
	})

	parallelFor(dstH, func(start, end int) {
		for y := start; y < end; y++ {
			s := wy.start[y]
			base := y * wy.filterLength
			row := dst.Pix[y*dstW*c:]
			for x := 0; x < dstW; x++ {
				for ch := 0; ch < c; ch++ {
					var sum float32
					for i := 0; i < wy.filterLength; i++ {
						yi := s + i
						if yi < 0 {
							yi = 0
						} else if yi >= srcH {
							yi = srcH - 1
						}
						sum += temp[(yi*dstW+x)*c+ch] * wy.coeffs[base+i]
					}
					row[x*c+ch] = sum
				}
			}
		}
	})
}

func getWeights(src, dst int, def kernelDef, scale float64) resampleWeights {
	key := weightsKey{src: src, dst: dst, interp: def.interp}
	if cached, ok := weightsCache.Load(key); ok {
		return cached.(resampleWeights)
	}
	filterLength := def.taps * int(math.Max(math.Ceil(scale), 1))
	filterFactor := math.Min(1.0/scale, 1.0)
	coeffs := make([]float32, dst*filterLength)
	start := make([]int, dst)
	for y := 0; y < dst; y++ {
		interpX := scale*(float64(y)+0.5) - 0.5
		start[y] = int(interpX) - filterLength/2 + 1
		interpX -= float64(start[y])
		base := y * filterLength
		var sum float64
		for i := 0; i < filterLength; i++ {
			in := (interpX - float64(i)) * filterFactor
			w := def.kernel(in)
			coeffs[base+i] = float32(w)
			sum += w
		}
		if sum != 0 {
			inv := float32(1.0 / sum)
			for i := 0; i < filterLength; i++ {
				coeffs[base+i] *= inv
			}
		}
	}
	weights := resampleWeights{coeffs: coeffs, start: start, filterLength: filterLength}
	weightsCache.Store(key, weights)
	return weights
}

func nearestKernel(in float64) float64 {
	if in >= -0.5 && in < 0.5 {
		return 1
	}
	return 0
}

func linearKernel(in float64) float64 {
	in = math.Abs(in)
	if in <= 1 {
		return 1 - in
	}
	return 0
}

func cubicKernel(in float64) float64 {
	in = math.Abs(in)
	if in <= 1 {
		return in*in*(1.5*in-2.5) + 1.0
	}
	if in <= 2 {
		return in*(in*(2.5-0.5*in)-4.0) + 2.0
	}
	return 0
}

func mitchellNetravaliKernel(in float64) float64 {
	in = math.Abs(in)
	if in <= 1 {
		return (7.0*in*in*in - 12.0*in*in + 5.33333333333) * 0.16666666666
	}
	if in <= 2 {
		return (-2.33333333333*in*in*in + 12.0*in*in - 20.0*in + 10.6666666667) * 0.16666666666
	}
	return 0
}

func sinc(x float64) float64 {
	x = math.Abs(x) * math.Pi
	if x >= 1.220703e-4 {
		return math.Sin(x) / x
	}
	return 1
}

func lanczos2Kernel(in float64) float64 {
	if in > -2 && in < 2 {
		return sinc(in) * sinc(in*0.5)
	}
	return 0
}

func lanczos3Kernel(in float64) float64 {
	if in > -3 && in < 3 {
		return sinc(in) * sinc(in*0.3333333333333333)
	}
	return 0
}
