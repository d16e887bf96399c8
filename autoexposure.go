package hdrio

import "math"

func luminance(r, g, b float32) float32 {
	return lumR*r + lumG*g + lumB*b
}

// AutoExposure computes an exposure multiplier that maps the log-average
// luminance of t onto mid-gray. Pixels at or below lumEpsilon are treated
// as black and contribute nothing; if every pixel is black the scale is 1.
//
// Rows are reduced in contiguous chunks on separate goroutines, each with
// a private (sum, count) pair merged after all chunks finish. Results are
// equivalent across chunkings up to floating-point reassociation. The call
// blocks until the whole image has been reduced.
func AutoExposure(t *Tensor) (float32, error) {
	if err := requireRGB(t); err != nil {
		return 0, err
	}
	height, width := t.Dims[0], t.Dims[1]

	chunks := chunkCount(height)
	sums := make([]float64, chunks)
	counts := make([]int64, chunks)
	parallelChunks(height, chunks, func(chunk, start, end int) {
		var sum float64
		var n int64
		for y := start; y < end; y++ {
			row := t.Pix[y*width*3 : (y+1)*width*3]
			for x := 0; x < width; x++ {
				l := luminance(row[x*3], row[x*3+1], row[x*3+2])
				if l > lumEpsilon {
					sum += math.Log2(float64(l))
					n++
				}
			}
		}
		sums[chunk] = sum
		counts[chunk] = n
	})

	var sum float64
	var n int64
	for i := range sums {
		sum += sums[i]
		n += counts[i]
	}
	if n == 0 {
		return 1, nil
	}
	return autoExposureKey / exp2f(float32(sum/float64(n))), nil
}
