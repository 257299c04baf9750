// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import (
	"fmt"
	"image"
	"math"
)

// window copies the pixels of the square window around x,y into buf,
// row by row, minus mean. It returns the sum of the squares of the
// values stored.
func window(img *image.Gray, x, y, radius int, mean float64, buf []float64) float64 {
	var sq float64
	i := 0
	for wy := y - radius; wy <= y+radius; wy++ {
		for wx := x - radius; wx <= x+radius; wx++ {
			d := float64(img.GrayAt(wx, wy).Y) - mean
			buf[i] = d
			sq += d * d
			i++
		}
	}
	return sq
}

// zncc scores how well two windows match, given the values of each
// with their means subtracted, and the sums of their squares. The
// result is between -1 and 1, where 1 is a perfect match. A window
// with no variation can't be correlated with anything, so scores 0.
func zncc(src []float64, srcSq float64, ref []float64, refSq float64) float64 {
	if srcSq == 0 || refSq == 0 {
		return 0
	}
	var num float64
	for i := range src {
		num += src[i] * ref[i]
	}
	return num / (math.Sqrt(srcSq) * math.Sqrt(refSq))
}

// searchOrder returns the first and last disparities to try and the
// step between them, so that the disparity nearest 0 is always tried
// first. As candidates further from 0 push the reference window
// further towards the image edge, this means that once a window is
// out of bounds every remaining candidate would be too.
func searchOrder(minDisp, maxDisp int) (first, last, step int) {
	if maxDisp <= 0 {
		return maxDisp, minDisp, -1
	}
	return minDisp, maxDisp, 1
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Match finds the disparity of each pixel in src by comparing the
// window around it with windows of ref along the same row, at each
// disparity between minDisp and maxDisp, using Zero-mean Normalized
// Cross-Correlation. A disparity d compares src at x with ref at x-d,
// so with the left image as src the range is 0 to max, and with the
// right image as src it is -max to 0.
//
// The returned image holds the absolute value of the best scoring
// disparity for each pixel; ties go to the disparity closest to 0.
// Pixels whose window doesn't fit inside the image are left at 0, and
// the search for a pixel stops as soon as the reference window no
// longer fits.
func Match(src *image.Gray, srcMeans *Means, ref *image.Gray, refMeans *Means, minDisp, maxDisp, radius int) (*image.Gray, error) {
	b := src.Bounds()
	if !b.Eq(ref.Bounds()) {
		return nil, fmt.Errorf("%w: source is %v but reference is %v", ErrDimensionMismatch, b, ref.Bounds())
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: block radius must not be negative, got %d", ErrInvalidConfiguration, radius)
	}
	if minDisp > maxDisp {
		return nil, fmt.Errorf("%w: disparity range %d to %d is empty", ErrInvalidConfiguration, minDisp, maxDisp)
	}
	if abs(minDisp) > 255 || abs(maxDisp) > 255 {
		return nil, fmt.Errorf("%w: disparity range %d to %d doesn't fit in a byte", ErrInvalidConfiguration, minDisp, maxDisp)
	}
	for _, m := range []*Means{srcMeans, refMeans} {
		if m.Width != b.Dx() || m.Height != b.Dy() || m.Radius != radius {
			return nil, fmt.Errorf("%w: window means are for a %dx%d image with radius %d, expected %dx%d with radius %d", ErrDimensionMismatch, m.Width, m.Height, m.Radius, b.Dx(), b.Dy(), radius)
		}
	}

	w, h := b.Dx(), b.Dy()
	disp := image.NewGray(image.Rect(0, 0, w, h))
	n := (2*radius + 1) * (2*radius + 1)
	srcWin := make([]float64, n)
	refWin := make([]float64, n)
	first, last, step := searchOrder(minDisp, maxDisp)

	for y := radius; y < h-radius; y++ {
		for x := radius; x < w-radius; x++ {
			srcMean, _ := srcMeans.Mean(x, y)
			srcSq := window(src, x, y, radius, srcMean, srcWin)

			best := math.Inf(-1)
			bestDisp := 0
			for d := first; ; d += step {
				offset := x - d
				if offset-radius < 0 || offset+radius >= w {
					break
				}
				refMean, _ := refMeans.Mean(offset, y)
				refSq := window(ref, offset, y, radius, refMean, refWin)
				score := zncc(srcWin, srcSq, refWin, refSq)
				if score > best {
					best = score
					bestDisp = d
				}
				if d == last {
					break
				}
			}
			disp.Pix[disp.PixOffset(x, y)] = uint8(abs(bestDisp))
		}
	}

	return disp, nil
}
