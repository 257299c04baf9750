// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import (
	"fmt"
	"image"
)

// nearest searches square rings of increasing radius around x,y for a
// non-zero pixel, returning the first one found. Each ring is walked
// down its right edge, leftwards along its bottom, up its left edge
// and rightwards along its top. Points outside the image read as 0,
// so are passed over.
func nearest(img *image.Gray, x, y, maxRadius int) (uint8, bool) {
	for r := 1; r <= maxRadius; r++ {
		for yi := y - r; yi <= y+r; yi++ {
			if v := img.GrayAt(x+r, yi).Y; v != 0 {
				return v, true
			}
		}
		for xi := x + r - 1; xi >= x-r; xi-- {
			if v := img.GrayAt(xi, y+r).Y; v != 0 {
				return v, true
			}
		}
		for yi := y + r - 1; yi >= y-r; yi-- {
			if v := img.GrayAt(x-r, yi).Y; v != 0 {
				return v, true
			}
		}
		for xi := x - r + 1; xi < x+r; xi++ {
			if v := img.GrayAt(xi, y-r).Y; v != 0 {
				return v, true
			}
		}
	}
	return 0, false
}

// FillOcclusions returns a copy of disp with every 0 pixel replaced by
// the value of the nearest non-zero pixel of disp. It returns
// ErrNoValidPixel if disp has no non-zero pixels at all.
func FillOcclusions(disp *image.Gray) (*image.Gray, error) {
	b := disp.Bounds()
	anyset := false
	for y := b.Min.Y; y < b.Max.Y && !anyset; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if disp.GrayAt(x, y).Y != 0 {
				anyset = true
				break
			}
		}
	}
	if !anyset {
		return nil, fmt.Errorf("%w: all %d pixels of the disparity map are 0", ErrNoValidPixel, b.Dx()*b.Dy())
	}

	// any pixel is within this distance of every other
	maxRadius := b.Dx()
	if b.Dy() > maxRadius {
		maxRadius = b.Dy()
	}

	filled := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := disp.GrayAt(x, y).Y
			if v == 0 {
				var ok bool
				v, ok = nearest(disp, x, y, maxRadius)
				if !ok {
					return nil, fmt.Errorf("%w: nothing found within %d pixels of %d,%d", ErrNoValidPixel, maxRadius, x, y)
				}
			}
			filled.Pix[filled.PixOffset(x, y)] = v
		}
	}
	return filled, nil
}
