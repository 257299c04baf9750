// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import (
	"fmt"
	"image"
)

// CrossCheck compares two disparity maps pixel by pixel, returning a
// copy of left where every pixel that differs from the same pixel of
// right by more than threshold is set to 0, marking it as occluded.
func CrossCheck(left, right *image.Gray, threshold int) (*image.Gray, error) {
	b := left.Bounds()
	if !b.Eq(right.Bounds()) {
		return nil, fmt.Errorf("%w: left disparity map is %v but right is %v", ErrDimensionMismatch, b, right.Bounds())
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: cross check threshold must not be negative, got %d", ErrInvalidConfiguration, threshold)
	}

	checked := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			l := left.GrayAt(x, y).Y
			r := right.GrayAt(x, y).Y
			if abs(int(l)-int(r)) > threshold {
				continue
			}
			checked.Pix[checked.PixOffset(x, y)] = l
		}
	}
	return checked, nil
}
