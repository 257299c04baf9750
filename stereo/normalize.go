// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import (
	"fmt"
	"image"
)

// Normalize scales the disparities in disp from the range 0 to
// maxDisp to the full range of a byte, rounding down. Anything above
// maxDisp becomes 255.
func Normalize(disp *image.Gray, maxDisp int) (*image.Gray, error) {
	if maxDisp <= 0 {
		return nil, fmt.Errorf("%w: max disparity must be positive to normalize, got %d", ErrInvalidConfiguration, maxDisp)
	}
	b := disp.Bounds()
	norm := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := int(disp.GrayAt(x, y).Y) * 255 / maxDisp
			if v > 255 {
				v = 255
			}
			norm.Pix[norm.PixOffset(x, y)] = uint8(v)
		}
	}
	return norm, nil
}
