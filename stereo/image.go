// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import (
	"fmt"
	"image"
)

// Downsample reduces img by factor in each direction by keeping only
// the pixels at coordinates which are multiples of factor. No
// averaging is done. Any rows or columns left over at the right and
// bottom are discarded.
func Downsample(img *image.RGBA, factor int) (*image.RGBA, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: downsample factor must be positive, got %d", ErrInvalidConfiguration, factor)
	}
	b := img.Bounds()
	w, h := b.Dx()/factor, b.Dy()/factor
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := img.PixOffset(b.Min.X+x*factor, b.Min.Y+y*factor)
			di := small.PixOffset(x, y)
			copy(small.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return small, nil
}

// luma converts a colour to greyscale with the Rec. 709 weights. The
// sum is done in single precision and truncated, not rounded. Each
// product is converted explicitly so the compiler can't fuse them.
func luma(r, g, b uint8) uint8 {
	y := float32(0.2126*float32(r)) + float32(0.7152*float32(g)) + float32(0.0722*float32(b))
	return uint8(y)
}

// Greyscale converts img to a single channel image, ignoring alpha
func Greyscale(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			p := img.Pix[i : i+4]
			gray.Pix[gray.PixOffset(x, y)] = luma(p[0], p[1], p[2])
		}
	}
	return gray
}
