// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import (
	"image"
)

// texture returns a repeatable, noisy value for any point, so that no
// two windows of a textured image look alike
func texture(x, y int) uint8 {
	h := uint32(x+1024)*73856093 ^ uint32(y+1024)*19349663
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return uint8(h)
}

// texturedImg creates a w by h image where each pixel at x,y has the
// texture value of x+shift,y
func texturedImg(w, h, shift int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[img.PixOffset(x, y)] = texture(x+shift, y)
		}
	}
	return img
}

// grayFrom creates a w by h image from a list of pixel values
func grayFrom(w, h int, pix ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}

// uniformImg creates a w by h image with every pixel set to v
func uniformImg(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func imgsequal(img1 *image.Gray, img2 *image.Gray) bool {
	b := img1.Bounds()
	if !b.Eq(img2.Bounds()) {
		return false
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img1.GrayAt(x, y) != img2.GrayAt(x, y) {
				return false
			}
		}
	}
	return true
}
