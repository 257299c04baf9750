// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"image"
	"path/filepath"
	"testing"

	"rescribe.xyz/depthmap"
)

// texture returns a repeatable, noisy value for any point
func texture(x, y int) uint8 {
	h := uint32(x+1024)*73856093 ^ uint32(y+1024)*19349663
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return uint8(h)
}

// stereoPair creates a pair of grey RGBA images of w by h pixels, where
// everything in the right image is shift pixels to the left of where
// it is in the left image. Each textured point covers factor by factor
// pixels, so that downsampling by factor keeps one of each.
func stereoPair(w, h, shift, factor int) (*image.RGBA, *image.RGBA) {
	left := image.NewRGBA(image.Rect(0, 0, w, h))
	right := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for _, p := range []struct {
				img *image.RGBA
				v   uint8
			}{
				{left, texture(x/factor, y/factor)},
				{right, texture(x/factor+shift, y/factor)},
			} {
				i := p.img.PixOffset(x, y)
				p.img.Pix[i+0] = p.v
				p.img.Pix[i+1] = p.v
				p.img.Pix[i+2] = p.v
				p.img.Pix[i+3] = 255
			}
		}
	}
	return left, right
}

// uniformRGBA creates a w by h image of a single grey
func uniformRGBA(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
		if i%4 == 3 {
			img.Pix[i] = 255
		}
	}
	return img
}

// savePair saves a stereo pair as png files in dir
func savePair(t *testing.T, dir string, left, right image.Image) (string, string) {
	t.Helper()
	lpath := filepath.Join(dir, "im0.png")
	rpath := filepath.Join(dir, "im1.png")
	for _, f := range []struct {
		path string
		img  image.Image
	}{{lpath, left}, {rpath, right}} {
		err := depthmap.EncodeFile(f.path, f.img)
		if err != nil {
			t.Fatalf("Error saving test image %s: %v", f.path, err)
		}
	}
	return lpath, rpath
}

// testConf returns parameters suited to small synthetic images
func testConf(factor int) depthmap.Config {
	return depthmap.Config{
		BlockSize:           5,
		Downsample:          factor,
		MaxDisparity:        8 * factor,
		CrossCheckThreshold: 1,
		Integral:            true,
	}
}
