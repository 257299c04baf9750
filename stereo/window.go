// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import (
	"image"

	"rescribe.xyz/depthmap/integralimg"
)

// Means holds the mean value of the square window around each pixel
// of an image. Only pixels whose whole window is inside the image
// have a mean; the rest are border pixels.
type Means struct {
	Width, Height, Radius int
	mean                  []float64
}

func newMeans(b image.Rectangle, radius int) *Means {
	return &Means{
		Width:  b.Dx(),
		Height: b.Dy(),
		Radius: radius,
		mean:   make([]float64, b.Dx()*b.Dy()),
	}
}

// Valid reports whether the window around x,y is fully inside the
// image, and therefore has a mean
func (m *Means) Valid(x, y int) bool {
	return x >= m.Radius && x < m.Width-m.Radius && y >= m.Radius && y < m.Height-m.Radius
}

// Mean returns the mean of the window around x,y. The second return
// value is false for border pixels.
func (m *Means) Mean(x, y int) (float64, bool) {
	if !m.Valid(x, y) {
		return 0, false
	}
	return m.mean[y*m.Width+x], true
}

// WindowMeans calculates the mean of the (2*radius+1) square window
// around every non-border pixel by adding up each window in turn
func WindowMeans(img *image.Gray, radius int) *Means {
	b := img.Bounds()
	m := newMeans(b, radius)
	n := float64((2*radius + 1) * (2*radius + 1))
	for y := radius; y < m.Height-radius; y++ {
		for x := radius; x < m.Width-radius; x++ {
			sum := 0
			for wy := y - radius; wy <= y+radius; wy++ {
				for wx := x - radius; wx <= x+radius; wx++ {
					sum += int(img.GrayAt(wx, wy).Y)
				}
			}
			m.mean[y*m.Width+x] = float64(sum) / n
		}
	}
	return m
}

// IntegralWindowMeans does the same as WindowMeans, using an integral
// image so that each window takes constant time
func IntegralWindowMeans(img *image.Gray, radius int) *Means {
	b := img.Bounds()
	m := newMeans(b, radius)
	integral := integralimg.ToIntegralImg(img)
	for y := radius; y < m.Height-radius; y++ {
		for x := radius; x < m.Width-radius; x++ {
			m.mean[y*m.Width+x] = integral.MeanWindow(x, y, radius)
		}
	}
	return m
}
