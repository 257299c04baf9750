// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// integralimg provides summed-area tables ("integral images") of
// greyscale images, which give the sum of any rectangular part of an
// image in constant time.
package integralimg

import (
	"image"
)

// I is the Integral Image. I[y][x] is the sum of every pixel above
// and to the left of x,y, inclusive.
type I [][]uint64

// Window is a part of an Integral Image
type Window struct {
	topleft     uint64
	topright    uint64
	bottomleft  uint64
	bottomright uint64
	width       int
	height      int
}

// ToIntegralImg creates an integral image
func ToIntegralImg(img *image.Gray) I {
	b := img.Bounds()
	integral := make(I, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := make([]uint64, b.Dx())
		var rowsum uint64
		for x := 0; x < b.Dx(); x++ {
			rowsum += uint64(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			row[x] = rowsum
			if y > 0 {
				row[x] += integral[y-1][x]
			}
		}
		integral[y] = row
	}
	return integral
}

// at returns the value of the integral image at x,y, treating any
// coordinate above or left of the image as 0
func (i I) at(x, y int) uint64 {
	if x < 0 || y < 0 {
		return 0
	}
	return i[y][x]
}

// GetWindow gets the values of the corners of the square part of an
// Integral Image centred on x,y and reaching radius pixels in each
// direction, clipped to the image, plus the dimensions of the part.
func (i I) GetWindow(x, y, radius int) Window {
	if len(i) == 0 {
		return Window{}
	}
	minx, miny := x-radius, y-radius
	maxx, maxy := x+radius, y+radius
	if minx < 0 {
		minx = 0
	}
	if miny < 0 {
		miny = 0
	}
	if maxy > len(i)-1 {
		maxy = len(i) - 1
	}
	if maxx > len(i[0])-1 {
		maxx = len(i[0]) - 1
	}
	if maxx < minx || maxy < miny {
		return Window{}
	}

	return Window{
		topleft:     i.at(minx-1, miny-1),
		topright:    i.at(maxx, miny-1),
		bottomleft:  i.at(minx-1, maxy),
		bottomright: i.at(maxx, maxy),
		width:       maxx - minx + 1,
		height:      maxy - miny + 1,
	}
}

// Sum returns the sum of all pixels in a Window
func (w Window) Sum() uint64 {
	return w.bottomright + w.topleft - w.topright - w.bottomleft
}

// Size returns the total size of a Window
func (w Window) Size() int {
	return w.width * w.height
}

// Mean returns the average value of pixels in a Window
func (w Window) Mean() float64 {
	if w.Size() == 0 {
		return 0
	}
	return float64(w.Sum()) / float64(w.Size())
}

// MeanWindow calculates the mean value of a section of an Integral
// Image
func (i I) MeanWindow(x, y, radius int) float64 {
	return i.GetWindow(x, y, radius).Mean()
}
