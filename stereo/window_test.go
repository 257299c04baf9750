// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import (
	"fmt"
	"image"
	"math"
	"testing"
)

type meansFunc func(*image.Gray, int) *Means

var meansFuncs = []struct {
	name string
	fn   meansFunc
}{
	{"direct", WindowMeans},
	{"integral", IntegralWindowMeans},
}

func TestWindowMeansBorder(t *testing.T) {
	img := texturedImg(13, 10, 0)
	for _, f := range meansFuncs {
		for _, radius := range []int{0, 1, 4, 7} {
			t.Run(fmt.Sprintf("%s_r%d", f.name, radius), func(t *testing.T) {
				m := f.fn(img, radius)
				for y := 0; y < 10; y++ {
					for x := 0; x < 13; x++ {
						_, ok := m.Mean(x, y)
						border := x < radius || y < radius || x >= 13-radius || y >= 10-radius
						if ok == border {
							t.Errorf("Pixel %d,%d has mean: %v, but border: %v", x, y, ok, border)
						}
					}
				}
				if _, ok := m.Mean(-1, 5); ok {
					t.Errorf("Mean found outside image")
				}
			})
		}
	}
}

func TestWindowMeansUniform(t *testing.T) {
	for _, f := range meansFuncs {
		for _, v := range []uint8{0, 1, 77, 255} {
			t.Run(fmt.Sprintf("%s_%d", f.name, v), func(t *testing.T) {
				m := f.fn(uniformImg(20, 15, v), 4)
				for y := 4; y < 11; y++ {
					for x := 4; x < 16; x++ {
						mean, ok := m.Mean(x, y)
						if !ok {
							t.Fatalf("No mean for %d,%d", x, y)
						}
						if mean != float64(v) {
							t.Fatalf("Mean at %d,%d is %f, expected %d", x, y, mean, v)
						}
					}
				}
			})
		}
	}
}

func TestWindowMeansAgree(t *testing.T) {
	img := texturedImg(31, 23, 5)
	for _, radius := range []int{1, 4, 7} {
		t.Run(fmt.Sprintf("r%d", radius), func(t *testing.T) {
			direct := WindowMeans(img, radius)
			integral := IntegralWindowMeans(img, radius)
			for y := 0; y < 23; y++ {
				for x := 0; x < 31; x++ {
					dm, dok := direct.Mean(x, y)
					im, iok := integral.Mean(x, y)
					if dok != iok {
						t.Fatalf("Validity differs at %d,%d", x, y)
					}
					if math.Abs(dm-im) > 1e-9 {
						t.Fatalf("Means differ at %d,%d: %f vs %f", x, y, dm, im)
					}
				}
			}
		})
	}
}

func TestWindowMeansValue(t *testing.T) {
	img := grayFrom(3, 3,
		1, 2, 3,
		4, 5, 6,
		7, 8, 9)
	for _, f := range meansFuncs {
		m := f.fn(img, 1)
		mean, ok := m.Mean(1, 1)
		if !ok || mean != 5 {
			t.Errorf("%s: got mean %f (%v), expected 5", f.name, mean, ok)
		}
	}
}
