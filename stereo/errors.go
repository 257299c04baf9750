// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package stereo

import "errors"

var (
	// ErrDimensionMismatch is returned when two images which should
	// be the same size are not
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidConfiguration is returned for parameters which can't
	// produce a meaningful result, like an even block size
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoValidPixel is returned by FillOcclusions when there is no
	// non-zero pixel to fill from
	ErrNoValidPixel = errors.New("no valid pixel")
)
