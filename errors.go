// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package depthmap

import (
	"errors"

	"rescribe.xyz/depthmap/stereo"
)

// Errors returned by the depth map tools. They are wrapped with more
// detail, so use errors.Is to check for them.
var (
	ErrDecode               = errors.New("decode error")
	ErrDimensionMismatch    = stereo.ErrDimensionMismatch
	ErrInvalidConfiguration = stereo.ErrInvalidConfiguration
	ErrNoValidPixel         = stereo.ErrNoValidPixel
)
