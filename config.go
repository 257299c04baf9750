// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package depthmap

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the parameters of a depth map run. The values are all
// given in terms of the full resolution input images, except where
// noted.
type Config struct {
	// BlockSize is the width and height of the matching window, in
	// downsampled pixels. It must be odd.
	BlockSize int `toml:"block_size"`

	// Downsample is the factor the input images are reduced by in
	// each direction before matching.
	Downsample int `toml:"downsample"`

	// MaxDisparity is the largest disparity expected between the
	// full resolution images. It is divided by Downsample before use.
	MaxDisparity int `toml:"max_disparity"`

	// CrossCheckThreshold is the largest difference, in downsampled
	// disparity units, allowed between the two directional maps.
	CrossCheckThreshold int `toml:"cross_check_threshold"`

	// ExpectedWidth and ExpectedHeight are the calibration dimensions
	// of the input images. Zero disables the check.
	ExpectedWidth  int `toml:"expected_width"`
	ExpectedHeight int `toml:"expected_height"`

	// Integral selects summed-area tables for the window statistics
	// rather than summing each window directly.
	Integral bool `toml:"integral"`
}

// DefaultConfig returns the parameters used for the calibrated camera
// pair the tool was built for.
func DefaultConfig() Config {
	return Config{
		BlockSize:           9,
		Downsample:          4,
		MaxDisparity:        260,
		CrossCheckThreshold: 8,
		ExpectedWidth:       2940,
		ExpectedHeight:      2016,
		Integral:            true,
	}
}

// LoadConfig reads a TOML file over the defaults, so any field not set
// in the file keeps its default value.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	_, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, fmt.Errorf("Error reading config file %s: %v", path, err)
	}
	return conf, conf.Validate()
}

// BlockRadius is the distance from the centre of a matching window to
// its edge.
func (c Config) BlockRadius() int {
	return (c.BlockSize - 1) / 2
}

// ScaledMaxDisparity is the maximum disparity in downsampled pixels.
func (c Config) ScaledMaxDisparity() int {
	return c.MaxDisparity / c.Downsample
}

// Validate checks that the parameters make sense together.
func (c Config) Validate() error {
	if c.BlockSize < 1 || c.BlockSize%2 == 0 {
		return fmt.Errorf("%w: block size must be a positive odd number, got %d", ErrInvalidConfiguration, c.BlockSize)
	}
	if c.Downsample < 1 {
		return fmt.Errorf("%w: downsample factor must be positive, got %d", ErrInvalidConfiguration, c.Downsample)
	}
	if c.MaxDisparity < 1 {
		return fmt.Errorf("%w: max disparity must be positive, got %d", ErrInvalidConfiguration, c.MaxDisparity)
	}
	scaled := c.ScaledMaxDisparity()
	if scaled < 1 || scaled > 255 {
		return fmt.Errorf("%w: max disparity %d scaled by %d gives %d, which must be between 1 and 255", ErrInvalidConfiguration, c.MaxDisparity, c.Downsample, scaled)
	}
	if c.CrossCheckThreshold < 0 {
		return fmt.Errorf("%w: cross check threshold must not be negative, got %d", ErrInvalidConfiguration, c.CrossCheckThreshold)
	}
	if c.ExpectedWidth < 0 || c.ExpectedHeight < 0 {
		return fmt.Errorf("%w: expected dimensions must not be negative, got %dx%d", ErrInvalidConfiguration, c.ExpectedWidth, c.ExpectedHeight)
	}
	return nil
}

// CheckDimensions returns an error wrapping ErrDimensionMismatch if
// width and height are not the calibration dimensions.
func (c Config) CheckDimensions(width, height int) error {
	if c.ExpectedWidth != 0 && width != c.ExpectedWidth {
		return fmt.Errorf("%w: expected input image with dimensions %d x %d, instead got %d x %d", ErrDimensionMismatch, c.ExpectedWidth, c.ExpectedHeight, width, height)
	}
	if c.ExpectedHeight != 0 && height != c.ExpectedHeight {
		return fmt.Errorf("%w: expected input image with dimensions %d x %d, instead got %d x %d", ErrDimensionMismatch, c.ExpectedWidth, c.ExpectedHeight, width, height)
	}
	return nil
}
