// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
The depthmap package contains tools and functions for computing a depth
map from a pair of rectified stereo images, using Zero-mean Normalized
Cross-Correlation (ZNCC) block matching. The numerical work is done by the
rescribe.xyz/depthmap/stereo package; this package holds the pieces around
it: configuration, image decoding and encoding, storage connections, and
reporting.

Introduction

The depthmap command takes a left and a right image of the same scene,
taken by two horizontally offset cameras whose images have been rectified
so that matching points lie on the same row. It produces a single 8-bit
greyscale image where brighter pixels are closer to the cameras.
Presuming you have the go tools installed, you can install it with this
command:
  go install rescribe.xyz/depthmap/cmd/depthmap@latest

Run it with the two images, or with no arguments to use im0.png and
im1.png from the current directory:
  depthmap -v left.png right.png

The result is written to depthmap.png, unless the -o flag is used.

How the depth map is made

The images are processed in these steps:

- Both images are checked to be the expected calibration size (2940x2016
  by default) and the same size as each other
- Each image is reduced in size by taking every 4th pixel in each
  direction, discarding the rest
- The reduced images are converted to greyscale
- The mean value of the square window around every pixel is calculated,
  for each image
- For every pixel of the left image, windows of the right image at
  different horizontal offsets ("disparities") are compared using ZNCC,
  and the best matching disparity recorded. The same is then done with
  the right image as the source and the left as the reference
- The two disparity maps are compared, and any pixel where they disagree
  by more than a threshold is zeroed (the "cross check")
- Zeroed pixels are filled with the value of the nearest non-zero pixel
  (the "occlusion fill")
- The disparities are scaled to the full 0-255 range and saved

Configuration

All of the parameters (block size, downsample factor, maximum disparity,
cross check threshold and expected input size) can be set in a TOML file
passed with the -c flag, and most can also be set by individual flags.
See DefaultConfig for the defaults.

Debugging and reporting

The -debug flag saves each intermediate image (resized1.png,
greyscale1.png, disparity_left.png and so on) into a directory. The
-graph flag saves a histogram of the final disparities, and the -pdf flag
saves a report containing the inputs and outputs on separate pages.

Storage

The results can be uploaded to S3 with the -bucket flag, in which case
they are placed under a key prefix containing a unique run id. The
LocalConn type provides the same interface using the local filesystem,
which is useful for testing.
*/
package depthmap
