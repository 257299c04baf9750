// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// stereo contains the image processing steps used to create a
// disparity map from a rectified stereo pair using Zero-mean
// Normalized Cross-Correlation.
//
// Every function takes images whose bounds start at 0,0 and returns a
// newly allocated image, leaving its inputs untouched. Greyscale
// images and disparity maps are both held as *image.Gray, whose GrayAt
// method returns 0 for any point outside the image; the functions here
// rely on that for their border handling.
package stereo
