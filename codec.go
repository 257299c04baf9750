// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package depthmap

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any of the registered formats (png, jpeg,
// tiff, bmp, webp) and returns it as RGBA, with its origin at 0,0.
// Images without an alpha channel come back fully opaque.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// DecodeFile opens and decodes the image at path
func DecodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open file %s: %v", ErrDecode, path, err)
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Could not decode image %s: %w", path, err)
	}
	return img, nil
}

// Encode writes img in the format named by ext (".png", ".tif",
// ".tiff" or ".bmp"; anything else is written as png). The colour
// mode follows the image type, so an *image.Gray is saved as 8 bit
// greyscale and an *image.RGBA as 32 bit colour.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// EncodeFile saves img to path, choosing the format from the file
// extension. The image is written to a temporary file in the same
// directory first and renamed into place once complete, so a failed
// encode never leaves a partial file at path.
func EncodeFile(path string, img image.Image) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("Could not create file for %s: %v", path, err)
	}
	tmp := f.Name()

	err = Encode(f, img, filepath.Ext(path))
	if err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("Could not encode image %s: %v", path, err)
	}
	err = f.Close()
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("Could not write image %s: %v", path, err)
	}
	err = os.Rename(tmp, path)
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("Could not save image %s: %v", path, err)
	}
	return nil
}
