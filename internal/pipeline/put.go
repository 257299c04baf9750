// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"rescribe.xyz/depthmap"
)

// CheckImages checks that each file is an image which can be decoded,
// and that they are all the same size
func CheckImages(ctx context.Context, paths ...string) error {
	var first string
	var w, h int
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		img, err := depthmap.DecodeFile(p)
		if err != nil {
			return err
		}
		b := img.Bounds()
		if first == "" {
			first, w, h = p, b.Dx(), b.Dy()
			continue
		}
		if b.Dx() != w || b.Dy() != h {
			return fmt.Errorf("%w: %s is %dx%d but %s is %dx%d", depthmap.ErrDimensionMismatch, p, b.Dx(), b.Dy(), first, w, h)
		}
	}
	return nil
}

// RunPrefix returns a new storage key prefix for the results of a
// run, unique to the run, under prefix
func RunPrefix(prefix string) string {
	return path.Join(prefix, uuid.New().String())
}

// UploadResults uploads each file to the results bucket, with the
// given prefix and a slash before its base name. If remove is set the
// local copy of each file is deleted once it has been successfully
// uploaded.
func UploadResults(ctx context.Context, prefix string, paths []string, remove bool, conn Uploader) ([]string, error) {
	var keys []string
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return keys, ctx.Err()
		default:
		}
		key := path.Join(prefix, filepath.Base(p))
		conn.Log("Uploading", key)
		err := conn.Upload(conn.ResultsStorageId(), key, p)
		if err != nil {
			return keys, fmt.Errorf("Failed to upload %s: %v", p, err)
		}
		keys = append(keys, key)
		if remove {
			err = os.Remove(p)
			if err != nil {
				return keys, err
			}
		}
	}
	return keys, nil
}
