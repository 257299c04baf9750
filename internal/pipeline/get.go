// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
)

// DownloadPair downloads the left and right images of a stereo pair
// from bucket into dir, returning the local paths of each
func DownloadPair(ctx context.Context, dir string, bucket string, leftKey string, rightKey string, conn Downloader) (string, string, error) {
	var paths []string
	for i, key := range []string{leftKey, rightKey} {
		select {
		case <-ctx.Done():
			return "", "", ctx.Err()
		default:
		}
		// both images may well have the same base name, so prefix them
		fn := filepath.Join(dir, fmt.Sprintf("%d_%s", i, path.Base(key)))
		conn.Log("Downloading", key)
		err := conn.Download(bucket, key, fn)
		if err != nil {
			return "", "", fmt.Errorf("Failed to download %s: %v", key, err)
		}
		paths = append(paths, fn)
	}
	return paths[0], paths[1], nil
}

// DownloadAll downloads every object stored under prefix in the
// results bucket into dir
func DownloadAll(ctx context.Context, dir string, prefix string, conn DownloadLister) ([]string, error) {
	objs, err := conn.ListObjects(conn.ResultsStorageId(), prefix)
	if err != nil {
		return nil, fmt.Errorf("Failed to get list of files for %s: %v", prefix, err)
	}
	var paths []string
	for _, i := range objs {
		select {
		case <-ctx.Done():
			return paths, ctx.Err()
		default:
		}
		fn := filepath.Join(dir, path.Base(i))
		conn.Log("Downloading", i)
		err = conn.Download(conn.ResultsStorageId(), i, fn)
		if err != nil {
			return paths, fmt.Errorf("Failed to download file %s: %v", i, err)
		}
		paths = append(paths, fn)
	}
	return paths, nil
}
