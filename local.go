// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package depthmap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LocalConn is a simple implementation of the storage interface
// that doesn't rely on any "cloud" services, instead keeping every
// bucket as a directory on the local machine. This is particularly
// useful for testing.
type LocalConn struct {
	// these should be set before running Init(), or left to defaults
	TempDir string
	Logger  *zerolog.Logger
}

// MinimalInit does the bare minimum initialisation
func (a *LocalConn) MinimalInit() error {
	var err error
	if a.TempDir == "" {
		a.TempDir = filepath.Join(os.TempDir(), "depthmap")
	}
	err = os.MkdirAll(filepath.Join(a.TempDir, storageResults), 0700)
	if err != nil {
		return fmt.Errorf("Error creating storage directory: %v", err)
	}

	if a.Logger == nil {
		l := NewLogger(os.Stdout, false)
		a.Logger = &l
	}

	return nil
}

// Init just does the same as MinimalInit
func (a *LocalConn) Init() error {
	return a.MinimalInit()
}

// ResultsStorageId is the bucket results are uploaded to
func (a *LocalConn) ResultsStorageId() string {
	return storageResults
}

func prefixwalker(dirpath string, prefix string, list *[]string) filepath.WalkFunc {
	return func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		n := filepath.ToSlash(strings.TrimPrefix(path, dirpath+string(filepath.Separator)))
		if strings.HasPrefix(n, prefix) {
			*list = append(*list, n)
		}
		return nil
	}
}

// ListObjects lists the names of objects in a bucket starting with prefix
func (a *LocalConn) ListObjects(bucket string, prefix string) ([]string, error) {
	var names []string
	dir := filepath.Join(a.TempDir, bucket)
	err := filepath.Walk(dir, prefixwalker(dir, prefix, &names))
	return names, err
}

// DeleteObjects removes a list of objects from a bucket
func (a *LocalConn) DeleteObjects(bucket string, keys []string) error {
	for _, k := range keys {
		err := os.Remove(filepath.Join(a.TempDir, bucket, k))
		if err != nil {
			return err
		}
	}
	return nil
}

// Download just copies the file from TempDir/bucket/key to path
func (a *LocalConn) Download(bucket string, key string, path string) error {
	fin, err := os.Open(filepath.Join(a.TempDir, bucket, key))
	if err != nil {
		return err
	}
	defer fin.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, fin)
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}

// Upload just copies the file from path to TempDir/bucket/key
func (a *LocalConn) Upload(bucket string, key string, path string) error {
	d := filepath.Join(a.TempDir, bucket, filepath.Dir(key))
	err := os.MkdirAll(d, 0700)
	if err != nil {
		return fmt.Errorf("Error creating storage directory: %v", err)
	}

	fin, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fin.Close()

	f, err := os.Create(filepath.Join(a.TempDir, bucket, key))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, fin)
	return err
}

// GetLogger returns the logger used by the connection
func (a *LocalConn) GetLogger() *zerolog.Logger {
	return a.Logger
}

// Log records an item with the Logger. Arguments are handled
// as with fmt.Println.
func (a *LocalConn) Log(v ...interface{}) {
	logln(*a.Logger, v...)
}
