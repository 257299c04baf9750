// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"rescribe.xyz/depthmap"
)

func testConn(t *testing.T) *depthmap.LocalConn {
	t.Helper()
	l := zerolog.Nop()
	conn := &depthmap.LocalConn{TempDir: t.TempDir(), Logger: &l}
	err := conn.Init()
	if err != nil {
		t.Fatalf("Error initialising local storage: %v", err)
	}
	return conn
}

func TestDownloadPair(t *testing.T) {
	conn := testConn(t)
	src := t.TempDir()
	left, right := stereoPair(20, 10, 2, 1)
	lpath, rpath := savePair(t, src, left, right)

	// both keys share a base name, which must not clash once downloaded
	for _, u := range []struct{ key, path string }{
		{"pairs/a/im.png", lpath},
		{"pairs/b/im.png", rpath},
	} {
		err := conn.Upload("stereo", u.key, u.path)
		if err != nil {
			t.Fatalf("Error uploading %s: %v", u.key, err)
		}
	}

	dir := t.TempDir()
	l, r, err := DownloadPair(context.Background(), dir, "stereo", "pairs/a/im.png", "pairs/b/im.png", conn)
	if err != nil {
		t.Fatalf("Error downloading pair: %v", err)
	}
	if l == r {
		t.Fatalf("Left and right were downloaded to the same path %s", l)
	}
	for _, c := range []struct{ got, orig string }{{l, lpath}, {r, rpath}} {
		got, err := os.ReadFile(c.got)
		if err != nil {
			t.Fatalf("Error reading downloaded file: %v", err)
		}
		orig, err := os.ReadFile(c.orig)
		if err != nil {
			t.Fatalf("Error reading original file: %v", err)
		}
		if !cmp.Equal(got, orig) {
			t.Errorf("Downloaded file %s differs from %s", c.got, c.orig)
		}
	}

	_, _, err = DownloadPair(context.Background(), dir, "stereo", "pairs/a/im.png", "pairs/c/im.png", conn)
	if err == nil {
		t.Errorf("Expected an error downloading a nonexistent key")
	}
}

func TestUploadResults(t *testing.T) {
	conn := testConn(t)
	dir := t.TempDir()
	var paths []string
	for _, n := range []string{"depthmap.png", "graph.png", "report.pdf"} {
		p := filepath.Join(dir, n)
		err := os.WriteFile(p, []byte(n), 0600)
		if err != nil {
			t.Fatalf("Error writing test file: %v", err)
		}
		paths = append(paths, p)
	}

	prefix := RunPrefix("runs")
	if !strings.HasPrefix(prefix, "runs/") || len(prefix) != len("runs/")+36 {
		t.Fatalf("Unexpected run prefix %s", prefix)
	}
	if RunPrefix("runs") == prefix {
		t.Errorf("Run prefixes are not unique")
	}

	keys, err := UploadResults(context.Background(), prefix, paths, true, conn)
	if err != nil {
		t.Fatalf("Error uploading results: %v", err)
	}
	want := []string{
		path.Join(prefix, "depthmap.png"),
		path.Join(prefix, "graph.png"),
		path.Join(prefix, "report.pdf"),
	}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("Uploaded keys differ (-want +got):\n%s", diff)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("Local file %s was not removed after upload", p)
		}
	}

	listed, err := conn.ListObjects(conn.ResultsStorageId(), prefix)
	if err != nil {
		t.Fatalf("Error listing results: %v", err)
	}
	sort.Strings(listed)
	if diff := cmp.Diff(want, listed); diff != "" {
		t.Errorf("Listed keys differ (-want +got):\n%s", diff)
	}

	out := t.TempDir()
	got, err := DownloadAll(context.Background(), out, prefix, conn)
	if err != nil {
		t.Fatalf("Error downloading results: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Downloaded %d files, expected %d", len(got), len(want))
	}
	for _, p := range got {
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("Error reading downloaded file: %v", err)
		}
		if string(b) != filepath.Base(p) {
			t.Errorf("Downloaded file %s has wrong contents %q", p, b)
		}
	}

	err = conn.DeleteObjects(conn.ResultsStorageId(), listed)
	if err != nil {
		t.Fatalf("Error deleting results: %v", err)
	}
	listed, err = conn.ListObjects(conn.ResultsStorageId(), prefix)
	if err != nil {
		t.Fatalf("Error listing results after deletion: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("Results remain after deletion: %v", listed)
	}
}

func TestUploadResultsErrors(t *testing.T) {
	conn := testConn(t)
	dir := t.TempDir()

	_, err := UploadResults(context.Background(), "runs", []string{filepath.Join(dir, "nonexistent.png")}, false, conn)
	if err == nil {
		t.Errorf("Expected an error uploading a nonexistent file")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	keys, err := UploadResults(cancelled, "runs", []string{filepath.Join(dir, "a.png")}, false, conn)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Expected nothing uploaded once cancelled, got %v", keys)
	}
}

func TestCheckImages(t *testing.T) {
	dir := t.TempDir()
	left, right := stereoPair(20, 10, 2, 1)
	lpath, rpath := savePair(t, dir, left, right)
	other := filepath.Join(dir, "other.png")
	small, _ := stereoPair(10, 10, 0, 1)
	err := depthmap.EncodeFile(other, small)
	if err != nil {
		t.Fatalf("Error saving test image: %v", err)
	}
	bad := filepath.Join(dir, "bad.png")
	err = os.WriteFile(bad, []byte("not an image"), 0600)
	if err != nil {
		t.Fatalf("Error writing bad image: %v", err)
	}
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []struct {
		name  string
		ctx   context.Context
		paths []string
		err   error
	}{
		{"good", context.Background(), []string{lpath, rpath}, nil},
		{"single", context.Background(), []string{lpath}, nil},
		{"sizes", context.Background(), []string{lpath, other}, depthmap.ErrDimensionMismatch},
		{"bad", context.Background(), []string{lpath, bad}, depthmap.ErrDecode},
		{"missing", context.Background(), []string{filepath.Join(dir, "nonexistent.png")}, depthmap.ErrDecode},
		{"cancelled", cancelled, []string{lpath, rpath}, context.Canceled},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckImages(c.ctx, c.paths...)
			if c.err == nil && err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !errors.Is(err, c.err) {
				t.Fatalf("Expected error %v, got %v", c.err, err)
			}
		})
	}
}
