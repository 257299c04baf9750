// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// depthmap creates a depth map from a rectified stereo pair of images.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"
	"rescribe.xyz/depthmap"
	"rescribe.xyz/depthmap/internal/pipeline"
)

const usage = `Usage: depthmap [-v] [-c config.toml] [-b blocksize] [-d maxdisp] [-t thresh]
                [-f factor] [-o output] [-debug dir] [-graph file] [-pdf file]
                [-bucket name] [-prefix key] [left] [right]

Creates a depth map from a rectified stereo pair of images, using
Zero-mean Normalized Cross-Correlation block matching.

The left and right images default to im0.png and im1.png. If -bucket
is set they are instead the keys of the images in that bucket, which
are downloaded first, and every file produced is uploaded back to the
bucket under the prefix followed by a unique id for the run.
`

// Storer is what is needed of a connection to fetch the images
// and store the results
type Storer interface {
	Init() error
	Download(bucket string, key string, fn string) error
	Upload(bucket string, key string, path string) error
	ResultsStorageId() string
	Log(v ...interface{})
}

func main() {
	verbose := flag.Bool("v", false, "verbose")
	confpath := flag.String("c", "", "config file to read parameters from")
	blocksize := flag.Int("b", 0, "block size (must be odd)")
	maxdisp := flag.Int("d", 0, "maximum disparity, in full resolution pixels")
	thresh := flag.Int("t", 0, "cross check threshold")
	factor := flag.Int("f", 0, "downsample factor")
	output := flag.String("o", "depthmap.png", "output file")
	debugdir := flag.String("debug", "", "directory to save intermediate images to")
	graphpath := flag.String("graph", "", "file to save a histogram of the depth map to")
	pdfpath := flag.String("pdf", "", "file to save a pdf report of each stage to")
	bucket := flag.String("bucket", "", "bucket to fetch the images from and store results in")
	prefix := flag.String("prefix", "depthmap", "prefix for the results stored in the bucket")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 2 {
		flag.Usage()
		os.Exit(1)
	}
	left, right := "im0.png", "im1.png"
	if flag.NArg() > 0 {
		left = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		right = flag.Arg(1)
	}

	logger := depthmap.NewLogger(os.Stderr, *verbose)

	conf := depthmap.DefaultConfig()
	var err error
	if *confpath != "" {
		conf, err = depthmap.LoadConfig(*confpath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load config")
		}
	}
	// flags given explicitly override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "b":
			conf.BlockSize = *blocksize
		case "d":
			conf.MaxDisparity = *maxdisp
		case "t":
			conf.CrossCheckThreshold = *thresh
		case "f":
			conf.Downsample = *factor
		}
	})
	err = conf.Validate()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid parameters")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var conn Storer
	var tmpdir string
	if *bucket != "" {
		tmpdir, err = os.MkdirTemp("", "depthmap")
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create temporary directory")
		}
		defer os.RemoveAll(tmpdir)

		conn = &depthmap.AwsConn{Bucket: *bucket, Logger: &logger}
		logger.Debug().Msg("Setting up cloud connection")
		err = conn.Init()
		if err != nil {
			fatal(logger, tmpdir, err, "Failed to set up cloud connection")
		}
		left, right, err = pipeline.DownloadPair(ctx, tmpdir, *bucket, left, right, conn)
		if err != nil {
			fatal(logger, tmpdir, err, "Failed to download images")
		}
	}

	for _, d := range []string{filepath.Dir(*output), *debugdir} {
		if d == "" {
			continue
		}
		err = os.MkdirAll(d, 0755)
		if err != nil {
			fatal(logger, tmpdir, err, "Failed to create output directory")
		}
	}

	err = pipeline.CheckImages(ctx, left, right)
	if err != nil {
		fatal(logger, tmpdir, err, "Unusable images")
	}

	s, err := pipeline.Process(ctx, conf, left, right, *output, logger)
	if err != nil {
		fatal(logger, tmpdir, err, "Failed to create depth map")
	}
	results := []string{*output}

	var debugpaths []string
	if *debugdir != "" {
		debugpaths, err = pipeline.SaveDebug(*debugdir, s)
		if err != nil {
			fatal(logger, tmpdir, err, "Failed to save intermediate images")
		}
		results = append(results, debugpaths...)
	}

	if *graphpath != "" {
		err = saveGraph(*graphpath, s.Depthmap)
		if err != nil {
			fatal(logger, tmpdir, err, "Failed to create graph")
		}
		results = append(results, *graphpath)
	}

	if *pdfpath != "" {
		err = saveReport(*pdfpath, left, right, debugpaths, *output)
		if err != nil {
			fatal(logger, tmpdir, err, "Failed to create pdf report")
		}
		results = append(results, *pdfpath)
	}

	if conn != nil {
		runprefix := pipeline.RunPrefix(*prefix)
		keys, err := pipeline.UploadResults(ctx, runprefix, results, false, conn)
		if err != nil {
			fatal(logger, tmpdir, err, "Failed to upload results")
		}
		for _, k := range keys {
			fmt.Println(k)
		}
	}
}

// fatal logs the error and exits with status 1, first removing any
// temporary directory, as deferred calls are not run
func fatal(logger zerolog.Logger, tmpdir string, err error, msg string) {
	if tmpdir != "" {
		_ = os.RemoveAll(tmpdir)
	}
	logger.Fatal().Err(err).Msg(msg)
}

func saveGraph(path string, img *image.Gray) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = depthmap.Graph(img, 255, "Depth map", f)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// saveReport creates a pdf with a page for the inputs, each
// intermediate image and the depth map
func saveReport(path string, left, right string, debugpaths []string, output string) error {
	var r depthmap.Report
	err := r.Setup()
	if err != nil {
		return err
	}
	pages := []string{left, right}
	pages = append(pages, debugpaths...)
	pages = append(pages, output)
	for _, p := range pages {
		err = r.AddImage(filepath.Base(p), p)
		if err != nil {
			return err
		}
	}
	return r.Save(path)
}
