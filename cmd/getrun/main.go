// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// getrun downloads the stored results of a depth map run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	"rescribe.xyz/depthmap"
	"rescribe.xyz/depthmap/internal/pipeline"
)

const usage = `Usage: getrun [-v] [-bucket name] [-o dir] prefix

Downloads every stored result whose key starts with prefix, such as
the depth map, intermediate images, graph and pdf of a run.
`

func main() {
	verbose := flag.Bool("v", false, "verbose")
	bucket := flag.String("bucket", "", "bucket the results are stored in")
	dir := flag.String("o", "", "directory to save files to (default is the last part of the prefix)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	logger := depthmap.NewLogger(os.Stderr, *verbose)

	conn := &depthmap.AwsConn{Bucket: *bucket, Logger: &logger}
	logger.Debug().Msg("Setting up cloud connection")
	err := conn.Init()
	if err != nil {
		logger.Fatal().Err(err).Msg("Error setting up cloud connection")
	}

	prefix := flag.Arg(0)
	if *dir == "" {
		*dir = path.Base(prefix)
	}
	err = os.MkdirAll(*dir, 0755)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *dir).Msg("Failed to create directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, err := pipeline.DownloadAll(ctx, *dir, prefix, conn)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to download results")
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}
