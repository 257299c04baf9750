// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// mkstorage sets up the bucket that stereo pairs and depth maps are
// stored in.
package main

import (
	"flag"
	"fmt"
	"os"

	"rescribe.xyz/depthmap"
)

const usage = `Usage: mkstorage [-v] [bucket]

Creates the bucket used to store stereo pairs and depth map results.
If no bucket is named the default results bucket is created.
`

type MkStorager interface {
	MinimalInit() error
	CreateBucket(name string) error
	ResultsStorageId() string
}

func main() {
	verbose := flag.Bool("v", false, "verbose")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	logger := depthmap.NewLogger(os.Stderr, *verbose)

	var conn MkStorager
	conn = &depthmap.AwsConn{Bucket: flag.Arg(0), Logger: &logger}
	err := conn.MinimalInit()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up cloud connection")
	}

	err = conn.CreateBucket(conn.ResultsStorageId())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create bucket")
	}
}
