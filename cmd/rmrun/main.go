// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// rmrun removes the stored results of depth map runs from cloud
// storage.
package main

import (
	"flag"
	"fmt"
	"os"

	"rescribe.xyz/depthmap"
)

const usage = `Usage: rmrun [-v] [-bucket name] prefix

Removes every stored result whose key starts with prefix.
`

type RmRunner interface {
	MinimalInit() error
	ResultsStorageId() string
	DeleteObjects(bucket string, keys []string) error
	ListObjects(bucket string, prefix string) ([]string, error)
}

func main() {
	verbose := flag.Bool("v", false, "verbose")
	bucket := flag.String("bucket", "", "bucket the results are stored in")
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

	var conn RmRunner
	conn = &depthmap.AwsConn{Bucket: *bucket, Logger: &logger}

	logger.Debug().Msg("Setting up cloud connection")
	err := conn.MinimalInit()
	if err != nil {
		logger.Fatal().Err(err).Msg("Error setting up cloud connection")
	}

	prefix := flag.Arg(0)

	logger.Debug().Str("prefix", prefix).Msg("Getting list of files")
	objs, err := conn.ListObjects(conn.ResultsStorageId(), prefix)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error listing files")
	}

	if len(objs) == 0 {
		logger.Fatal().Str("prefix", prefix).Msg("No files found")
	}

	logger.Debug().Int("count", len(objs)).Msg("Deleting files")
	err = conn.DeleteObjects(conn.ResultsStorageId(), objs)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error deleting files")
	}

	fmt.Println("Deleted", len(objs), "files")
}
