// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"rescribe.xyz/depthmap"
)

const usage = `Usage: depthgraph [-max n] [-x name] disparity.png graph.png

depthgraph creates a graph showing how many pixels of a disparity or
depth map image have each value.
`

func main() {
	maxval := flag.Int("max", 255, "highest value to graph")
	xaxis := flag.String("x", "Disparity", "x axis label")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage+"\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return
	}

	logger := depthmap.NewLogger(os.Stderr, false)

	img, err := depthmap.DecodeFile(flag.Arg(0))
	if err != nil {
		logger.Fatal().Err(err).Msg("Error reading image")
	}
	grey := image.NewGray(img.Bounds())
	draw.Draw(grey, grey.Bounds(), img, image.Point{}, draw.Src)

	fn := flag.Arg(1)
	f, err := os.Create(fn)
	if err != nil {
		logger.Fatal().Err(err).Str("file", fn).Msg("Error creating file")
	}
	defer f.Close()
	err = depthmap.GraphOpts(grey, *maxval, filepath.Base(flag.Arg(0)), *xaxis, true, f)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error creating graph")
	}
}
