// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pipeline is a package used by the depthmap command, which runs the
// stereo matching steps in order, saves their results, and moves
// files to and from storage. Note that it is considered an "internal"
// package, not intended for external use, and no guarantee is made of
// the stability of any interfaces provided.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"rescribe.xyz/depthmap"
	"rescribe.xyz/depthmap/stereo"
)

type Downloader interface {
	Download(bucket string, key string, fn string) error
	Log(v ...interface{})
}

type Uploader interface {
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
	ResultsStorageId() string
}

type DownloadLister interface {
	Download(bucket string, key string, fn string) error
	ListObjects(bucket string, prefix string) ([]string, error)
	Log(v ...interface{})
	ResultsStorageId() string
}

// Stages holds the image produced by every step of a run, so that
// they can be inspected or saved for debugging.
type Stages struct {
	LeftSmall, RightSmall         *image.RGBA
	LeftGrey, RightGrey           *image.Gray
	LeftDisparity, RightDisparity *image.Gray
	CrossChecked                  *image.Gray
	Filled                        *image.Gray
	Depthmap                      *image.Gray
}

// NamedImage is an image with the file name it should be saved as
type NamedImage struct {
	Name string
	Img  image.Image
}

// DebugImages lists the intermediate images of a run, in the order
// they were made, with the names they are saved as by SaveDebug
func (s *Stages) DebugImages() []NamedImage {
	return []NamedImage{
		{"resized1.png", s.LeftSmall},
		{"resized2.png", s.RightSmall},
		{"greyscale1.png", s.LeftGrey},
		{"greyscale2.png", s.RightGrey},
		{"disparity_left.png", s.LeftDisparity},
		{"disparity_right.png", s.RightDisparity},
		{"crosschecked.png", s.CrossChecked},
		{"filled.png", s.Filled},
	}
}

// SaveDebug saves each intermediate image into dir, returning the
// paths written
func SaveDebug(dir string, s *Stages) ([]string, error) {
	var paths []string
	for _, n := range s.DebugImages() {
		p := filepath.Join(dir, n.Name)
		err := depthmap.EncodeFile(p, n.Img)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// windowMeans picks the window mean calculation set in conf
func windowMeans(conf depthmap.Config, img *image.Gray) *stereo.Means {
	if conf.Integral {
		return stereo.IntegralWindowMeans(img, conf.BlockRadius())
	}
	return stereo.WindowMeans(img, conf.BlockRadius())
}

// stage logs the completion of a step, and checks whether the run
// has been cancelled
func stage(ctx context.Context, logger zerolog.Logger, name string, start time.Time, img image.Image) error {
	b := img.Bounds()
	logger.Debug().
		Str("stage", name).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Dur("took", time.Since(start)).
		Msg("Stage complete")
	return ctx.Err()
}

// Compute runs every step of depth map creation on a stereo pair which
// has already been decoded. The two images must be the same size; if
// conf has calibration dimensions set they must match those too.
//
// The window means of each image, and the disparity maps from each
// direction, don't depend on one another so are computed
// concurrently.
func Compute(ctx context.Context, conf depthmap.Config, left, right *image.RGBA, logger zerolog.Logger) (*Stages, error) {
	err := conf.Validate()
	if err != nil {
		return nil, err
	}
	lb, rb := left.Bounds(), right.Bounds()
	if lb.Dx() != rb.Dx() || lb.Dy() != rb.Dy() {
		return nil, fmt.Errorf("%w: images have to be the same size, left is %dx%d and right is %dx%d", depthmap.ErrDimensionMismatch, lb.Dx(), lb.Dy(), rb.Dx(), rb.Dy())
	}
	err = conf.CheckDimensions(lb.Dx(), lb.Dy())
	if err != nil {
		return nil, err
	}

	var s Stages
	start := time.Now()

	s.LeftSmall, err = stereo.Downsample(left, conf.Downsample)
	if err != nil {
		return nil, err
	}
	s.RightSmall, err = stereo.Downsample(right, conf.Downsample)
	if err != nil {
		return nil, err
	}
	if err = stage(ctx, logger, "downsample", start, s.LeftSmall); err != nil {
		return nil, err
	}

	start = time.Now()
	s.LeftGrey = stereo.Greyscale(s.LeftSmall)
	s.RightGrey = stereo.Greyscale(s.RightSmall)
	if err = stage(ctx, logger, "greyscale", start, s.LeftGrey); err != nil {
		return nil, err
	}

	start = time.Now()
	var lmeans, rmeans *stereo.Means
	var g errgroup.Group
	g.Go(func() error {
		lmeans = windowMeans(conf, s.LeftGrey)
		return nil
	})
	g.Go(func() error {
		rmeans = windowMeans(conf, s.RightGrey)
		return nil
	})
	_ = g.Wait()
	if err = stage(ctx, logger, "windowmeans", start, s.LeftGrey); err != nil {
		return nil, err
	}

	start = time.Now()
	maxDisp := conf.ScaledMaxDisparity()
	radius := conf.BlockRadius()
	var mg errgroup.Group
	mg.Go(func() error {
		var err error
		s.LeftDisparity, err = stereo.Match(s.LeftGrey, lmeans, s.RightGrey, rmeans, 0, maxDisp, radius)
		return err
	})
	mg.Go(func() error {
		var err error
		s.RightDisparity, err = stereo.Match(s.RightGrey, rmeans, s.LeftGrey, lmeans, -maxDisp, 0, radius)
		return err
	})
	if err = mg.Wait(); err != nil {
		return nil, fmt.Errorf("Error calculating disparities: %w", err)
	}
	if err = stage(ctx, logger, "match", start, s.LeftDisparity); err != nil {
		return nil, err
	}

	start = time.Now()
	s.CrossChecked, err = stereo.CrossCheck(s.LeftDisparity, s.RightDisparity, conf.CrossCheckThreshold)
	if err != nil {
		return nil, err
	}
	if err = stage(ctx, logger, "crosscheck", start, s.CrossChecked); err != nil {
		return nil, err
	}

	start = time.Now()
	s.Filled, err = stereo.FillOcclusions(s.CrossChecked)
	if err != nil {
		return nil, fmt.Errorf("Error filling occlusions: %w", err)
	}
	if err = stage(ctx, logger, "occlusionfill", start, s.Filled); err != nil {
		return nil, err
	}

	start = time.Now()
	s.Depthmap, err = stereo.Normalize(s.Filled, maxDisp)
	if err != nil {
		return nil, err
	}
	if err = stage(ctx, logger, "normalize", start, s.Depthmap); err != nil {
		return nil, err
	}

	return &s, nil
}

// Process decodes the stereo pair at leftPath and rightPath, creates a
// depth map from them and saves it to outPath. Nothing is written to
// outPath unless every step succeeds.
func Process(ctx context.Context, conf depthmap.Config, leftPath, rightPath, outPath string, logger zerolog.Logger) (*Stages, error) {
	logger.Info().Str("path", leftPath).Msg("Decoding left image")
	left, err := depthmap.DecodeFile(leftPath)
	if err != nil {
		return nil, err
	}
	err = conf.CheckDimensions(left.Bounds().Dx(), left.Bounds().Dy())
	if err != nil {
		return nil, fmt.Errorf("Image %s: %w", leftPath, err)
	}

	logger.Info().Str("path", rightPath).Msg("Decoding right image")
	right, err := depthmap.DecodeFile(rightPath)
	if err != nil {
		return nil, err
	}

	s, err := Compute(ctx, conf, left, right, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("path", outPath).Msg("Saving depth map")
	err = depthmap.EncodeFile(outPath, s.Depthmap)
	if err != nil {
		return nil, err
	}
	return s, nil
}
