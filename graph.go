// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package depthmap

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const maxticks = 32
const yticknum = 20

// Histogram counts how many pixels of img have each grey value
func Histogram(img *image.Gray) [256]int {
	var h [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			h[img.GrayAt(x, y).Y]++
		}
	}
	return h
}

// createLine creates a vertical line at a particular x value for
// a graph
func createLine(x float64, top float64, c drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		XValues: []float64{x, x},
		YValues: []float64{0, top},
		Style: chart.Style{
			StrokeColor:     c,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
}

// Graph creates a graph of how many pixels of a disparity or depth map
// have each value, from 0 to maxValue. Unmatched pixels (value 0) are
// marked with a guideline.
func Graph(disp *image.Gray, maxValue int, title string, w io.Writer) error {
	return GraphOpts(disp, maxValue, title, "Disparity", true, w)
}

// GraphOpts creates a histogram graph of the values in disp
func GraphOpts(disp *image.Gray, maxValue int, title string, xaxis string, guidelines bool, w io.Writer) error {
	if maxValue < 1 || maxValue > 255 {
		return fmt.Errorf("%w: graph range must be between 1 and 255, got %d", ErrInvalidConfiguration, maxValue)
	}
	if disp.Bounds().Empty() {
		return errors.New("Empty image")
	}

	hist := Histogram(disp)

	var xvalues, yvalues []float64
	var ticks []chart.Tick
	var yticks []chart.Tick
	tickevery := maxValue / maxticks
	if tickevery < 1 {
		tickevery = 1
	}
	var top float64
	for i := 0; i <= maxValue; i++ {
		n := float64(hist[i])
		xvalues = append(xvalues, float64(i))
		yvalues = append(yvalues, n)
		if n > top {
			top = n
		}
		if i%tickevery == 0 {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
		}
	}
	// Make last tick the maximum value
	ticks[len(ticks)-1] = chart.Tick{Value: float64(maxValue), Label: fmt.Sprintf("%d", maxValue)}
	if top == 0 {
		top = 1
	}
	for i := 0; i <= yticknum; i++ {
		n := top * float64(i) / yticknum
		yticks = append(yticks, chart.Tick{Value: n, Label: fmt.Sprintf("%.0f", n)})
	}

	mainSeries := chart.ContinuousSeries{
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			FillColor:   chart.ColorAlternateBlue,
		},
		XValues: xvalues,
		YValues: yvalues,
	}

	// Mark the most common disparity, ignoring unmatched pixels
	mode := 1
	for i := 1; i <= maxValue; i++ {
		if hist[i] > hist[mode] {
			mode = i
		}
	}
	annotations := []chart.Value2{
		{Label: fmt.Sprintf("%d", mode), XValue: float64(mode), YValue: float64(hist[mode])},
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1920,
		Height: 1080,
		XAxis: chart.XAxis{
			Name: xaxis,
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: float64(maxValue),
			},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Pixels",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: top,
			},
			Ticks: yticks,
		},
		Series: []chart.Series{
			mainSeries,
			chart.AnnotationSeries{
				Annotations: annotations,
			},
		},
	}
	if guidelines {
		graph.Series = append(graph.Series, createLine(0, float64(hist[0]), chart.ColorRed))
		graph.Series = append(graph.Series, createLine(float64(mode), float64(hist[mode]), chart.ColorAlternateGreen))
	}
	return graph.Render(chart.PNG, w)
}
