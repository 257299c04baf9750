// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package depthmap

import (
	"bytes"
	"image/png"

	"github.com/nickjwhite/gofpdf"
)

const pageWidth = 5 // pageWidth in inches
const titleHeight = 24

// pxToPt converts a pixel value into a pt value (72 pts per inch)
// This uses pageWidth to determine the appropriate value
func pxToPt(i int) float64 {
	return float64(i) / pageWidth
}

// Report is a PDF with a page for each image of a depth map run
type Report struct {
	fpdf *gofpdf.Fpdf
}

// Setup creates a new PDF with appropriate settings and fonts
func (p *Report) Setup() error {
	p.fpdf = gofpdf.New("P", "pt", "A4", "")
	p.fpdf.SetFont("Helvetica", "", 10)
	p.fpdf.SetAutoPageBreak(false, float64(0))
	return p.fpdf.Error()
}

// AddImage adds a page to the pdf showing the image at imgpath, with a
// title above it. Any format DecodeFile can read may be used.
func (p *Report) AddImage(title, imgpath string) error {
	img, err := DecodeFile(imgpath)
	if err != nil {
		return err
	}
	// gofpdf can't read tiff, bmp or webp, so everything goes in as png
	var buf bytes.Buffer
	err = png.Encode(&buf, img)
	if err != nil {
		return err
	}

	b := img.Bounds()
	w, h := pxToPt(b.Dx()), pxToPt(b.Dy())
	p.fpdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h + titleHeight})

	p.fpdf.SetXY(0, 0)
	p.fpdf.CellFormat(w, titleHeight, title, "", 0, "CM", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "png"}
	_ = p.fpdf.RegisterImageOptionsReader(imgpath, opts, &buf)
	p.fpdf.ImageOptions(imgpath, 0, titleHeight, w, h, false, opts, 0, "")

	return p.fpdf.Error()
}

// Save saves the PDF to the file at path
func (p *Report) Save(path string) error {
	return p.fpdf.OutputFileAndClose(path)
}
