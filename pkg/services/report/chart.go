package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	chartBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	chartBar        = color.RGBA{R: 0x2f, G: 0x6f, B: 0xa7, A: 0xff}
	chartAxis       = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	chartText       = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
)

const (
	chartPadding    = 8
	chartLabelBand  = 18
	chartValueBand  = 16
	chartMinPlotPix = 4
)

// RenderHistogram draws one bar per bucket, labelled with its month and count.
// Output depends only on the buckets and the requested size.
func RenderHistogram(buckets []domain.MonthBucket, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(chartBackground), image.Point{}, draw.Src)

	baseline := height - chartPadding - chartLabelBand
	plotTop := chartPadding + chartValueBand
	plotHeight := baseline - plotTop
	if len(buckets) == 0 || plotHeight < chartMinPlotPix || width <= 2*chartPadding {
		return img
	}

	draw.Draw(img, image.Rect(chartPadding, baseline, width-chartPadding, baseline+1),
		image.NewUniform(chartAxis), image.Point{}, draw.Src)

	maxCount := 0
	for _, b := range buckets {
		maxCount = max(maxCount, b.Count)
	}
	if maxCount == 0 {
		return img
	}

	face := basicfont.Face7x13
	slot := (width - 2*chartPadding) / len(buckets)
	barWidth := max(1, slot*2/3)

	for i, b := range buckets {
		x0 := chartPadding + i*slot + (slot-barWidth)/2
		barHeight := plotHeight * b.Count / maxCount
		draw.Draw(img, image.Rect(x0, baseline-barHeight, x0+barWidth, baseline),
			image.NewUniform(chartBar), image.Point{}, draw.Src)

		center := x0 + barWidth/2
		drawCentered(img, face, strconv.Itoa(b.Count), center, baseline-barHeight-3)
		if label := monthLabel(face, b, slot); label != "" {
			drawCentered(img, face, label, center, baseline+face.Ascent+4)
		}
	}

	return img
}

// monthLabel picks the longest month label that fits into a bar slot.
func monthLabel(face font.Face, b domain.MonthBucket, slot int) string {
	candidates := []string{
		b.Label(),
		fmt.Sprintf("%02d/%02d", int(b.Month), b.Year%100),
		fmt.Sprintf("%02d", int(b.Month)),
	}
	for _, label := range candidates {
		if font.MeasureString(face, label).Ceil() < slot {
			return label
		}
	}
	return ""
}

func drawCentered(dst draw.Image, face font.Face, text string, centerX, baselineY int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(chartText),
		Face: face,
	}
	w := d.MeasureString(text).Ceil()
	d.Dot = fixed.P(centerX-w/2, baselineY)
	d.DrawString(text)
}
