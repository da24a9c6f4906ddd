package spritesplit

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Transparent is written over every pixel classified as background.
var Transparent = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

// StripBackground returns a copy of sprite in which every pixel closer than
// threshold to ref (Euclidean RGB on the 0-255 scale, alpha ignored) is
// replaced by Transparent. Other pixels are copied unchanged.
func StripBackground(sprite image.Image, ref color.NRGBA, threshold float64) *image.NRGBA {
	out := imaging.Clone(sprite)
	w, h := out.Rect.Dx(), out.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := out.PixOffset(x, y)
			p := out.Pix[off : off+4 : off+4]
			c := color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
			if closerThan(c, ref, threshold) {
				p[0], p[1], p[2], p[3] = Transparent.R, Transparent.G, Transparent.B, Transparent.A
			}
		}
	}
	return out
}

// OpaqueBounds returns the smallest rectangle holding every pixel with
// alpha > 0, or an empty rectangle when there is none.
func OpaqueBounds(img image.Image) image.Rectangle {
	src := asNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	minX, minY, maxX, maxY := w, h, -1, -1
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Trim crops sprite to OpaqueBounds. When no pixel is opaque it returns an
// unchanged copy and false.
func Trim(sprite image.Image) (*image.NRGBA, bool) {
	b := OpaqueBounds(sprite)
	if b.Empty() {
		return imaging.Clone(sprite), false
	}
	src := asNRGBA(sprite)
	return imaging.Crop(src, b), true
}

// Stripper removes a sprite's background and autocrops the result.
type Stripper struct {
	Estimator BackgroundEstimator
	Threshold float64
}

func NewStripper(opt Options) Stripper {
	return Stripper{Estimator: opt.BackgroundEstimator(), Threshold: opt.BackgroundThreshold}
}

// Strip samples the background of sprite, clears it and trims the result.
// It returns the reference colour used and false when nothing opaque is
// left, in which case the returned image is an untouched copy of sprite.
//
// A fully transparent reference means the background is already cleared, so
// only the trim runs. This keeps Strip idempotent.
func (s Stripper) Strip(sprite image.Image) (*image.NRGBA, color.NRGBA, bool) {
	src := asNRGBA(sprite)
	if src.Rect.Empty() {
		return imaging.Clone(src), color.NRGBA{}, false
	}
	est := s.Estimator
	if est == nil {
		est = CornerEstimator{}
	}
	ref := est.Estimate(src)

	stripped := src
	if ref.A != 0 {
		stripped = StripBackground(src, ref, s.Threshold)
	}
	out, ok := Trim(stripped)
	if !ok {
		return imaging.Clone(src), ref, false
	}
	return out, ref, true
}
