package spritesplit

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

type WarningKind int

const (
	// SegmentationAnomaly: the component count or arrangement did not match
	// the layout; positional names were used.
	SegmentationAnomaly WarningKind = iota
	// StripAnomaly: background removal left nothing opaque; the sprite was
	// emitted unstripped.
	StripAnomaly
)

func (k WarningKind) String() string {
	if k == StripAnomaly {
		return "strip"
	}
	return "segmentation"
}

// Warning is a non-fatal anomaly reported next to a usable result.
type Warning struct {
	Kind    WarningKind
	Region  string
	Message string
}

func (w Warning) String() string {
	if w.Region == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Region, w.Message)
}

// Sprite is one extracted image.
type Sprite struct {
	Name string
	// Crop box in composite coordinates, before trimming.
	Source image.Rectangle
	// Background colour that was removed. Zero when stripping was disabled.
	Reference color.NRGBA
	Image     *image.NRGBA
}

type Result struct {
	Sprites  []Sprite
	Warnings []Warning
}

// Sprite looks up an extracted sprite by name.
func (r *Result) Sprite(name string) (Sprite, bool) {
	for _, s := range r.Sprites {
		if s.Name == name {
			return s, true
		}
	}
	return Sprite{}, false
}

// Extract cuts the named sprites out of a composite image.
//
// Anomalies do not fail the call; they are listed in Result.Warnings. Only a
// missing or empty image, or invalid options, return an error.
func Extract(img image.Image, opt Options) (*Result, error) {
	if img == nil {
		return nil, errors.Wrap(ErrInvalidInput, "nil image")
	}
	if b := img.Bounds(); b.Empty() {
		return nil, errors.Wrapf(ErrInvalidInput, "empty image %dx%d", b.Dx(), b.Dy())
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	src := asNRGBA(img)
	res := &Result{}

	regions, warnings := Regions(src, opt)
	res.Warnings = append(res.Warnings, warnings...)

	// A transparent sheet has no backdrop colour to remove; its sprites are
	// only trimmed.
	var stripper Stripper
	if hasTransparentPixel(src) {
		stripper = Stripper{Estimator: transparentEstimator{}}
	} else {
		stripper = NewStripper(opt)
	}
	for _, r := range regions {
		crop := imaging.Crop(src, r.Rect())
		s := Sprite{Name: r.Label, Source: r.Rect(), Image: crop}
		if opt.Strip {
			out, ref, ok := stripper.Strip(crop)
			s.Image, s.Reference = out, ref
			if !ok {
				res.Warnings = append(res.Warnings, Warning{
					Kind:    StripAnomaly,
					Region:  r.Label,
					Message: fmt.Sprintf("no opaque pixels left after removing %v; emitted unstripped", ref),
				})
			}
		}
		res.Sprites = append(res.Sprites, s)
	}
	return res, nil
}

type transparentEstimator struct{}

func (transparentEstimator) Estimate(*image.NRGBA) color.NRGBA { return color.NRGBA{} }

// Regions finds and names the sprite regions of src according to opt.Mode.
func Regions(src *image.NRGBA, opt Options) ([]NamedRegion, []Warning) {
	layout := opt.Classifier()
	if opt.Mode == ModeGrid {
		return layout.Cells(src.Rect), nil
	}
	comps := NewSegmenter(opt).Segment(src, CompositeForeground(src, opt))
	return layout.Classify(comps)
}

// CompositeForeground picks the segmentation predicate for a composite: alpha
// when the image has transparency, otherwise distance from the reference
// corner colour.
func CompositeForeground(src *image.NRGBA, opt Options) Foreground {
	if hasTransparentPixel(src) {
		return Opaque
	}
	ref := CornerEstimator{Corner: opt.ReferenceCorner}.Estimate(src)
	return DistantFrom(ref, opt.BackgroundThreshold)
}

func hasTransparentPixel(img *image.NRGBA) bool {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
				return true
			}
		}
	}
	return false
}
