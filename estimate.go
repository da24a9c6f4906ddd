package spritesplit

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/stat"
)

// BackgroundEstimator picks the colour treated as background for a sprite.
// A result with zero alpha means the background is already transparent.
type BackgroundEstimator interface {
	Estimate(img *image.NRGBA) color.NRGBA
}

// CornerEstimator samples a single corner pixel. It assumes the background
// is locally uniform there.
type CornerEstimator struct {
	Corner Corner
}

func (e CornerEstimator) Estimate(img *image.NRGBA) color.NRGBA {
	if img.Rect.Empty() {
		return color.NRGBA{}
	}
	p := e.Corner.Point(img.Rect)
	return img.NRGBAAt(p.X, p.Y)
}

// MedianCornersEstimator takes the per-channel median of the four corners,
// which tolerates one corner being covered by the sprite.
type MedianCornersEstimator struct{}

func (MedianCornersEstimator) Estimate(img *image.NRGBA) color.NRGBA {
	if img.Rect.Empty() {
		return color.NRGBA{}
	}
	var ch [4][]float64
	for c := CornerTopLeft; c <= CornerBottomRight; c++ {
		p := c.Point(img.Rect)
		px := img.NRGBAAt(p.X, p.Y)
		ch[0] = append(ch[0], float64(px.R))
		ch[1] = append(ch[1], float64(px.G))
		ch[2] = append(ch[2], float64(px.B))
		ch[3] = append(ch[3], float64(px.A))
	}
	var out [4]uint8
	for i := range ch {
		slices.Sort(ch[i])
		out[i] = uint8(stat.Quantile(0.5, stat.Empirical, ch[i], nil))
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

// DominantBorderEstimator returns the most common colour of the outer
// Depth-pixel ring of the sprite.
type DominantBorderEstimator struct {
	Depth int
}

func (e DominantBorderEstimator) Estimate(img *image.NRGBA) color.NRGBA {
	ring := borderPixels(img, e.Depth)
	if len(ring) == 0 {
		return cornerFallback(img)
	}
	candidates := dominantcolor.FindWeight(tile(ring), 4)
	if len(candidates) == 0 {
		return cornerFallback(img)
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	return color.NRGBA{R: best.RGBA.R, G: best.RGBA.G, B: best.RGBA.B, A: 255}
}

// KMeansBorderEstimator clusters the outer ring of the sprite and returns the
// centre of the most populated cluster. Falls back to DominantBorderEstimator
// when clustering fails.
type KMeansBorderEstimator struct {
	Depth int
	K     int
}

func (e KMeansBorderEstimator) Estimate(img *image.NRGBA) color.NRGBA {
	ring := borderPixels(img, e.Depth)
	if len(ring) == 0 {
		return cornerFallback(img)
	}
	dataset := make(clusters.Observations, 0, len(ring))
	for _, c := range ring {
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255.0,
			float64(c.G) / 255.0,
			float64(c.B) / 255.0,
		})
	}
	k := min(max(e.K, 1), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return DominantBorderEstimator{Depth: e.Depth}.Estimate(img)
	}
	best := slices.MaxFunc(cc, func(a, b clusters.Cluster) int {
		return len(a.Observations) - len(b.Observations)
	})
	if len(best.Center) < 3 {
		return DominantBorderEstimator{Depth: e.Depth}.Estimate(img)
	}
	col := colorful.Color{R: best.Center[0], G: best.Center[1], B: best.Center[2]}.Clamped()
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// borderPixels collects the opaque pixels of the outer ring of img.
func borderPixels(img *image.NRGBA, depth int) []color.NRGBA {
	r := img.Rect
	if r.Empty() {
		return nil
	}
	depth = max(depth, 1)
	inner := r.Inset(depth)
	var out []color.NRGBA
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if image.Pt(x, y).In(inner) {
				continue
			}
			c := img.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// tile lays pixels out in a square image, repeating them to fill the last
// row, so that downscaling samplers see every colour.
func tile(pixels []color.NRGBA) *image.NRGBA {
	side := int(math.Ceil(math.Sqrt(float64(len(pixels)))))
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		img.SetNRGBA(i%side, i/side, pixels[i%len(pixels)])
	}
	return img
}

// cornerFallback is used when the border has no opaque pixels; it reports the
// top-left pixel, which is then transparent.
func cornerFallback(img *image.NRGBA) color.NRGBA {
	return CornerEstimator{}.Estimate(img)
}
