package spritesplit

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Component is the bounding box of one connected foreground region.
// Bounds are inclusive.
type Component struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Rect returns the box as a half-open image.Rectangle.
func (c Component) Rect() image.Rectangle {
	return image.Rect(c.MinX, c.MinY, c.MaxX+1, c.MaxY+1)
}

func (c Component) Width() int  { return c.MaxX - c.MinX + 1 }
func (c Component) Height() int { return c.MaxY - c.MinY + 1 }

func (c Component) Center() (cx, cy float64) {
	return float64(c.MinX+c.MaxX) / 2, float64(c.MinY+c.MaxY) / 2
}

// Foreground reports whether a pixel belongs to a sprite.
type Foreground func(c color.NRGBA) bool

// Opaque treats every pixel with non-zero alpha as foreground.
func Opaque(c color.NRGBA) bool {
	return c.A > 0
}

// DistantFrom treats pixels at RGB distance >= threshold from ref as
// foreground. Used for composites painted on an opaque backdrop.
func DistantFrom(ref color.NRGBA, threshold float64) Foreground {
	return func(c color.NRGBA) bool {
		return !closerThan(c, ref, threshold)
	}
}

type Segmenter struct {
	// Components with Width() <= MinWidth or Height() <= MinHeight are noise.
	MinWidth  int
	MinHeight int
}

func NewSegmenter(opt Options) Segmenter {
	return Segmenter{MinWidth: opt.NoiseMinWidth, MinHeight: opt.NoiseMinHeight}
}

// Segment returns the 4-connected foreground regions of img in discovery
// order. Coordinates are relative to img.Bounds().Min. img is not modified.
func (s Segmenter) Segment(img image.Image, fg Foreground) []Component {
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	src := asNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	visited := make([]bool, w*h)
	var comps []Component
	var stack []int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || !fg(nrgbaAt(src, x, y)) {
				continue
			}
			c := Component{MinX: x, MinY: y, MaxX: x, MaxY: y}
			visited[idx] = true
			stack = append(stack[:0], idx)
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				px, py := cur%w, cur/w
				c.MinX = min(c.MinX, px)
				c.MaxX = max(c.MaxX, px)
				c.MinY = min(c.MinY, py)
				c.MaxY = max(c.MaxY, py)

				if px > 0 {
					stack = s.push(stack, visited, src, fg, cur-1, px-1, py)
				}
				if px < w-1 {
					stack = s.push(stack, visited, src, fg, cur+1, px+1, py)
				}
				if py > 0 {
					stack = s.push(stack, visited, src, fg, cur-w, px, py-1)
				}
				if py < h-1 {
					stack = s.push(stack, visited, src, fg, cur+w, px, py+1)
				}
			}
			if c.Width() > s.MinWidth && c.Height() > s.MinHeight {
				comps = append(comps, c)
			}
		}
	}
	return comps
}

func (s Segmenter) push(stack []int, visited []bool, src *image.NRGBA, fg Foreground, idx, x, y int) []int {
	if visited[idx] || !fg(nrgbaAt(src, x, y)) {
		return stack
	}
	visited[idx] = true
	return append(stack, idx)
}

// asNRGBA returns img as an origin-based *image.NRGBA, copying only when
// the layout differs.
func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

func nrgbaAt(img *image.NRGBA, x, y int) color.NRGBA {
	off := img.PixOffset(x, y)
	p := img.Pix[off : off+4 : off+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// sqDistance is the squared Euclidean RGB distance on the 0-255 scale.
// Alpha is ignored.
func sqDistance(a, b color.NRGBA) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// closerThan reports whether a lies strictly within threshold of b. Integer
// squares keep pixels at exactly threshold on the far side.
func closerThan(a, b color.NRGBA, threshold float64) bool {
	return float64(sqDistance(a, b)) < threshold*threshold
}
