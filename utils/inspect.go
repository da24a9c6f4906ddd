package utils

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/setanarut/spritesplit"
)

// Report describes an image for choosing a reference corner by hand.
type Report struct {
	Format  string
	Model   string
	Size    image.Point
	Corners [4]color.NRGBA
	Center  color.NRGBA
}

// Inspect samples the four corners and the centre pixel of img.
func Inspect(img image.Image, format string) Report {
	b := img.Bounds()
	r := Report{Format: format, Model: colorModelName(img), Size: b.Size()}
	if b.Empty() {
		return r
	}
	for c := spritesplit.CornerTopLeft; c <= spritesplit.CornerBottomRight; c++ {
		p := c.Point(b)
		r.Corners[c] = color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA)
	}
	mid := image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
	r.Center = color.NRGBAModel.Convert(img.At(mid.X, mid.Y)).(color.NRGBA)
	return r
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Format: %s\n", r.Format)
	fmt.Fprintf(&sb, "Mode: %s\n", r.Model)
	fmt.Fprintf(&sb, "Size: %dx%d\n", r.Size.X, r.Size.Y)
	if r.Size.X == 0 || r.Size.Y == 0 {
		return sb.String()
	}
	bounds := image.Rectangle{Max: r.Size}
	for c := spritesplit.CornerTopLeft; c <= spritesplit.CornerBottomRight; c++ {
		p := c.Point(bounds)
		fmt.Fprintf(&sb, "Pixel at %s (%d, %d): %s\n", c, p.X, p.Y, FormatColor(r.Corners[c]))
	}
	fmt.Fprintf(&sb, "Pixel at center (%d, %d): %s\n", r.Size.X/2, r.Size.Y/2, FormatColor(r.Center))
	return sb.String()
}

func colorModelName(img image.Image) string {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return "NRGBA"
	case *image.RGBA, *image.RGBA64:
		return "RGBA"
	case *image.Paletted:
		return "P"
	case *image.Gray, *image.Gray16:
		return "L"
	case *image.YCbCr:
		return "YCbCr"
	case *image.CMYK:
		return "CMYK"
	default:
		return fmt.Sprintf("%T", img)
	}
}
