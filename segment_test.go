package spritesplit

import (
	"image"
	"image/color"
	"slices"
	"testing"
)

var (
	blank = color.NRGBA{}
	ink   = color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	sky   = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
)

func newCanvas(w, h int, bg color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Rect, bg)
	return img
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillDisk(img *image.NRGBA, cx, cy, radius int, c color.NRGBA) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius && image.Pt(x, y).In(img.Rect) {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func boxOf(r image.Rectangle) Component {
	return Component{MinX: r.Min.X, MinY: r.Min.Y, MaxX: r.Max.X - 1, MaxY: r.Max.Y - 1}
}

func TestSegmentBlobs(t *testing.T) {
	img := newCanvas(200, 100, blank)
	blobs := []image.Rectangle{
		image.Rect(10, 10, 40, 50),
		image.Rect(60, 20, 90, 35),
		image.Rect(120, 60, 190, 95),
	}
	for _, b := range blobs {
		fillRect(img, b, ink)
	}
	// noise: a speck and a thin line
	fillRect(img, image.Rect(100, 5, 105, 10), ink)
	fillRect(img, image.Rect(0, 97, 50, 100), ink)

	got := Segmenter{MinWidth: 10, MinHeight: 10}.Segment(img, Opaque)
	if len(got) != len(blobs) {
		t.Fatalf("got %d components, want %d: %v", len(got), len(blobs), got)
	}
	for i, b := range blobs {
		if want := boxOf(b); got[i] != want {
			t.Errorf("component %d: got %+v, want %+v", i, got[i], want)
		}
		if got[i].Rect() != b {
			t.Errorf("component %d: Rect() = %v, want %v", i, got[i].Rect(), b)
		}
	}
}

func TestSegmentEmpty(t *testing.T) {
	s := Segmenter{MinWidth: 10, MinHeight: 10}
	cases := []struct {
		name string
		img  image.Image
	}{
		{"transparent", newCanvas(64, 64, blank)},
		{"zero-size", image.NewNRGBA(image.Rect(0, 0, 0, 0))},
		{"nil", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Segment(tc.img, Opaque); len(got) != 0 {
				t.Errorf("got %v, want no components", got)
			}
		})
	}
}

func TestSegmentFourConnectivity(t *testing.T) {
	img := newCanvas(60, 60, blank)
	fillRect(img, image.Rect(0, 0, 20, 20), ink)
	fillRect(img, image.Rect(20, 20, 40, 40), ink) // touches only diagonally

	got := Segmenter{}.Segment(img, Opaque)
	want := []Component{boxOf(image.Rect(0, 0, 20, 20)), boxOf(image.Rect(20, 20, 40, 40))}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSegmentConcave(t *testing.T) {
	img := newCanvas(100, 100, blank)
	// U shape
	fillRect(img, image.Rect(10, 10, 20, 90), ink)
	fillRect(img, image.Rect(80, 10, 90, 90), ink)
	fillRect(img, image.Rect(10, 80, 90, 90), ink)

	got := Segmenter{MinWidth: 10, MinHeight: 10}.Segment(img, Opaque)
	if len(got) != 1 || got[0] != boxOf(image.Rect(10, 10, 90, 90)) {
		t.Errorf("got %v, want a single 80x80 box", got)
	}
}

func TestSegmentNoiseThreshold(t *testing.T) {
	img := newCanvas(100, 40, blank)
	fillRect(img, image.Rect(5, 5, 15, 15), ink)   // 10x10, dropped
	fillRect(img, image.Rect(30, 5, 41, 16), ink)  // 11x11, kept
	fillRect(img, image.Rect(60, 5, 90, 15), ink)  // 30x10, dropped
	fillRect(img, image.Rect(60, 20, 71, 35), ink) // 11x15, kept

	got := Segmenter{MinWidth: 10, MinHeight: 10}.Segment(img, Opaque)
	want := []Component{boxOf(image.Rect(30, 5, 41, 16)), boxOf(image.Rect(60, 20, 71, 35))}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSegmentWholeImage(t *testing.T) {
	img := newCanvas(1000, 1000, ink)
	got := Segmenter{MinWidth: 10, MinHeight: 10}.Segment(img, Opaque)
	if len(got) != 1 || got[0] != boxOf(img.Rect) {
		t.Errorf("got %v, want one box covering the image", got)
	}
}

func TestSegmentSubImage(t *testing.T) {
	img := newCanvas(200, 200, blank)
	fillRect(img, image.Rect(60, 60, 80, 80), ink)
	sub := img.SubImage(image.Rect(50, 50, 150, 150))

	got := Segmenter{}.Segment(sub, Opaque)
	want := []Component{boxOf(image.Rect(10, 10, 30, 30))}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSegmentDoesNotModify(t *testing.T) {
	img := newCanvas(50, 50, blank)
	fillRect(img, image.Rect(10, 10, 30, 30), ink)
	before := slices.Clone(img.Pix)
	Segmenter{}.Segment(img, Opaque)
	if !slices.Equal(before, img.Pix) {
		t.Error("Segment modified its input")
	}
}

func TestSegmentDistantFrom(t *testing.T) {
	img := newCanvas(120, 60, sky)
	fillRect(img, image.Rect(10, 10, 50, 50), ink)
	// close to the backdrop: still background
	fillRect(img, image.Rect(70, 10, 110, 50), color.NRGBA{R: 210, G: 225, B: 250, A: 255})

	got := Segmenter{MinWidth: 10, MinHeight: 10}.Segment(img, DistantFrom(sky, 30))
	want := []Component{boxOf(image.Rect(10, 10, 50, 50))}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComponentGeometry(t *testing.T) {
	c := Component{MinX: 20, MinY: 40, MaxX: 319, MaxY: 339}
	if c.Width() != 300 || c.Height() != 300 {
		t.Errorf("size = %dx%d, want 300x300", c.Width(), c.Height())
	}
	if cx, cy := c.Center(); cx != 169.5 || cy != 189.5 {
		t.Errorf("center = (%g, %g), want (169.5, 189.5)", cx, cy)
	}
}

func TestDistantFromBoundary(t *testing.T) {
	fg := DistantFrom(sky, 30)
	cases := []struct {
		c    color.NRGBA
		want bool
	}{
		{sky, false},
		{color.NRGBA{R: 229, G: 220, B: 255, A: 255}, false},
		{color.NRGBA{R: 230, G: 220, B: 255, A: 255}, true},
		{color.NRGBA{R: 182, G: 196, B: 255, A: 255}, true}, // 18, 24: distance 30
		{color.NRGBA{R: 200, G: 220, B: 255}, false},         // alpha ignored
	}
	for _, tc := range cases {
		if got := fg(tc.c); got != tc.want {
			t.Errorf("DistantFrom(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}
}
