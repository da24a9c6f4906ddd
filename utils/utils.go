package utils

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/setanarut/spritesplit"
)

// ReadImage decodes the image at path and reports its format name.
func ReadImage(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "opening image")
	}
	defer file.Close()
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", errors.Wrapf(err, "decoding image %s", path)
	}
	return img, format, nil
}

// SaveImage encodes img in the format implied by the filename extension.
func SaveImage(img image.Image, filename string) error {
	if err := imaging.Save(img, filename); err != nil {
		return errors.Wrapf(err, "saving %s", filename)
	}
	return nil
}

// SpritePath is the file a sprite is written to.
func SpritePath(dir, prefix, name string) string {
	return filepath.Join(dir, prefix+sanitize(name)+".png")
}

// SaveSprites writes every sprite of res into dir and returns the paths.
func SaveSprites(res *spritesplit.Result, dir, prefix string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", dir)
	}
	paths := make([]string, 0, len(res.Sprites))
	for _, s := range res.Sprites {
		path := SpritePath(dir, prefix, s.Name)
		if err := SaveImage(s.Image, path); err != nil {
			return paths, errors.Wrapf(err, "saving sprite %q", s.Name)
		}
		b := s.Image.Bounds()
		glog.Infof("saved %s (%dx%d from %v)", path, b.Dx(), b.Dy(), s.Source)
		paths = append(paths, path)
	}
	return paths, nil
}

// CopyImage decodes src and re-encodes it at dst.
func CopyImage(src, dst string) error {
	img, _, err := ReadImage(src)
	if err != nil {
		return err
	}
	if err := SaveImage(img, dst); err != nil {
		return err
	}
	glog.Infof("copied %s to %s", src, dst)
	return nil
}

// SaveSwatch writes one tileSize square per sprite, filled with the background
// colour that was removed from it, in sprite order.
func SaveSwatch(res *spritesplit.Result, tileSize int, filename string) error {
	if len(res.Sprites) == 0 {
		return errors.New("no sprites to swatch")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(res.Sprites)
	h := tileSize
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for i, s := range res.Sprites {
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := 0; y < h; y++ {
			for x := x0; x < x1; x++ {
				img.SetNRGBA(x, y, s.Reference)
			}
		}
	}

	return SaveImage(img, filename)
}

// sanitize keeps sprite names usable as file names.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "sprite"
	}
	return name
}

// SortedNames returns the sprite names of res in lexical order.
func SortedNames(res *spritesplit.Result) []string {
	names := make([]string, 0, len(res.Sprites))
	for _, s := range res.Sprites {
		names = append(names, s.Name)
	}
	slices.Sort(names)
	return names
}

// FormatColor prints c the way inspection output does: (r, g, b, a).
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}
