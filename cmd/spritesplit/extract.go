package main

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/setanarut/spritesplit"
	"github.com/setanarut/spritesplit/utils"
)

type extractCmd struct {
	Image  string `arg:"" type:"existingfile" help:"Composite sprite sheet (PNG, JPEG, GIF, BMP, TIFF, WebP)."`
	Output string `short:"o" default:"." type:"path" help:"Output directory."`
	Prefix string `help:"File name prefix for every sprite."`
	Config string `short:"c" type:"existingfile" help:"TOML options file; flags override it."`

	Mode      string   `help:"Region source: segment or grid."`
	Layout    string   `help:"Sprite arrangement: two-one-two or two-by-two."`
	Names     []string `sep:"," help:"Sprite names for the layout slots, row by row."`
	Threshold float64  `default:"-1" help:"Background colour distance (0-255 RGB); negative keeps the configured value."`
	Corner    string   `help:"Reference corner: top-left, top-right, bottom-left or bottom-right."`
	Estimator string   `help:"Background estimator: corner, median, dominant or kmeans."`
	MinWidth  int      `default:"-1" help:"Noise filter width; negative keeps the configured value."`
	MinHeight int      `default:"-1" help:"Noise filter height; negative keeps the configured value."`
	NoStrip   bool     `help:"Emit plain crops without background removal."`

	Manifest string `short:"m" type:"path" help:"Write a JSON manifest of the sprites here."`
	Swatch   string `type:"path" help:"Write the removed background colours as a swatch PNG here."`
}

func (c *extractCmd) Run() error {
	img, format, err := utils.ReadImage(c.Image)
	if err != nil {
		return err
	}
	b := img.Bounds()
	glog.Infof("loaded %s image %s: %dx%d", format, c.Image, b.Dx(), b.Dy())

	opt, err := c.options(spritesplit.DefaultOptions())
	if err != nil {
		return err
	}
	glog.V(1).Infof("mode=%s layout=%s expected=%d noise=%dx%d threshold=%g corner=%s estimator=%s strip=%v",
		opt.Mode, opt.Layout, opt.ExpectedCount(), opt.NoiseMinWidth, opt.NoiseMinHeight,
		opt.BackgroundThreshold, opt.ReferenceCorner, opt.Estimator, opt.Strip)

	res, err := spritesplit.Extract(img, opt)
	if err != nil {
		return errors.Wrapf(err, "extracting %s", c.Image)
	}
	for _, w := range res.Warnings {
		glog.Warningf("%s", w)
	}

	paths, err := utils.SaveSprites(res, c.Output, c.Prefix)
	if err != nil {
		return err
	}
	if c.Manifest != "" {
		if err := utils.SaveManifest(utils.NewManifest(res, paths), c.Manifest); err != nil {
			return err
		}
		glog.Infof("wrote manifest %s", c.Manifest)
	}
	if c.Swatch != "" && opt.Strip {
		if err := utils.SaveSwatch(res, 64, c.Swatch); err != nil {
			return errors.Wrap(err, "writing swatch")
		}
	}
	glog.Infof("extracted %d sprites with %d warnings: %v", len(res.Sprites), len(res.Warnings), utils.SortedNames(res))
	return nil
}

// options layers the config file and then the explicitly set flags over base.
func (c *extractCmd) options(base spritesplit.Options) (spritesplit.Options, error) {
	opt := base
	if c.Config != "" {
		var err error
		if opt, err = utils.LoadOptions(c.Config, base); err != nil {
			return base, err
		}
	}
	if c.Mode != "" {
		m, err := spritesplit.ParseMode(c.Mode)
		if err != nil {
			return base, err
		}
		opt.Mode = m
	}
	if c.Layout != "" {
		l, err := spritesplit.ParseLayout(c.Layout)
		if err != nil {
			return base, err
		}
		opt.Layout = l
	}
	if len(c.Names) > 0 {
		opt.Labels = c.Names
	}
	if c.Threshold >= 0 {
		opt.BackgroundThreshold = c.Threshold
	}
	if c.Corner != "" {
		corner, err := spritesplit.ParseCorner(c.Corner)
		if err != nil {
			return base, err
		}
		opt.ReferenceCorner = corner
	}
	if c.Estimator != "" {
		e, err := spritesplit.ParseEstimator(c.Estimator)
		if err != nil {
			return base, err
		}
		opt.Estimator = e
	}
	if c.MinWidth >= 0 {
		opt.NoiseMinWidth = c.MinWidth
	}
	if c.MinHeight >= 0 {
		opt.NoiseMinHeight = c.MinHeight
	}
	if c.NoStrip {
		opt.Strip = false
	}
	return opt, opt.Validate()
}
