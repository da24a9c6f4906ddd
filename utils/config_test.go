package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/setanarut/spritesplit"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeFile(t, "enemies.toml", `
layout = "TWO_ONE_TWO"
labels = ["turtle", "mouse", "larva", "slime", "shark"]
background_threshold = 42.5
reference_corner = "bottom-right"
estimator = "median"
mode = "grid"
noise_min_width = 12
`)
	opt, err := LoadOptions(path, spritesplit.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if opt.BackgroundThreshold != 42.5 || opt.ReferenceCorner != spritesplit.CornerBottomRight {
		t.Errorf("threshold/corner not read: %+v", opt)
	}
	if opt.Estimator != spritesplit.EstimatorMedian || opt.Mode != spritesplit.ModeGrid {
		t.Errorf("estimator/mode not read: %+v", opt)
	}
	if opt.NoiseMinWidth != 12 || opt.NoiseMinHeight != 10 {
		t.Errorf("noise = %dx%d, want 12x10", opt.NoiseMinWidth, opt.NoiseMinHeight)
	}
	if strings.Join(opt.Labels, ",") != "turtle,mouse,larva,slime,shark" {
		t.Errorf("labels = %v", opt.Labels)
	}
	if !opt.Strip {
		t.Error("unset strip lost its default")
	}
}

func TestLoadOptionsKeepsBase(t *testing.T) {
	base := spritesplit.DefaultOptions()
	base.NoiseMinWidth, base.NoiseMinHeight = 40, 40
	path := writeFile(t, "empty.toml", "strip = false\n")
	opt, err := LoadOptions(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if opt.NoiseMinWidth != 40 || opt.Strip {
		t.Errorf("got %+v", opt)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	cases := []struct {
		name, content string
		invalid       bool
	}{
		{"unknown key", "treshold = 3\n", true},
		{"bad corner", "reference_corner = \"middle\"\n", false},
		{"bad labels", "labels = [\"a\"]\n", true},
		{"duplicate labels", "labels = [\"a\", \"b\", \"a\", \"c\", \"d\"]\n", true},
		{"syntax", "layout = \n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "bad.toml", tc.content)
			base := spritesplit.DefaultOptions()
			opt, err := LoadOptions(path, base)
			if err == nil {
				t.Fatal("no error")
			}
			if tc.invalid && !errors.Is(err, spritesplit.ErrInvalidOptions) {
				t.Errorf("err = %v, want ErrInvalidOptions", err)
			}
			if opt.BackgroundThreshold != base.BackgroundThreshold || opt.Labels != nil {
				t.Errorf("base not returned on error: %+v", opt)
			}
		})
	}
}
