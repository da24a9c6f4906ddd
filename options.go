// Package spritesplit cuts named sprites out of a composite sprite sheet.
package spritesplit

import (
	"fmt"
	"image"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidInput   = errors.New("invalid input image")
	ErrInvalidOptions = errors.New("invalid options")
)

// Options configures Extract. The number of regions a sheet must hold is
// not a setting of its own: it is the slot count of Layout (see
// ExpectedCount), so config files have no expected_component_count key.
type Options struct {
	// Components whose pixel width is <= NoiseMinWidth are dropped as specks.
	// Ideal start: 10. Raise for noisy, heavily anti-aliased sheets.
	NoiseMinWidth int `toml:"noise_min_width"`
	// Same as NoiseMinWidth for height.
	NoiseMinHeight int `toml:"noise_min_height"`
	// Sprite arrangement used to name regions (and to cut cells in ModeGrid).
	Layout Layout `toml:"layout"`
	// Replaces the layout labels slot by slot (row-major). nil keeps the defaults.
	// Must match the layout slot count when set.
	Labels []string `toml:"labels"`
	// RGB distance (0-255 scale) below which a pixel counts as background.
	// Ideal start: 30. Too high eats into light sprite edges.
	BackgroundThreshold float64 `toml:"background_threshold"`
	// Corner sampled by EstimatorCorner, and for the composite itself when it
	// has no transparent pixels.
	ReferenceCorner Corner `toml:"reference_corner"`
	// How each sprite's background colour is sampled.
	Estimator EstimatorKind `toml:"estimator"`
	// Region source: connected components or the layout's fixed grid.
	Mode Mode `toml:"mode"`
	// Strip background and trim each sprite. false emits plain crops.
	Strip bool `toml:"strip"`
}

func DefaultOptions() Options {
	return Options{
		NoiseMinWidth:       10,
		NoiseMinHeight:      10,
		Layout:              LayoutTwoOneTwo,
		BackgroundThreshold: 30,
		ReferenceCorner:     CornerTopLeft,
		Estimator:           EstimatorCorner,
		Mode:                ModeSegment,
		Strip:               true,
	}
}

// ExpectedCount is the number of regions the configured layout names.
func (o Options) ExpectedCount() int {
	return o.Classifier().Expected()
}

// Classifier returns the layout classifier with custom labels applied.
func (o Options) Classifier() *RowLayout {
	l := o.Layout.RowLayout()
	if len(o.Labels) == l.Expected() {
		l = l.WithLabels(o.Labels)
	}
	return l
}

// BackgroundEstimator builds the configured estimator.
func (o Options) BackgroundEstimator() BackgroundEstimator {
	switch o.Estimator {
	case EstimatorMedian:
		return MedianCornersEstimator{}
	case EstimatorDominant:
		return DominantBorderEstimator{Depth: 2}
	case EstimatorKMeans:
		return KMeansBorderEstimator{Depth: 2, K: 3}
	default:
		return CornerEstimator{Corner: o.ReferenceCorner}
	}
}

func (o Options) Validate() error {
	if o.NoiseMinWidth < 0 || o.NoiseMinHeight < 0 {
		return errors.Wrapf(ErrInvalidOptions, "negative noise size %dx%d", o.NoiseMinWidth, o.NoiseMinHeight)
	}
	if o.BackgroundThreshold < 0 {
		return errors.Wrapf(ErrInvalidOptions, "negative background threshold %g", o.BackgroundThreshold)
	}
	if o.Layout < LayoutTwoOneTwo || o.Layout > LayoutTwoByTwo {
		return errors.Wrapf(ErrInvalidOptions, "unknown layout %d", int(o.Layout))
	}
	if o.ReferenceCorner < CornerTopLeft || o.ReferenceCorner > CornerBottomRight {
		return errors.Wrapf(ErrInvalidOptions, "unknown corner %d", int(o.ReferenceCorner))
	}
	if o.Estimator < EstimatorCorner || o.Estimator > EstimatorKMeans {
		return errors.Wrapf(ErrInvalidOptions, "unknown estimator %d", int(o.Estimator))
	}
	if o.Mode != ModeSegment && o.Mode != ModeGrid {
		return errors.Wrapf(ErrInvalidOptions, "unknown mode %d", int(o.Mode))
	}
	if n := o.Layout.RowLayout().Expected(); o.Labels != nil && len(o.Labels) != n {
		return errors.Wrapf(ErrInvalidOptions, "%d labels for %s layout with %d slots", len(o.Labels), o.Layout, n)
	}
	seen := make(map[string]bool)
	for _, label := range o.Classifier().Labels() {
		if strings.HasPrefix(label, detectedPrefix) {
			return errors.Wrapf(ErrInvalidOptions, "label %q is reserved for unnamed regions", label)
		}
		if seen[label] {
			return errors.Wrapf(ErrInvalidOptions, "duplicate label %q", label)
		}
		seen[label] = true
	}
	return nil
}

type Layout int

const (
	LayoutTwoOneTwo Layout = iota
	LayoutTwoByTwo
)

func (l Layout) String() string {
	switch l {
	case LayoutTwoByTwo:
		return "two-by-two"
	default:
		return "two-one-two"
	}
}

func (l Layout) RowLayout() *RowLayout {
	switch l {
	case LayoutTwoByTwo:
		return TwoByTwo()
	default:
		return TwoOneTwo()
	}
}

func (l *Layout) UnmarshalText(text []byte) error {
	v, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func ParseLayout(s string) (Layout, error) {
	switch normalizeName(s) {
	case "two-one-two", "":
		return LayoutTwoOneTwo, nil
	case "two-by-two":
		return LayoutTwoByTwo, nil
	}
	return 0, errors.Wrapf(ErrInvalidOptions, "unknown layout %q", s)
}

type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

var cornerNames = [...]string{"top-left", "top-right", "bottom-left", "bottom-right"}

func (c Corner) String() string {
	if c < 0 || int(c) >= len(cornerNames) {
		return fmt.Sprintf("corner(%d)", int(c))
	}
	return cornerNames[c]
}

// Point returns the pixel position of the corner inside r.
func (c Corner) Point(r image.Rectangle) image.Point {
	switch c {
	case CornerTopRight:
		return image.Pt(r.Max.X-1, r.Min.Y)
	case CornerBottomLeft:
		return image.Pt(r.Min.X, r.Max.Y-1)
	case CornerBottomRight:
		return image.Pt(r.Max.X-1, r.Max.Y-1)
	default:
		return r.Min
	}
}

func (c *Corner) UnmarshalText(text []byte) error {
	v, err := ParseCorner(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func ParseCorner(s string) (Corner, error) {
	n := normalizeName(s)
	if n == "" {
		return CornerTopLeft, nil
	}
	for i, name := range cornerNames {
		if n == name {
			return Corner(i), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidOptions, "unknown corner %q", s)
}

type EstimatorKind int

const (
	EstimatorCorner EstimatorKind = iota
	EstimatorMedian
	EstimatorDominant
	EstimatorKMeans
)

func (k EstimatorKind) String() string {
	switch k {
	case EstimatorMedian:
		return "median"
	case EstimatorDominant:
		return "dominant"
	case EstimatorKMeans:
		return "kmeans"
	default:
		return "corner"
	}
}

func (k *EstimatorKind) UnmarshalText(text []byte) error {
	v, err := ParseEstimator(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func ParseEstimator(s string) (EstimatorKind, error) {
	switch normalizeName(s) {
	case "corner", "":
		return EstimatorCorner, nil
	case "median":
		return EstimatorMedian, nil
	case "dominant":
		return EstimatorDominant, nil
	case "kmeans":
		return EstimatorKMeans, nil
	}
	return 0, errors.Wrapf(ErrInvalidOptions, "unknown estimator %q", s)
}

type Mode int

const (
	ModeSegment Mode = iota
	ModeGrid
)

func (m Mode) String() string {
	if m == ModeGrid {
		return "grid"
	}
	return "segment"
}

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func ParseMode(s string) (Mode, error) {
	switch normalizeName(s) {
	case "segment", "":
		return ModeSegment, nil
	case "grid":
		return ModeGrid, nil
	}
	return 0, errors.Wrapf(ErrInvalidOptions, "unknown mode %q", s)
}

// normalizeName accepts "TOP_LEFT", "top_left" and "top-left" alike.
func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}
