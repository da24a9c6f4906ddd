package spritesplit

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"slices"
)

// NamedRegion is a labelled component. CenterX and CenterY are the centre of
// the component box and drive spatial ordering.
type NamedRegion struct {
	Label string
	Component
	CenterX, CenterY float64
}

func newRegion(label string, c Component) NamedRegion {
	cx, cy := c.Center()
	return NamedRegion{Label: label, Component: c, CenterX: cx, CenterY: cy}
}

// LayoutClassifier names the components found on a sprite sheet.
type LayoutClassifier interface {
	// Expected is the component count the classifier can name.
	Expected() int
	// Classify labels comps. It never fails: a count mismatch yields
	// positional labels plus a SegmentationAnomaly warning.
	Classify(comps []Component) ([]NamedRegion, []Warning)
}

// GridLayout cuts fixed cells out of a sheet without looking at its pixels.
type GridLayout interface {
	Cells(bounds image.Rectangle) []NamedRegion
}

// Slot is one named position of a RowLayout. Col and Row address the cell
// used in grid mode.
type Slot struct {
	Label    string
	Col, Row int
}

// RowLayout buckets component centres into horizontal bands and names each
// band left to right. It is a fixed small-N classifier, not a grid solver.
type RowLayout struct {
	Name string
	// Upper edge of every band but the last, as a fraction of the vertical
	// span of the component centres.
	Bands []float64
	Rows  [][]Slot
	// Grid size used by Cells.
	GridCols, GridRows int
}

// TwoOneTwo is the default five-sprite arrangement: two on top, one in the
// centre, two at the bottom.
func TwoOneTwo() *RowLayout {
	return &RowLayout{
		Name:  "two-one-two",
		Bands: []float64{0.33, 0.66},
		Rows: [][]Slot{
			{{"top-left", 0, 0}, {"top-right", 2, 0}},
			{{"center", 1, 1}},
			{{"bottom-left", 0, 2}, {"bottom-right", 2, 2}},
		},
		GridCols: 3,
		GridRows: 3,
	}
}

func TwoByTwo() *RowLayout {
	return &RowLayout{
		Name:  "two-by-two",
		Bands: []float64{0.5},
		Rows: [][]Slot{
			{{"top-left", 0, 0}, {"top-right", 1, 0}},
			{{"bottom-left", 0, 1}, {"bottom-right", 1, 1}},
		},
		GridCols: 2,
		GridRows: 2,
	}
}

func (l *RowLayout) Expected() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}

// Labels lists the slot labels in row-major order.
func (l *RowLayout) Labels() []string {
	out := make([]string, 0, l.Expected())
	for _, row := range l.Rows {
		for _, s := range row {
			out = append(out, s.Label)
		}
	}
	return out
}

// WithLabels returns a copy of l whose slots are renamed in row-major order.
// Missing labels keep the original names.
func (l *RowLayout) WithLabels(labels []string) *RowLayout {
	out := *l
	out.Rows = make([][]Slot, len(l.Rows))
	i := 0
	for r, row := range l.Rows {
		out.Rows[r] = slices.Clone(row)
		for c := range out.Rows[r] {
			if i < len(labels) && labels[i] != "" {
				out.Rows[r][c].Label = labels[i]
			}
			i++
		}
	}
	return &out
}

func (l *RowLayout) Classify(comps []Component) ([]NamedRegion, []Warning) {
	if len(comps) != l.Expected() {
		return Positional(comps), []Warning{{
			Kind: SegmentationAnomaly,
			Message: fmt.Sprintf("found %d components, %s layout expects %d; using positional names",
				len(comps), l.Name, l.Expected()),
		}}
	}
	if len(comps) == 0 {
		return nil, nil
	}

	type entry struct {
		region NamedRegion
		index  int
	}
	entries := make([]entry, len(comps))
	for i, c := range comps {
		entries[i] = entry{region: newRegion("", c), index: i}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.region.CenterY, b.region.CenterY)
	})

	minY := entries[0].region.CenterY
	span := entries[len(entries)-1].region.CenterY - minY

	buckets := make([][]entry, len(l.Rows))
	for _, e := range entries {
		row := l.band(e.region.CenterY, minY, span)
		buckets[row] = append(buckets[row], e)
	}

	var named, extra []NamedRegion
	var warnings []Warning
	for row, bucket := range buckets {
		slices.SortStableFunc(bucket, func(a, b entry) int {
			return cmp.Compare(a.region.CenterX, b.region.CenterX)
		})
		for i, e := range bucket {
			if i < len(l.Rows[row]) {
				e.region.Label = l.Rows[row][i].Label
				named = append(named, e.region)
				continue
			}
			e.region.Label = detectedLabel(e.index)
			extra = append(extra, e.region)
			warnings = append(warnings, Warning{
				Kind:   SegmentationAnomaly,
				Region: e.region.Label,
				Message: fmt.Sprintf("band %d holds %d components but has %d slots",
					row, len(bucket), len(l.Rows[row])),
			})
		}
	}
	return append(named, extra...), warnings
}

func (l *RowLayout) band(cy, minY, span float64) int {
	for i, b := range l.Bands {
		if i >= len(l.Rows)-1 {
			break
		}
		if cy < minY+span*b {
			return i
		}
	}
	return len(l.Rows) - 1
}

// Cells splits bounds into a GridCols x GridRows grid and returns the cell of
// every slot. Cell edges are rounded to the nearest pixel.
func (l *RowLayout) Cells(bounds image.Rectangle) []NamedRegion {
	if bounds.Empty() || l.GridCols <= 0 || l.GridRows <= 0 {
		return nil
	}
	w, h := bounds.Dx(), bounds.Dy()
	edge := func(i, n, size int) int {
		return int(math.Round(float64(i*size) / float64(n)))
	}
	var out []NamedRegion
	for _, row := range l.Rows {
		for _, s := range row {
			x0, x1 := edge(s.Col, l.GridCols, w), edge(s.Col+1, l.GridCols, w)
			y0, y1 := edge(s.Row, l.GridRows, h), edge(s.Row+1, l.GridRows, h)
			if x1 <= x0 || y1 <= y0 {
				continue
			}
			out = append(out, newRegion(s.Label, Component{
				MinX: bounds.Min.X + x0,
				MinY: bounds.Min.Y + y0,
				MaxX: bounds.Min.X + x1 - 1,
				MaxY: bounds.Min.Y + y1 - 1,
			}))
		}
	}
	return out
}

// Positional labels comps detected_0, detected_1, ... in discovery order.
func Positional(comps []Component) []NamedRegion {
	out := make([]NamedRegion, len(comps))
	for i, c := range comps {
		out[i] = newRegion(detectedLabel(i), c)
	}
	return out
}

const detectedPrefix = "detected_"

func detectedLabel(i int) string {
	return fmt.Sprintf("%s%d", detectedPrefix, i)
}
