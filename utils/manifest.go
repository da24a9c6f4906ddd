package utils

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/setanarut/spritesplit"
)

// ManifestEntry locates one sprite inside the composite.
type ManifestEntry struct {
	File      string `json:"file,omitempty"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	W         int    `json:"w"`
	H         int    `json:"h"`
	Reference string `json:"reference,omitempty"`
}

// Manifest maps sprite names to their crop boxes, plus the warnings raised
// while extracting them.
type Manifest struct {
	Sprites  map[string]ManifestEntry `json:"sprites"`
	Warnings []string                 `json:"warnings,omitempty"`
}

// NewManifest builds the manifest of res. paths, when not nil, holds the file
// written for each sprite in order.
func NewManifest(res *spritesplit.Result, paths []string) Manifest {
	m := Manifest{Sprites: make(map[string]ManifestEntry, len(res.Sprites))}
	for i, s := range res.Sprites {
		e := ManifestEntry{
			X: s.Source.Min.X,
			Y: s.Source.Min.Y,
			W: s.Source.Dx(),
			H: s.Source.Dy(),
		}
		if s.Reference.A != 0 {
			e.Reference = FormatColor(s.Reference)
		}
		if i < len(paths) {
			e.File = paths[i]
		}
		m.Sprites[s.Name] = e
	}
	for _, w := range res.Warnings {
		m.Warnings = append(m.Warnings, w.String())
	}
	return m
}

func WriteManifest(w io.Writer, m Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(m), "encoding manifest")
}

func SaveManifest(m Manifest, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating manifest")
	}
	if err := WriteManifest(f, m); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "closing manifest")
}
