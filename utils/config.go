package utils

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/setanarut/spritesplit"
)

// LoadOptions reads a TOML options file on top of base. Keys follow the toml
// tags of spritesplit.Options, enum values use their string names:
//
//	layout = "two-one-two"
//	labels = ["turtle", "mouse", "larva", "slime", "shark"]
//	background_threshold = 30.0
//	reference_corner = "top-left"
func LoadOptions(path string, base spritesplit.Options) (spritesplit.Options, error) {
	opt := base
	md, err := toml.DecodeFile(path, &opt)
	if err != nil {
		return base, errors.Wrapf(err, "reading options %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.Wrapf(spritesplit.ErrInvalidOptions, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := opt.Validate(); err != nil {
		return base, errors.Wrapf(err, "options %s", path)
	}
	return opt, nil
}
