// Command spritesplit cuts the named sprites out of a composite sprite sheet.
package main

import (
	"flag"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/golang/glog"
)

const desc = `Cuts individual named sprites out of a single composite sprite sheet,
strips their background and trims them to their opaque extent.`

var cli struct {
	Verbose int `short:"v" type:"counter" help:"Log more detail (repeat for more)."`

	Extract extractCmd `cmd:"" help:"Segment a sprite sheet and write one image per sprite."`
	Inspect inspectCmd `cmd:"" help:"Print size and corner/centre pixels of images."`
	Copy    copyCmd    `cmd:"" help:"Re-encode a single sprite image."`
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("spritesplit"),
		kong.Description(desc),
		kong.UsageOnError(),
	)
	setupLogging(cli.Verbose)
	defer glog.Flush()

	err := ctx.Run()
	if err != nil {
		glog.Errorf("%s: %v", ctx.Command(), err)
		glog.Flush()
	}
	ctx.FatalIfErrorf(err)
}

// setupLogging routes glog to stderr; kong owns the command line, so the glog
// flags are set by hand.
func setupLogging(verbose int) {
	_ = flag.CommandLine.Parse(nil)
	_ = flag.Set("logtostderr", "true")
	_ = flag.Set("v", strconv.Itoa(verbose))
}
