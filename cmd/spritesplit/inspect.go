package main

import (
	"fmt"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/setanarut/spritesplit/utils"
)

type inspectCmd struct {
	Images []string `arg:"" type:"existingfile" help:"Images to inspect."`
}

func (c *inspectCmd) Run() error {
	failed := 0
	for _, path := range c.Images {
		img, format, err := utils.ReadImage(path)
		if err != nil {
			glog.Errorf("%v", err)
			failed++
			continue
		}
		fmt.Printf("File: %s\n", filepath.Base(path))
		fmt.Print(utils.Inspect(img, format))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images could not be read", failed, len(c.Images))
	}
	return nil
}

type copyCmd struct {
	Source string `arg:"" type:"existingfile" help:"Sprite image to copy."`
	Dest   string `arg:"" type:"path" help:"Destination; the extension picks the format."`
}

func (c *copyCmd) Run() error {
	return utils.CopyImage(c.Source, c.Dest)
}
