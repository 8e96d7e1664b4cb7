package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/drawpad/internal/palette"
)

var stdout io.Writer = os.Stdout

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	pal := palette.Default
	if c.root != nil && c.root.palette != nil {
		pal = c.root.palette
	}
	entries := pal.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(stdout, "available palette colors (* marks the default color):")
	for idx, entry := range entries {
		marker := " "
		if strings.EqualFold(entry.Name, palette.DefaultColorName) {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(stdout, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, palette.Hex(entry.Color), block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Program() string {
	if c.root == nil {
		return "colors"
	}
	return c.root.program + " colors"
}

type widthsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ExitOnError)
	cmd := &widthsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	fmt.Fprintln(stdout, "available brush sizes (* marks the default size):")
	for _, b := range palette.Brushes() {
		marker := " "
		if b.Width == palette.DefaultBrushSize {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %-7s %3gpx\n", marker, b.Name, b.Width)
	}
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *widthsCmd) Program() string {
	if c.root == nil {
		return "widths"
	}
	return c.root.program + " widths"
}
