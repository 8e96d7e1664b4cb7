package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/example/drawpad/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Program() string {
	if c.root == nil {
		return "config"
	}
	return c.root.program + " config"
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Fprint(stdout, c.root.config.String())
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) runSave() error {
	path := config.NewLoader(version, configPathOverride).GetConfigPath()
	if path == "" {
		path = config.DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("error closing %q: %v", path, err)
		}
	}()
	if _, err := f.WriteString(c.root.config.String()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
