package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gg"

	"github.com/example/drawpad/internal/config"
	"github.com/example/drawpad/internal/notify"
	"github.com/example/drawpad/internal/palette"
	"github.com/example/drawpad/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	palette      *palette.Palette
	saveAlerts   bool
	shareAlerts  bool
	copyAlerts   bool
	failureAlert bool
	verbose      bool
	themeName    string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	r := &root{
		fs:       flag.NewFlagSet("drawpad", flag.ExitOnError),
		program:  "drawpad",
		notifier: notify.New(prefs),
		config:   cfg,
		palette:  palette.New(),
	}
	cfg.ApplyPalette(r.palette)
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.shareAlerts, "notify-share", cfg.Notify.Share, "show a desktop notification when a drawing is shared")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.failureAlert, "notify-failure", cfg.Notify.Failure, "show a desktop notification when saving fails")
	r.fs.BoolVar(&r.verbose, "verbose", false, "log rasterizer diagnostics to stderr")
	// Precedence: CLI > Env > Config > Default. Env was folded into the
	// config above.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Builtin(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventShare, r.shareAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventFailure, r.failureAlert)
	}
	if r.verbose {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// loadTheme resolves the theme name from the flag or config, preferring
// themes defined in the config file over the built-in and installed ones.
func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
