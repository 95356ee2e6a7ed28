package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/idilsaglam/cabina/internal/cli"
	"github.com/idilsaglam/cabina/internal/config"
	"github.com/idilsaglam/cabina/internal/logging"
	"github.com/idilsaglam/cabina/internal/ui"
)

// flagFields maps root flags onto config fields.
var flagFields = map[string]string{
	"data-dir":  "data_dir",
	"backend":   "backend",
	"theme":     "theme",
	"color":     "color",
	"log-level": "log_level",
}

func main() {
	// Root flags (apply to every subcommand)
	fs := pflag.NewFlagSet("cabina", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	configPath := fs.String("config", "", "config file")
	fs.String("data-dir", "", "data directory")
	fs.String("backend", "", "storage backend: json or sqlite")
	fs.String("theme", "", "classic, neon or mono")
	fs.String("color", "", "auto, always or never")
	fs.String("log-level", "", "debug, info, warn or error")
	group := fs.BoolP("group", "g", false, "group ls output by pending/done")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}
	for name, field := range flagFields {
		if !fs.Changed(name) {
			continue
		}
		v, _ := fs.GetString(name)
		if err := cfg.Set(field, v, config.SourceFlag); err != nil {
			ui.Fail(os.Stderr, "--"+name+": "+err.Error())
			os.Exit(2)
		}
	}
	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}

	ui.SetTheme(cfg.Theme)
	ui.SetColorMode(cfg.Color)
	logger := logging.New(os.Stderr, cfg.LogLevel)

	// Hand the remaining args to the CLI runner; no subcommand opens the TUI.
	args := fs.Args()
	if len(args) == 0 {
		args = []string{"tui"}
	}

	code := cli.Run(args, cli.Options{
		Config: cfg,
		Logger: logger,
		Group:  *group,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
