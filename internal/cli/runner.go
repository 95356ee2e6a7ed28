package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/idilsaglam/cabina/internal/checklist"
	"github.com/idilsaglam/cabina/internal/config"
	"github.com/idilsaglam/cabina/internal/model"
	"github.com/idilsaglam/cabina/internal/store"
	"github.com/idilsaglam/cabina/internal/store/jsonstore"
	"github.com/idilsaglam/cabina/internal/store/sqlitestore"
	"github.com/idilsaglam/cabina/internal/template"
	"github.com/idilsaglam/cabina/internal/tui"
	"github.com/idilsaglam/cabina/internal/ui"
)

// Options carry the resolved config and I/O for a run.
type Options struct {
	Config config.Config
	Logger *log.Logger
	Group  bool // list grouped by pending/done

	In       io.Reader
	Out, Err io.Writer
	Now      func() time.Time

	// RunTUI replaces the interactive program; nil means tui.Run.
	RunTUI func(*checklist.Store) error
}

func (o *Options) defaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.RunTUI == nil {
		o.RunTUI = tui.Run
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "config":
		return doConfig(opt)

	case "tui":
		return withStore(opt, func(s *checklist.Store) int { return doTUI(s, opt) })

	case "ls":
		return withStore(opt, func(s *checklist.Store) int { return doList(s, opt) })

	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Err, "usage: cabina add <label...>")
			return 2
		}
		return withStore(opt, func(s *checklist.Store) int { return doAdd(s, strings.Join(a, " "), opt) })

	case "check":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: cabina check <index|id>")
			return 2
		}
		return withStore(opt, func(s *checklist.Store) int { return doToggle(s, a[0], opt) })

	case "edit":
		if len(a) < 2 {
			ui.Fail(opt.Err, "usage: cabina edit <index|id> <label...>")
			return 2
		}
		return withStore(opt, func(s *checklist.Store) int { return doEdit(s, a[0], strings.Join(a[1:], " "), opt) })

	case "rm":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: cabina rm <index|id>")
			return 2
		}
		return withStore(opt, func(s *checklist.Store) int { return doRemove(s, a[0], opt) })

	case "reset":
		return doReset(a, opt)

	case "export":
		return doExport(a, opt)

	case "import":
		return doImport(a, opt)
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `cabina - photo-booth setup checklist

Usage:
  cabina [flags] [subcommand] [args]

Subcommands:
  tui                     Interactive checklist (default)
  ls                      Print the checklist
  check <index|id>        Check or uncheck an item
  add <label...>          Add an item to the list
  edit <index|id> <label...>
                          Rename an item
  rm <index|id>           Remove an item
  reset [-y]              Uncheck everything for the next event
  export [-f json|yaml]   Write the list to stdout
  import [-f json|yaml] <file|->
                          Replace the list from a file
  config                  Show resolved settings

Flags:
  --config <path>         Config file (default ~/.cabina/config.toml)
  --data-dir <dir>        Where the checklist is stored
  --backend json|sqlite   Storage backend
  --theme classic|neon|mono
  --color auto|always|never
  --log-level debug|info|warn|error
  -g, --group             Group ls output by pending/done

Indexes are 1-based, as shown by ls.

Examples:
  cabina add "Flash externo"
  cabina check 3
  cabina edit 2 "Lente 50mm"
  cabina reset -y
`)
}

// -------------- store wiring ----------------

func openBackend(cfg config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlitestore.Open(cfg.StorePath())
	default:
		return jsonstore.Open(cfg.StorePath())
	}
}

// withStore opens the configured backend, loads the checklist and runs fn.
func withStore(opt Options, fn func(*checklist.Store) int) int {
	b, err := openBackend(opt.Config)
	if err != nil {
		ui.Fail(opt.Err, "open store: "+err.Error())
		return 1
	}
	a := store.New(b, opt.Config.KeyPrefix, opt.Logger)
	defer func() {
		if err := a.Close(); err != nil {
			opt.Logger.Warn("close store", "err", err)
		}
	}()
	opt.Logger.Debug("store opened", "backend", opt.Config.Backend, "path", opt.Config.StorePath())
	return fn(checklist.Open(a))
}

// resolve finds an item by 1-based index, falling back to its id.
func resolve(s *checklist.Store, ref string) (model.Item, error) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= s.Len() {
		return s.At(n - 1)
	}
	if i := s.Index(ref); i >= 0 {
		return s.At(i)
	}
	return model.Item{}, fmt.Errorf("%q: %w", ref, checklist.ErrNotFound)
}

func lookupFail(opt Options, s *checklist.Store, err error) int {
	ui.Fail(opt.Err, fmt.Sprintf("%v (have %d items)", err, s.Len()))
	ui.Hint(opt.Err, "Hint: run `cabina ls` to see valid indexes")
	return 2
}

func saveFail(opt Options, err error) int {
	ui.Fail(opt.Err, "save: "+err.Error())
	return 1
}

// -------------- subcommand impls ----------------

func doTUI(s *checklist.Store, opt Options) int {
	if err := opt.RunTUI(s); err != nil {
		ui.Fail(opt.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

func doList(s *checklist.Store, opt Options) int {
	fmt.Fprintln(opt.Out, renderList(s, opt))
	return 0
}

func doAdd(s *checklist.Store, label string, opt Options) int {
	it, ok, err := s.Add(label)
	if err != nil {
		return saveFail(opt, err)
	}
	if !ok {
		ui.Fail(opt.Err, "add: empty label")
		return 2
	}
	ui.OK(opt.Out, fmt.Sprintf("added %q", it.Label))
	return 0
}

func doToggle(s *checklist.Store, ref string, opt Options) int {
	it, err := resolve(s, ref)
	if err != nil {
		return lookupFail(opt, s, err)
	}
	if _, err := s.Toggle(it.ID); err != nil {
		return saveFail(opt, err)
	}
	if s.IsChecked(it.ID) {
		ui.OK(opt.Out, "checked "+it.Label)
	} else {
		ui.OK(opt.Out, "unchecked "+it.Label)
	}
	c, total := s.Counts()
	if s.AllDone() {
		ui.OK(opt.Out, fmt.Sprintf("all set! %d/%d", c, total))
	}
	return 0
}

func doEdit(s *checklist.Store, ref, label string, opt Options) int {
	it, err := resolve(s, ref)
	if err != nil {
		return lookupFail(opt, s, err)
	}
	ok, err := s.Edit(it.ID, label)
	if err != nil {
		return saveFail(opt, err)
	}
	if !ok {
		ui.Fail(opt.Err, "edit: empty label")
		return 2
	}
	ui.OK(opt.Out, "renamed")
	return 0
}

func doRemove(s *checklist.Store, ref string, opt Options) int {
	it, err := resolve(s, ref)
	if err != nil {
		return lookupFail(opt, s, err)
	}
	if _, err := s.Delete(it.ID); err != nil {
		return saveFail(opt, err)
	}
	ui.OK(opt.Out, "removed "+it.Label)
	return 0
}

func doReset(args []string, opt Options) int {
	fs := pflag.NewFlagSet("reset", pflag.ContinueOnError)
	fs.SetOutput(opt.Err)
	yes := fs.BoolP("yes", "y", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		ui.Fail(opt.Err, "usage: cabina reset [-y]")
		return 2
	}
	return withStore(opt, func(s *checklist.Store) int {
		if !*yes && !confirm(opt, "Reset all checks for the next event? [y/N] ") {
			ui.Hint(opt.Out, "cancelled")
			return 0
		}
		if err := s.Reset(); err != nil {
			return saveFail(opt, err)
		}
		ui.OK(opt.Out, "reset")
		return 0
	})
}

func confirm(opt Options, prompt string) bool {
	fmt.Fprint(opt.Out, prompt)
	line, err := bufio.NewReader(opt.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func doExport(args []string, opt Options) int {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	fs.SetOutput(opt.Err)
	format := fs.StringP("format", "f", "json", "json or yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	f, err := template.ParseFormat(*format)
	if err != nil {
		ui.Fail(opt.Err, "export: "+err.Error())
		return 2
	}
	return withStore(opt, func(s *checklist.Store) int {
		if err := template.Export(opt.Out, s.Items(), f); err != nil {
			ui.Fail(opt.Err, "export: "+err.Error())
			return 1
		}
		return 0
	})
}

func doImport(args []string, opt Options) int {
	fs := pflag.NewFlagSet("import", pflag.ContinueOnError)
	fs.SetOutput(opt.Err)
	format := fs.StringP("format", "f", "", "json or yaml (default: from file extension)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		ui.Fail(opt.Err, "usage: cabina import [-f json|yaml] <file|->")
		return 2
	}
	path := fs.Arg(0)

	f := template.FormatFromPath(path)
	if *format != "" {
		var err error
		if f, err = template.ParseFormat(*format); err != nil {
			ui.Fail(opt.Err, "import: "+err.Error())
			return 2
		}
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(opt.In)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		ui.Fail(opt.Err, "import: "+err.Error())
		return 1
	}
	items, err := template.Parse(data, f)
	if err != nil {
		ui.Fail(opt.Err, "import: "+err.Error())
		return 1
	}

	return withStore(opt, func(s *checklist.Store) int {
		if err := s.Replace(items); err != nil {
			return saveFail(opt, err)
		}
		ui.OK(opt.Out, fmt.Sprintf("imported %d items", s.Len()))
		return 0
	})
}

func doConfig(opt Options) int {
	fmt.Fprintln(opt.Out, ui.Panel(strings.Join(opt.Config.Lines(), "\n")))
	return 0
}
