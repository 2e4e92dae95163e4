/*
Package nihao implements a minimal full-screen terminal greeter.
*/
package nihao

import (
	"os"
	"sync"
	"syscall"

	"github.com/nihao-tui/nihao/src/locale"
	"github.com/nihao-tui/nihao/src/tui"
	"github.com/nihao-tui/nihao/src/util"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

func newRenderer(opts *Options) tui.Renderer {
	switch opts.Renderer {
	case rendererTcell:
		return tui.NewTcellRenderer()
	case rendererTea:
		return tui.NewTeaRenderer()
	case rendererNcurses:
		return tui.NewNcursesRenderer()
	}
	return tui.NewLightRenderer(opts.Tty)
}

// Run applies the locale, shows the greeting and waits for a key press.
// The terminal is restored before Run returns, and also when the process is
// terminated by a signal while waiting.
func Run(opts *Options) (int, error) {
	return run(opts, os.Getenv, newRenderer)
}

func run(opts *Options, getenv func(string) string, rendererFn func(*Options) tui.Renderer) (int, error) {
	logger, closeLog, err := newLogger(opts.LogFile)
	if err != nil {
		return ExitError, err
	}
	defer closeLog()

	loc, err := locale.Resolve(getenv)
	switch {
	case err == nil:
	case errors.Is(err, locale.ErrInvalid):
		// Unknown locale names fall back to the portable locale
		logger.Warn("using portable locale", "err", err)
		loc, _ = locale.Parse(locale.Portable)
	case opts.IgnoreLocale:
		logger.Warn("ignoring locale error", "err", err)
	default:
		return ExitError, err
	}
	logger.Debug("locale", "name", loc.Name, "tag", loc.Tag, "codeset", loc.Codeset, "utf8", loc.UTF8)

	stop := util.ExitOnSignal(ExitInterrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Debug("starting renderer", "renderer", opts.Renderer)
	code, err := greet(rendererFn(opts), logger)
	if err != nil {
		logger.Error("failed", "err", err)
	}
	return code, err
}

// greet runs the session on the renderer: take over the terminal, print the
// greeting, flush, wait for one key and hand the terminal back.
func greet(renderer tui.Renderer, logger *log.Logger) (int, error) {
	// Registered before Init so a signal delivered during Init still
	// restores the terminal
	release := sync.OnceFunc(renderer.Close)
	util.AtExit(release)
	defer release()

	if err := renderer.Init(); err != nil {
		return ExitError, err
	}

	renderer.Print(Greeting)
	if err := renderer.Refresh(); err != nil {
		return ExitError, errors.Wrap(err, "failed to refresh screen")
	}

	for {
		ev, err := renderer.GetChar()
		if err != nil {
			return ExitError, err
		}
		if ev.IsKey() {
			logger.Debug("key pressed", "key", ev.KeyName())
			return ExitOk, nil
		}
		logger.Debug("event ignored", "type", ev.Type)
	}
}
