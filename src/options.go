package nihao

import (
	"os"
	"strings"

	"github.com/nihao-tui/nihao/src/tui"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

const Usage = `usage: nihao [options]

  Prints a greeting in full-screen mode and exits on the first key press.

    --renderer=NAME       Terminal back end [light|tcell|tea|ncurses]
                          (default: light, tcell on Windows)
    --tty=PATH            Terminal device for the light renderer
                          (default: /dev/tty)
    --ignore-locale       Continue when the locale is not UTF-8
    --log=FILE            Write a debug trace to FILE
    -h, --help            Show this message
    --version             Display version information and exit

  Environment variables
    NIHAO_DEFAULT_OPTS    Default options (e.g. '--renderer=tcell')
`

// Options stores the values of command-line options
type Options struct {
	Renderer     string
	Tty          string
	IgnoreLocale bool
	LogFile      string
	Help         bool
	Version      bool
}

func defaultRenderer() string {
	if tui.IsLightRendererSupported() {
		return rendererLight
	}
	return rendererTcell
}

func defaultOptions() *Options {
	return &Options{
		Renderer:     defaultRenderer(),
		Tty:          "",
		IgnoreLocale: false,
		LogFile:      "",
		Help:         false,
		Version:      false}
}

func optString(arg string, prefixes ...string) (bool, string) {
	for _, prefix := range prefixes {
		if strings.HasPrefix(arg, prefix) {
			return true, arg[len(prefix):]
		}
	}
	return false, ""
}

func nextString(args []string, i *int, message string) (string, error) {
	if len(args) > *i+1 {
		*i++
	} else {
		return "", errors.New(message)
	}
	return args[*i], nil
}

func parseRenderer(str string) (string, error) {
	switch str {
	case rendererLight:
		if !tui.IsLightRendererSupported() {
			return "", errors.New("light renderer is not supported on this platform")
		}
		return str, nil
	case rendererTcell, rendererTea, rendererNcurses:
		return str, nil
	}
	return "", errors.New("invalid renderer (expected: light / tcell / tea / ncurses)")
}

func parseNonEmpty(str string, message string) (string, error) {
	if len(str) == 0 {
		return "", errors.New(message)
	}
	return str, nil
}

func parseOptions(opts *Options, allArgs []string) error {
	var err error
	for i := 0; i < len(allArgs); i++ {
		arg := allArgs[i]
		switch arg {
		case "-h", "--help":
			opts.Help = true
		case "--version":
			opts.Version = true
		case "--ignore-locale":
			opts.IgnoreLocale = true
		case "--no-ignore-locale":
			opts.IgnoreLocale = false
		case "--renderer":
			var str string
			if str, err = nextString(allArgs, &i, "renderer name required"); err != nil {
				return err
			}
			if opts.Renderer, err = parseRenderer(str); err != nil {
				return err
			}
		case "--tty":
			if opts.Tty, err = nextString(allArgs, &i, "tty device required"); err != nil {
				return err
			}
		case "--log":
			if opts.LogFile, err = nextString(allArgs, &i, "log file required"); err != nil {
				return err
			}
		case "--no-log":
			opts.LogFile = ""
		default:
			if match, value := optString(arg, "--renderer="); match {
				if opts.Renderer, err = parseRenderer(value); err != nil {
					return err
				}
			} else if match, value := optString(arg, "--tty="); match {
				if opts.Tty, err = parseNonEmpty(value, "tty device required"); err != nil {
					return err
				}
			} else if match, value := optString(arg, "--log="); match {
				if opts.LogFile, err = parseNonEmpty(value, "log file required"); err != nil {
					return err
				}
			} else {
				return errors.New("unknown option: " + arg)
			}
		}
	}
	return nil
}

// ParseOptions parses command-line options. When useDefaults is set, the
// options in $NIHAO_DEFAULT_OPTS are applied first.
func ParseOptions(useDefaults bool, args []string) (*Options, error) {
	opts := defaultOptions()

	if useDefaults {
		// Options from Env var
		words, err := shellwords.Parse(os.Getenv(defaultOptsEnv))
		if err != nil {
			return nil, errors.Wrap(err, "invalid "+defaultOptsEnv)
		}
		if len(words) > 0 {
			if err := parseOptions(opts, words); err != nil {
				return nil, errors.Wrap(err, defaultOptsEnv)
			}
		}
	}

	// Options from command-line arguments
	if err := parseOptions(opts, args); err != nil {
		return nil, err
	}
	return opts, nil
}
