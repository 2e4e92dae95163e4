// Package locale resolves the host locale the way setlocale(LC_ALL, "") does
// and reports whether text can be written to the terminal as UTF-8.
package locale

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

var (
	// ErrUnsupported means the locale names a codeset other than UTF-8
	ErrUnsupported = errors.New("unsupported locale")

	// ErrInvalid means the locale name could not be parsed
	ErrInvalid = errors.New("invalid locale")
)

// Portable is the name of the locale used when none is configured
const Portable = "C"

const utf8Codeset = "UTF-8"

// Variables consulted for LC_CTYPE, in order of precedence
var envPrecedence = [...]string{"LC_ALL", "LC_CTYPE", "LANG"}

// Locale describes the character classification category of the host locale
type Locale struct {
	// Name as found in the environment
	Name string
	// Tag is language.Und for the portable locale
	Tag     language.Tag
	Codeset string
	UTF8    bool
}

func (l Locale) String() string {
	return l.Name
}

// IsPortable returns true for the C and POSIX locales
func (l Locale) IsPortable() bool {
	return l.Name == Portable || l.Name == "POSIX"
}

func normalizeCodeset(codeset string) string {
	upper := strings.ToUpper(codeset)
	if strings.NewReplacer("-", "", "_", "").Replace(upper) == "UTF8" {
		return utf8Codeset
	}
	return upper
}

// Parse interprets a locale name of the form
// language[_territory][.codeset][@modifier].
//
// A non-UTF-8 codeset returns the parsed Locale together with
// ErrUnsupported so the caller may choose to continue. A name whose language
// part is not a valid tag returns ErrInvalid.
func Parse(name string) (Locale, error) {
	if len(name) == 0 {
		name = Portable
	}
	loc := Locale{Name: name, Tag: language.Und}

	base := name
	if idx := strings.IndexByte(base, '@'); idx >= 0 {
		base = base[:idx]
	}
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		loc.Codeset = normalizeCodeset(base[idx+1:])
		base = base[:idx]
	}

	if len(loc.Codeset) == 0 && normalizeCodeset(base) == utf8Codeset {
		// A bare codeset, as in LC_CTYPE=UTF-8 on macOS
		loc.Codeset = utf8Codeset
		loc.UTF8 = true
		return loc, nil
	}

	if base == Portable || base == "POSIX" {
		// The portable locale only promises ASCII, which UTF-8 encodes
		// identically
		loc.UTF8 = loc.Codeset == utf8Codeset
		return loc, nil
	}

	tag, err := language.Parse(strings.ReplaceAll(base, "_", "-"))
	if err != nil {
		return loc, errors.Wrapf(ErrInvalid, "%s: %v", name, err)
	}
	loc.Tag = tag

	switch loc.Codeset {
	case "":
		loc.Codeset = utf8Codeset
		loc.UTF8 = true
	case utf8Codeset:
		loc.UTF8 = true
	default:
		return loc, errors.Wrapf(ErrUnsupported, "%s: codeset %s", name, loc.Codeset)
	}
	return loc, nil
}

// Resolve picks the locale from LC_ALL, LC_CTYPE and LANG in that order
func Resolve(getenv func(string) string) (Locale, error) {
	for _, key := range envPrecedence {
		if value := getenv(key); len(value) > 0 {
			return Parse(value)
		}
	}
	return Parse(Portable)
}

// FromEnv resolves the locale of the current process
func FromEnv() (Locale, error) {
	return Resolve(os.Getenv)
}
