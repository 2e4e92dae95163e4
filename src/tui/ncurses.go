//go:build ncurses && !windows

package tui

/*
#include <ncurses.h>
#include <locale.h>
#include <stdio.h>
#include <stdlib.h>
#cgo !static LDFLAGS: -lncursesw
#cgo static LDFLAGS: -l:libncursesw.a -l:libtinfo.a -ldl

FILE* c_tty(const char* mode) {
	return fopen("/dev/tty", mode);
}

SCREEN* c_newterm(FILE* out, FILE* in) {
	return newterm(NULL, out, in);
}
*/
import "C"

import (
	"os"
	"unicode/utf8"
	"unsafe"

	"github.com/nihao-tui/nihao/src/util"

	"github.com/pkg/errors"
)

func IsNcursesSupported() bool {
	return true
}

// NcursesRenderer drives the terminal through ncursesw
type NcursesRenderer struct {
	ttyin  *C.FILE
	ttyout *C.FILE
	screen *C.SCREEN
}

func NewNcursesRenderer() Renderer {
	return &NcursesRenderer{}
}

func (r *NcursesRenderer) Init() error {
	if !util.IsTty() {
		return errors.Wrap(ErrNoTerminal, "standard input is not a terminal")
	}

	empty := C.CString("")
	defer C.free(unsafe.Pointer(empty))
	C.setlocale(C.LC_ALL, empty)

	modeIn := C.CString("r")
	defer C.free(unsafe.Pointer(modeIn))
	modeOut := C.CString("w")
	defer C.free(unsafe.Pointer(modeOut))

	r.ttyin = C.c_tty(modeIn)
	r.ttyout = C.c_tty(modeOut)
	if r.ttyin == nil || r.ttyout == nil {
		r.closeFiles()
		return errors.Wrap(ErrNoTerminal, "failed to open "+DefaultTtyDevice)
	}
	r.screen = C.c_newterm(r.ttyout, r.ttyin)
	if r.screen == nil {
		r.closeFiles()
		return errors.Wrap(ErrNoTerminal, "invalid $TERM: "+os.Getenv("TERM"))
	}
	C.set_term(r.screen)
	C.noecho()
	C.raw()
	C.nonl()
	C.wclear(C.stdscr)
	return nil
}

func (r *NcursesRenderer) Print(text string) {
	if r.screen == nil {
		return
	}
	str := C.CString(text)
	defer C.free(unsafe.Pointer(str))
	C.waddstr(C.stdscr, str)
}

func (r *NcursesRenderer) Refresh() error {
	if r.screen == nil {
		return nil
	}
	if C.wrefresh(C.stdscr) == C.ERR {
		return errors.New("refresh failed")
	}
	return nil
}

func (r *NcursesRenderer) GetChar() (Event, error) {
	if r.screen == nil {
		return Event{Invalid, 0}, ErrInputClosed
	}
	c := C.wgetch(C.stdscr)
	if c == C.ERR {
		return Event{Invalid, 0}, ErrInputClosed
	}
	buffer := []byte{byte(c)}

	switch {
	case c == esc:
		// Drain the rest of an escape sequence
		C.nodelay(C.stdscr, true)
		for C.wgetch(C.stdscr) != C.ERR {
			buffer = append(buffer, 0)
		}
		C.nodelay(C.stdscr, false)
		if len(buffer) == 1 {
			return Event{Esc, 0}, nil
		}
		return Event{Special, 0}, nil
	case c < 32 || c == 127:
		return Event{Ctrl, rune(c)}, nil
	}

	for !utf8.FullRune(buffer) {
		c = C.wgetch(C.stdscr)
		if c == C.ERR {
			break
		}
		buffer = append(buffer, byte(c))
	}
	char, _ := utf8.DecodeRune(buffer)
	if char == utf8.RuneError {
		return Event{Special, 0}, nil
	}
	return Event{Rune, char}, nil
}

func (r *NcursesRenderer) closeFiles() {
	if r.ttyin != nil {
		C.fclose(r.ttyin)
		r.ttyin = nil
	}
	if r.ttyout != nil {
		C.fclose(r.ttyout)
		r.ttyout = nil
	}
}

func (r *NcursesRenderer) Close() {
	if r.screen != nil {
		C.endwin()
		C.delscreen(r.screen)
		r.screen = nil
	}
	r.closeFiles()
}
