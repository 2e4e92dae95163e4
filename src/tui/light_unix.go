//go:build !windows

package tui

import (
	"os"
	"syscall"

	"github.com/nihao-tui/nihao/src/util"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func IsLightRendererSupported() bool {
	return true
}

func (r *LightRenderer) fd() int {
	return int(r.ttyin.Fd())
}

func (r *LightRenderer) initPlatform() error {
	var err error
	if r.ttyin, err = openTtyIn(r.ttyDefault); err != nil {
		return err
	}
	if r.ttyout, err = openTtyOut(r.ttyDefault); err != nil {
		return err
	}
	r.out = r.ttyout

	if r.origState, err = term.MakeRaw(r.fd()); err != nil {
		return errors.Wrapf(ErrNoTerminal, "%s: %v", r.ttyin.Name(), err)
	}
	return nil
}

func (r *LightRenderer) closePlatform() {
	if r.ttyin != nil {
		r.ttyin.Close()
		r.ttyin = nil
	}
	if r.ttyout != nil {
		r.ttyout.Close()
		r.ttyout = nil
	}
	r.out = nil
}

func openTty(ttyDefault string, mode int) (*os.File, error) {
	if len(ttyDefault) > 0 && ttyDefault != DefaultTtyDevice {
		// An explicit device is never substituted
		in, err := os.OpenFile(ttyDefault, mode, 0)
		if err != nil {
			return nil, errors.Wrap(ErrNoTerminal, err.Error())
		}
		if !util.IsTerminal(in) {
			in.Close()
			return nil, errors.Wrap(ErrNoTerminal, ttyDefault+" is not a terminal")
		}
		return in, nil
	}

	// Keys are read from the terminal behind standard input
	if !util.IsTerminal(os.Stdin) {
		return nil, errors.Wrap(ErrNoTerminal, "standard input is not a terminal")
	}
	if tty := ttyname(os.Stdin); len(tty) > 0 {
		if in, err := os.OpenFile(tty, mode, 0); err == nil {
			return in, nil
		}
	}
	if in, err := os.OpenFile(DefaultTtyDevice, mode, 0); err == nil {
		return in, nil
	}
	return nil, errors.Wrap(ErrNoTerminal, "failed to open "+DefaultTtyDevice)
}

func openTtyIn(ttyDefault string) (*os.File, error) {
	return openTty(ttyDefault, syscall.O_RDONLY)
}

func openTtyOut(ttyDefault string) (*os.File, error) {
	return openTty(ttyDefault, syscall.O_WRONLY)
}

func (r *LightRenderer) restoreTerminal() {
	if r.origState != nil && r.ttyin != nil {
		term.Restore(r.fd(), r.origState)
		r.origState = nil
	}
}

// getch reads a single byte from the terminal. A non-blocking read with
// nothing pending returns an error.
func (r *LightRenderer) getch(nonblock bool) (int, error) {
	fd := r.fd()
	if err := unix.SetNonblock(fd, nonblock); err != nil {
		return 0, err
	}
	b := make([]byte, 1)
	for {
		n, err := unix.Read(fd, b)
		if err == syscall.EINTR {
			continue
		}
		if err == syscall.EIO {
			// Hangup
			return 0, ErrInputClosed
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, ErrInputClosed
		}
		return int(b[0]), nil
	}
}
