//go:build !ncurses || windows

package tui

import "github.com/pkg/errors"

func IsNcursesSupported() bool {
	return false
}

// NcursesRenderer is a placeholder for builds without the ncurses tag
type NcursesRenderer struct{}

func NewNcursesRenderer() Renderer {
	return &NcursesRenderer{}
}

func (r *NcursesRenderer) Init() error {
	return errors.Wrap(ErrNotSupported, "ncurses renderer requires building with -tags ncurses")
}

func (r *NcursesRenderer) Print(text string) {}

func (r *NcursesRenderer) Refresh() error {
	return nil
}

func (r *NcursesRenderer) GetChar() (Event, error) {
	return Event{Invalid, 0}, ErrInputClosed
}

func (r *NcursesRenderer) Close() {}
