package tui

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoTerminal is returned by Init when there is no controlling
	// terminal to take over.
	ErrNoTerminal = errors.New("no controlling terminal")

	// ErrInputClosed is returned by GetChar when the terminal input reaches
	// end of file before a key is pressed.
	ErrInputClosed = errors.New("terminal input closed")

	// ErrNotSupported is returned by Init when the renderer is not available
	// in this build or on this platform.
	ErrNotSupported = errors.New("renderer not supported")
)

// Types of terminal events
type EventType int

const (
	Rune EventType = iota
	Ctrl
	Esc
	Special

	Invalid
	Resize
)

func (t EventType) String() string {
	switch t {
	case Rune:
		return "Rune"
	case Ctrl:
		return "Ctrl"
	case Esc:
		return "Esc"
	case Special:
		return "Special"
	case Invalid:
		return "Invalid"
	case Resize:
		return "Resize"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is a key press or a terminal notification
type Event struct {
	Type EventType
	Char rune
}

// IsKey returns true if the event was produced by a key press
func (e Event) IsKey() bool {
	return e.Type < Invalid
}

// KeyName returns a readable name of the key, or an empty string when the
// event is not a key press
func (e Event) KeyName() string {
	switch e.Type {
	case Rune:
		if e.Char == ' ' {
			return "space"
		}
		return string(e.Char)
	case Ctrl:
		switch e.Char {
		case 0:
			return "ctrl-space"
		case '\t':
			return "tab"
		case '\r', '\n':
			return "enter"
		case 127:
			return "backspace"
		}
		if e.Char >= 1 && e.Char <= 26 {
			return "ctrl-" + string('a'+e.Char-1)
		}
		return fmt.Sprintf("ctrl-%d", e.Char)
	case Esc:
		return "esc"
	case Special:
		return "special"
	}
	return ""
}

// Key returns the event of typing r
func Key(r rune) Event {
	return Event{Rune, r}
}

// Renderer owns the terminal between Init and Close.
//
// Init acquires the terminal and switches it to full-screen mode. Close
// restores the terminal to the state it was in before Init. Close must be
// safe to call more than once and after a failed Init.
type Renderer interface {
	Init() error
	Print(text string)
	Refresh() error
	GetChar() (Event, error)
	Close()
}
