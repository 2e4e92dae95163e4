package tui

import (
	"github.com/nihao-tui/nihao/src/util"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/encoding"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

// TcellRenderer draws through a tcell screen
type TcellRenderer struct {
	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen
	x         int
	y         int
}

// NewTcellRenderer returns a renderer on the terminal behind standard input
func NewTcellRenderer() Renderer {
	return &TcellRenderer{newScreen: newStdinScreen}
}

func newStdinScreen() (tcell.Screen, error) {
	if !util.IsTty() {
		return nil, errors.New("standard input is not a terminal")
	}
	return tcell.NewScreen()
}

func newTcellRendererWithScreen(screen tcell.Screen) *TcellRenderer {
	return &TcellRenderer{newScreen: func() (tcell.Screen, error) {
		return screen, nil
	}}
}

func (r *TcellRenderer) Init() error {
	// Lets tcell fall back to the terminal's legacy charset when the
	// locale is not UTF-8
	encoding.Register()

	s, err := r.newScreen()
	if err != nil {
		return errors.Wrap(ErrNoTerminal, err.Error())
	}
	if err = s.Init(); err != nil {
		return errors.Wrap(ErrNoTerminal, err.Error())
	}
	s.DisableMouse()
	s.Clear()
	r.screen = s
	r.x, r.y = 0, 0
	return nil
}

func (r *TcellRenderer) Print(text string) {
	if r.screen == nil {
		return
	}
	width, height := r.screen.Size()
	for _, c := range text {
		if c == '\n' {
			r.x = 0
			r.y++
			continue
		}
		if c < 32 || c == 127 {
			continue
		}
		w := runewidth.RuneWidth(c)
		if w == 0 {
			continue
		}
		if r.x+w > width {
			r.x = 0
			r.y++
		}
		if r.y >= height {
			return
		}
		r.screen.SetContent(r.x, r.y, c, nil, tcell.StyleDefault)
		r.x += w
	}
}

func (r *TcellRenderer) Refresh() error {
	if r.screen != nil {
		r.screen.Show()
	}
	return nil
}

func (r *TcellRenderer) GetChar() (Event, error) {
	if r.screen == nil {
		return Event{Invalid, 0}, ErrInputClosed
	}
	for {
		switch ev := r.screen.PollEvent().(type) {
		case nil:
			// Screen was finalized
			return Event{Invalid, 0}, ErrInputClosed
		case *tcell.EventResize:
			return Event{Resize, 0}, nil
		case *tcell.EventError:
			return Event{Invalid, 0}, errors.Wrap(ErrInputClosed, ev.Error())
		case *tcell.EventKey:
			return tcellKeyEvent(ev), nil
		}
	}
}

func tcellKeyEvent(ev *tcell.EventKey) Event {
	key := ev.Key()
	switch {
	case key == tcell.KeyRune:
		return Event{Rune, ev.Rune()}
	case key == tcell.KeyEscape:
		return Event{Esc, 0}
	case key < 32 || key == tcell.KeyDEL:
		return Event{Ctrl, rune(key)}
	}
	return Event{Special, 0}
}

func (r *TcellRenderer) Close() {
	if r.screen != nil {
		r.screen.Fini()
		r.screen = nil
	}
}
