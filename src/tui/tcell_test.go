package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

func assert(t *testing.T, context string, got interface{}, want interface{}) bool {
	if got == want {
		return true
	}
	t.Errorf("%s = (%T)%v, want (%T)%v", context, got, got, want, want)
	return false
}

func newSimulatedRenderer(t *testing.T, width int, height int) (*TcellRenderer, tcell.SimulationScreen) {
	screen := tcell.NewSimulationScreen("UTF-8")
	renderer := newTcellRendererWithScreen(screen)
	if err := renderer.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(width, height)
	t.Cleanup(renderer.Close)
	return renderer, screen
}

// nextKey skips the resize events the screen posts on its own
func nextKey(t *testing.T, renderer *TcellRenderer) Event {
	for {
		event, err := renderer.GetChar()
		if err != nil {
			t.Fatal(err)
		}
		if event.IsKey() {
			return event
		}
	}
}

func TestTcellRendererPrint(t *testing.T) {
	renderer, screen := newSimulatedRenderer(t, 80, 24)
	renderer.Print("你好，世界!")
	if err := renderer.Refresh(); err != nil {
		t.Fatal(err)
	}

	x := 0
	for _, r := range "你好，世界!" {
		mainc, _, _, _ := screen.GetContent(x, 0)
		assert(t, "rune at column", mainc, r)
		x += runewidth.RuneWidth(r)
	}
	assert(t, "cursor column", renderer.x, 11)

	// The greeting appears once
	count := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			if mainc, _, _, _ := screen.GetContent(x, y); mainc == '你' {
				count++
			}
		}
	}
	assert(t, "occurrences", count, 1)
}

func TestTcellRendererPrintWraps(t *testing.T) {
	renderer, screen := newSimulatedRenderer(t, 5, 3)
	renderer.Print("你好，世界!")
	renderer.Refresh()

	for _, cell := range []struct {
		x, y int
		r    rune
	}{
		{0, 0, '你'}, {2, 0, '好'}, {0, 1, '，'}, {2, 1, '世'}, {0, 2, '界'}, {2, 2, '!'},
	} {
		mainc, _, _, _ := screen.GetContent(cell.x, cell.y)
		assert(t, "wrapped rune", mainc, cell.r)
	}
}

func TestTcellRendererGetChar(t *testing.T) {
	renderer, screen := newSimulatedRenderer(t, 80, 24)

	for _, tc := range []struct {
		key  tcell.Key
		ch   rune
		want Event
	}{
		{tcell.KeyRune, 'x', Key('x')},
		{tcell.KeyRune, '界', Key('界')},
		{tcell.KeyEscape, 0, Event{Esc, 0}},
		{tcell.KeyUp, 0, Event{Special, 0}},
		{tcell.KeyF1, 0, Event{Special, 0}},
	} {
		screen.InjectKey(tc.key, tc.ch, tcell.ModNone)
		assert(t, tcell.KeyNames[tc.key]+" event", nextKey(t, renderer), tc.want)
	}
}

func TestTcellRendererAfterClose(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	renderer := newTcellRendererWithScreen(screen)
	if err := renderer.Init(); err != nil {
		t.Fatal(err)
	}
	renderer.Close()
	renderer.Close()

	renderer.Print("ignored")
	if err := renderer.Refresh(); err != nil {
		t.Error(err)
	}
	if _, err := renderer.GetChar(); !errors.Is(err, ErrInputClosed) {
		t.Errorf("expected ErrInputClosed, got %v", err)
	}
}

func TestTcellRendererInitFailure(t *testing.T) {
	renderer := &TcellRenderer{newScreen: func() (tcell.Screen, error) {
		return nil, errors.New("terminal not cursor addressable")
	}}
	if err := renderer.Init(); !errors.Is(err, ErrNoTerminal) {
		t.Errorf("expected ErrNoTerminal, got %v", err)
	}
	renderer.Close()
}
