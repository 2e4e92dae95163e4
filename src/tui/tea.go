package tui

import (
	"io"
	"sync"

	"github.com/nihao-tui/nihao/src/util"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// TeaRenderer runs a bubbletea program in the alternate screen. The program
// owns the terminal from Init until Close.
type TeaRenderer struct {
	input   io.Reader
	output  io.Writer
	program *tea.Program
	events  chan Event
	done    chan struct{}
	err     error
}

type teaPrintMsg string

type teaInputClosedMsg struct{}

type teaModel struct {
	text   string
	ready  func()
	events chan<- Event
}

func (m teaModel) Init() tea.Cmd {
	m.ready()
	return nil
}

func (m teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case teaPrintMsg:
		m.text += string(msg)
	case tea.KeyMsg:
		select {
		case m.events <- teaKeyEvent(msg):
		default:
		}
		return m, tea.Quit
	case teaInputClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m teaModel) View() string {
	return m.text
}

func teaKeyEvent(msg tea.KeyMsg) Event {
	switch {
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0:
		return Event{Rune, msg.Runes[0]}
	case msg.Type == tea.KeySpace:
		return Event{Rune, ' '}
	case msg.Type == tea.KeyEsc:
		return Event{Esc, 0}
	case msg.Type >= 0:
		return Event{Ctrl, rune(msg.Type)}
	}
	return Event{Special, 0}
}

// eofReader reports the end of the wrapped input once
type eofReader struct {
	reader io.Reader
	once   sync.Once
	onEOF  func()
}

func (e *eofReader) Read(p []byte) (int, error) {
	n, err := e.reader.Read(p)
	if err == io.EOF {
		e.once.Do(e.onEOF)
	}
	return n, err
}

// NewTeaRenderer returns a renderer reading keys from standard input
func NewTeaRenderer() Renderer {
	return &TeaRenderer{}
}

func newTeaRendererWithIO(input io.Reader, output io.Writer) *TeaRenderer {
	return &TeaRenderer{input: input, output: output}
}

func (r *TeaRenderer) Init() error {
	if r.input == nil && !util.IsTty() {
		return errors.Wrap(ErrNoTerminal, "standard input is not a terminal")
	}

	var p *tea.Program
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}
	if r.input != nil {
		opts = append(opts, tea.WithInput(&eofReader{
			reader: r.input,
			onEOF:  func() { p.Send(teaInputClosedMsg{}) },
		}))
	}
	if r.output != nil {
		opts = append(opts, tea.WithOutput(r.output))
	}

	r.events = make(chan Event, 1)
	r.done = make(chan struct{})
	ready := make(chan struct{})
	var once sync.Once
	model := teaModel{
		ready:  func() { once.Do(func() { close(ready) }) },
		events: r.events,
	}
	p = tea.NewProgram(model, opts...)

	done := r.done
	go func() {
		_, err := p.Run()
		r.err = err
		close(done)
	}()

	select {
	case <-ready:
		r.program = p
		return nil
	case <-done:
		if r.err != nil {
			return errors.Wrap(ErrNoTerminal, r.err.Error())
		}
		return ErrNoTerminal
	}
}

func (r *TeaRenderer) Print(text string) {
	if r.program != nil {
		r.program.Send(teaPrintMsg(text))
	}
}

// Refresh is a no-op; the program repaints after every update
func (r *TeaRenderer) Refresh() error {
	return nil
}

func (r *TeaRenderer) GetChar() (Event, error) {
	if r.program == nil {
		return Event{Invalid, 0}, ErrInputClosed
	}
	select {
	case ev := <-r.events:
		return ev, nil
	case <-r.done:
	}
	// The key may have been queued right before the program quit
	select {
	case ev := <-r.events:
		return ev, nil
	default:
	}
	if r.err != nil {
		return Event{Invalid, 0}, errors.Wrap(ErrInputClosed, r.err.Error())
	}
	return Event{Invalid, 0}, ErrInputClosed
}

func (r *TeaRenderer) Close() {
	if r.program == nil {
		return
	}
	r.program.Quit()
	<-r.done
	r.program = nil
}
