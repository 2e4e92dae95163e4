package tui

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nihao-tui/nihao/src/util"

	"github.com/rivo/uniseg"
	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	defaultEscDelay = 100
	escPollInterval = 5
	maxInputBuffer  = 10 * 1024
)

const DefaultTtyDevice string = "/dev/tty"

const esc = 0x1b

// Light renderer
type LightRenderer struct {
	ttyDefault string
	ttyin      *os.File
	ttyout     *os.File
	out        io.Writer
	origState  *term.State
	buffer     []byte
	queued     strings.Builder
	escDelay   int
	width      int
	height     int
	x          int
	active     bool
}

// NewLightRenderer returns a renderer that drives the terminal with plain
// ANSI escape sequences. An empty ttyDefault selects DefaultTtyDevice with
// fallbacks; any other path is used as is and must be a terminal.
func NewLightRenderer(ttyDefault string) Renderer {
	return &LightRenderer{ttyDefault: ttyDefault}
}

func atoi(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnv(name string, defaultValue int) int {
	env := os.Getenv(name)
	if len(env) == 0 {
		return defaultValue
	}
	return atoi(env, defaultValue)
}

func (r *LightRenderer) Init() error {
	r.escDelay = getEnv("ESCDELAY", defaultEscDelay)

	if err := r.initPlatform(); err != nil {
		r.closePlatform()
		return err
	}
	r.active = true
	r.updateTerminalSize()

	r.smcup()
	r.csi("H")
	r.csi("2J")
	return r.flush()
}

// Print queues text at the cursor position. Lines wider than the terminal
// wrap at grapheme boundaries so a wide rune is never split across rows.
func (r *LightRenderer) Print(text string) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		str := gr.Str()
		if str == "\n" || str == "\r\n" {
			r.newline()
			continue
		}
		str = cleanse(str)
		if len(str) == 0 {
			continue
		}
		w := util.StringWidth(str)
		if r.width > 0 && r.x+w > r.width {
			r.newline()
		}
		r.queued.WriteString(str)
		r.x += w
	}
}

func (r *LightRenderer) newline() {
	r.queued.WriteString("\r\n")
	r.x = 0
}

// cleanse drops control characters and replaces invalid UTF-8
func cleanse(str string) string {
	var sb strings.Builder
	for _, c := range str {
		if c == utf8.RuneError {
			sb.WriteRune(' ')
		} else if c >= 32 && c != 127 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func (r *LightRenderer) csi(code string) {
	r.queued.WriteString("\x1b[" + code)
}

func (r *LightRenderer) smcup() {
	r.csi("?1049h")
}

func (r *LightRenderer) rmcup() {
	r.csi("?1049l")
}

func (r *LightRenderer) flush() error {
	if r.queued.Len() == 0 || r.out == nil {
		return nil
	}
	_, err := io.WriteString(r.out, r.queued.String())
	r.queued.Reset()
	return err
}

func (r *LightRenderer) Refresh() error {
	return r.flush()
}

func (r *LightRenderer) updateTerminalSize() {
	width, height, err := term.GetSize(r.fd())
	if err == nil {
		r.width = width
		r.height = height
	} else {
		r.width = getEnv("COLUMNS", defaultWidth)
		r.height = getEnv("LINES", defaultHeight)
	}
}

// getBytes blocks for the first byte of a key press and then collects the
// rest of it without blocking. An escape sequence or an incomplete UTF-8
// sequence gets up to escDelay milliseconds to arrive in full.
func (r *LightRenderer) getBytes() ([]byte, error) {
	c, err := r.getch(false)
	if err != nil {
		return nil, err
	}
	buffer := []byte{byte(c)}
	incomplete := func() bool {
		if buffer[0] == esc {
			return len(buffer) == 1
		}
		return buffer[0] >= 0xc0 && !utf8.FullRune(buffer)
	}

	retries := r.escDelay / escPollInterval
	for len(buffer) < maxInputBuffer {
		c, err = r.getch(true)
		if err != nil {
			if retries > 0 && incomplete() {
				retries--
				time.Sleep(escPollInterval * time.Millisecond)
				continue
			}
			break
		}
		buffer = append(buffer, byte(c))
	}
	return buffer, nil
}

func (r *LightRenderer) GetChar() (Event, error) {
	if len(r.buffer) == 0 {
		buffer, err := r.getBytes()
		if err != nil {
			return Event{Invalid, 0}, err
		}
		r.buffer = buffer
	}

	sz := 1
	defer func() {
		r.buffer = r.buffer[sz:]
	}()

	switch c := r.buffer[0]; {
	case c == esc:
		// A lone ESC or a whole escape sequence counts as one key
		if len(r.buffer) == 1 {
			return Event{Esc, 0}, nil
		}
		sz = len(r.buffer)
		return Event{Special, 0}, nil
	case c < 32 || c == 127:
		return Event{Ctrl, rune(c)}, nil
	}

	char, rsz := utf8.DecodeRune(r.buffer)
	sz = rsz
	if char == utf8.RuneError {
		return Event{Special, 0}, nil
	}
	return Event{Rune, char}, nil
}

func (r *LightRenderer) Close() {
	if r.active {
		r.active = false
		r.rmcup()
		r.flush()
		r.restoreTerminal()
	}
	r.closePlatform()
}
