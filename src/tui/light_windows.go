//go:build windows

package tui

func IsLightRendererSupported() bool {
	return false
}

func (r *LightRenderer) fd() int {
	return -1
}

func (r *LightRenderer) initPlatform() error {
	return ErrNotSupported
}

func (r *LightRenderer) closePlatform() {
	r.out = nil
}

func (r *LightRenderer) restoreTerminal() {
}

func (r *LightRenderer) getch(nonblock bool) (int, error) {
	return 0, ErrInputClosed
}
