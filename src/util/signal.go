package util

import (
	"os"
	"os/signal"
)

// ExitOnSignal arranges for Exit(code) to be called when one of sigs is
// delivered. The returned function cancels the arrangement.
func ExitOnSignal(code int, sigs ...os.Signal) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	stop := make(chan struct{})
	go func() {
		select {
		case <-ch:
			Exit(code)
		case <-stop:
		}
	}()
	return func() {
		signal.Stop(ch)
		close(stop)
	}
}
