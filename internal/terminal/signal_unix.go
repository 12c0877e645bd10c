//go:build !windows

package terminal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// RestoreOnSignal watches for SIGTERM and SIGHUP while an interaction is in
// progress. On either signal it releases guard, runs onRestore, and exits
// with the conventional 128+signal status. The returned func stops watching.
func RestoreOnSignal(guard Releaser, onRestore func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			_ = guard.Release()
			if onRestore != nil {
				onRestore()
			}
			code := 128
			if s, ok := sig.(syscall.Signal); ok {
				code += int(s)
			}
			os.Exit(code)
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}
