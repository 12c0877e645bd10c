//go:build windows

package terminal

// RestoreOnSignal is a no-op on Windows; console mode is restored by the
// deferred Release when the process is closed normally.
func RestoreOnSignal(guard Releaser, onRestore func()) (stop func()) {
	return func() {}
}
