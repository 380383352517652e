// Package term owns the terminal's raw-mode lifecycle. Raw-terminal
// configuration is, per spec.md §1, an external collaborator to the
// VM core: it produces the initial condition (stdin in non-canonical,
// no-echo mode) the core runs under, and it is responsible for
// restoring the terminal on every exit path, including fatal aborts
// and interrupts (spec.md §9's "scoped terminal mode" note).
//
// The scoping idiom here is bassosimone/risc32/cmd/interp/main.go's
// "acquire a resource, defer its Close" pattern
// (defer stty.Close()), generalized with an os/signal handler so
// restoration also runs on SIGINT, not just on the normal return path.
package term

import (
	"os"
	"os/signal"

	"golang.org/x/term"
)

// Session owns one raw-mode acquisition over a terminal file and
// guarantees Restore runs at most once.
type Session struct {
	fd       int
	state    *term.State
	sigCh    chan os.Signal
	restored bool
}

// Start puts f into raw (non-canonical, no-echo) mode if it is a
// terminal, and installs a SIGINT handler that restores it. If f is
// not a terminal (e.g. input is piped in tests or CI), Start is a
// no-op Session whose Restore does nothing, so callers can use it
// unconditionally.
func Start(f *os.File) (*Session, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return &Session{fd: fd}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	s := &Session{fd: fd, state: state, sigCh: make(chan os.Signal, 1)}
	signal.Notify(s.sigCh, os.Interrupt)
	go s.watchSignal()
	return s, nil
}

// watchSignal restores the terminal as soon as SIGINT arrives, then
// exits the process with the implementation-defined SIGINT exit code
// from spec.md §6.
func (s *Session) watchSignal() {
	if _, ok := <-s.sigCh; ok {
		s.Restore()
		os.Exit(-2)
	}
}

// Restore puts the terminal back in its original mode. Safe to call
// more than once and safe to call on a no-op Session.
func (s *Session) Restore() {
	if s.restored || s.state == nil {
		return
	}
	s.restored = true
	signal.Stop(s.sigCh)
	term.Restore(s.fd, s.state)
}
