//go:build unix

package vm

import (
	"bufio"
	"os"

	"golang.org/x/sys/unix"
)

// unixKeyboard is a Keyboard backed by a real file descriptor (stdin,
// placed in raw mode by the caller). Ready performs a zero-timeout
// unix.Select on the descriptor, the Unix equivalent of
// bassosimone/risc32/pkg/vm/tty.go's SerialTTY.InterruptPending
// deadline-based poll: it reports readiness without ever blocking the
// execution loop (spec.md §5).
type unixKeyboard struct {
	fd int
	r  *bufio.Reader
}

// NewKeyboard returns a Keyboard that polls fd's readiness with a
// zero timeout and, once ready, reads buffered bytes from f.
func NewKeyboard(f *os.File) Keyboard {
	return &unixKeyboard{fd: int(f.Fd()), r: bufio.NewReader(f)}
}

func (k *unixKeyboard) Ready() (bool, error) {
	if k.r.Buffered() > 0 {
		return true, nil
	}
	var rfds unix.FdSet
	rfds.Set(k.fd)
	tv := unix.Timeval{} // zero timeout: poll, never block
	n, err := unix.Select(k.fd+1, &rfds, nil, nil, &tv)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (k *unixKeyboard) ReadByte() (byte, error) {
	return k.r.ReadByte()
}
