package vm

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LoadImage loads an object image from r into the VM's memory and
// returns the origin address it was placed at (spec.md §6). An
// image's first 16-bit big-endian word is the load origin; every
// subsequent big-endian word is placed at consecutive addresses
// starting there, until EOF. There is no length header. Loading
// multiple images in sequence (one LoadImage call per image, same VM)
// layers them: each overwrites earlier contents at overlapping
// addresses, matching spec.md §6's "Multiple images may be layered."
//
// This mirrors lassandro/golc3's MachineState.LoadBin and
// smoynes/elsie's big-endian word stream, not
// bassosimone/risc32/pkg/vm.LoadBytecode's newline-delimited hex-text
// format — the teacher's bytecode format is plain text, but an LC-3
// object image is binary, so the parsing strategy itself is domain
// surface this spec adds rather than adapts.
func (vm *VM) LoadImage(r io.Reader) (origin uint16, err error) {
	if err := binary.Read(r, binary.BigEndian, &origin); err != nil {
		return 0, fmt.Errorf("vm: load image: reading origin: %w", err)
	}
	addr := origin
	for {
		var word uint16
		if err := binary.Read(r, binary.BigEndian, &word); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return origin, fmt.Errorf("vm: load image: %w", err)
		}
		vm.Mem[addr] = word
		addr++ // wraps at 0xFFFF, matching the 16-bit address space
	}
	return origin, nil
}
