package vm

import "fmt"

// The following constants define the six TRAP service vectors
// (spec.md §4.6). Trap codes occupy the low 8 bits of a TRAP
// instruction.
const (
	TrapGETC  = uint16(0x20)
	TrapOUT   = uint16(0x21)
	TrapPUTS  = uint16(0x22)
	TrapIN    = uint16(0x23)
	TrapPUTSP = uint16(0x24)
	TrapHALT  = uint16(0x25)
)

// trap dispatches on the low 8 bits of a TRAP instruction. Traps never
// update condition flags (spec.md §4.6). Unrecognized trap codes are a
// no-op, per the Open Question resolved in SPEC_FULL.md §6.
func (vm *VM) trap(vect uint16) error {
	switch vect {
	case TrapGETC:
		return vm.trapGETC()
	case TrapOUT:
		return vm.trapOUT()
	case TrapPUTS:
		return vm.trapPUTS()
	case TrapIN:
		return vm.trapIN()
	case TrapPUTSP:
		return vm.trapPUTSP()
	case TrapHALT:
		return vm.trapHALT()
	default:
		return nil
	}
}

// trapGETC reads one byte from input, blocking, and places it
// zero-extended into R0.
func (vm *VM) trapGETC() error {
	b, err := vm.Stdin.ReadByte()
	if err != nil {
		return fmt.Errorf("vm: trap GETC: %w: %w", ErrIO, err)
	}
	vm.Reg[0] = uint16(b)
	return nil
}

// trapOUT writes the low 8 bits of R0 as one character and flushes.
// spec.md §4.7 calls out that the reference source masks with 0x8
// here instead of 0xFF and indexes reg[R_R0 & 0x8] instead of
// reg[R_R0] — both are bugs; this implementation masks with 0xFF and
// reads R0 directly, as specified.
func (vm *VM) trapOUT() error {
	if err := vm.Stdout.WriteByte(byte(vm.Reg[0] & 0xFF)); err != nil {
		return fmt.Errorf("vm: trap OUT: %w: %w", ErrIO, err)
	}
	if err := vm.Stdout.Flush(); err != nil {
		return fmt.Errorf("vm: trap OUT: %w: %w", ErrIO, err)
	}
	return nil
}

// trapPUTS writes words starting at the address in R0 as characters
// until a zero word, masking each word to its low byte, then flushes.
func (vm *VM) trapPUTS() error {
	for addr := vm.Reg[0]; ; addr++ {
		word := vm.MemRead(addr)
		if word == 0 {
			break
		}
		if err := vm.Stdout.WriteByte(byte(word & 0xFF)); err != nil {
			return fmt.Errorf("vm: trap PUTS: %w: %w", ErrIO, err)
		}
	}
	if err := vm.Stdout.Flush(); err != nil {
		return fmt.Errorf("vm: trap PUTS: %w: %w", ErrIO, err)
	}
	return nil
}

// trapIN prompts, reads one byte blocking, echoes it, and places it
// zero-extended into R0.
func (vm *VM) trapIN() error {
	if _, err := vm.Stdout.WriteString("Enter a character: "); err != nil {
		return fmt.Errorf("vm: trap IN: %w: %w", ErrIO, err)
	}
	b, err := vm.Stdin.ReadByte()
	if err != nil {
		return fmt.Errorf("vm: trap IN: %w: %w", ErrIO, err)
	}
	if err := vm.Stdout.WriteByte(b); err != nil {
		return fmt.Errorf("vm: trap IN: %w: %w", ErrIO, err)
	}
	vm.Reg[0] = uint16(b)
	if err := vm.Stdout.Flush(); err != nil {
		return fmt.Errorf("vm: trap IN: %w: %w", ErrIO, err)
	}
	return nil
}

// trapPUTSP writes words starting at the address in R0 as packed
// characters (low byte then, if non-zero, high byte) until a zero
// word, then flushes.
func (vm *VM) trapPUTSP() error {
	for addr := vm.Reg[0]; ; addr++ {
		word := vm.MemRead(addr)
		if word == 0 {
			break
		}
		lo := byte(word & 0xFF)
		if err := vm.Stdout.WriteByte(lo); err != nil {
			return fmt.Errorf("vm: trap PUTSP: %w: %w", ErrIO, err)
		}
		if hi := byte(word >> 8); hi != 0 {
			if err := vm.Stdout.WriteByte(hi); err != nil {
				return fmt.Errorf("vm: trap PUTSP: %w: %w", ErrIO, err)
			}
		}
	}
	if err := vm.Stdout.Flush(); err != nil {
		return fmt.Errorf("vm: trap PUTSP: %w: %w", ErrIO, err)
	}
	return nil
}

// trapHALT writes "HALT\n", flushes, and signals the execution loop
// to terminate normally via ErrHalt.
func (vm *VM) trapHALT() error {
	if _, err := vm.Stdout.WriteString("HALT\n"); err != nil {
		return fmt.Errorf("vm: trap HALT: %w: %w", ErrIO, err)
	}
	if err := vm.Stdout.Flush(); err != nil {
		return fmt.Errorf("vm: trap HALT: %w: %w", ErrIO, err)
	}
	return ErrHalt
}
