// Package selftest implements the built-in test suite `lc3vm --test`
// runs in place of an image argument. It replays the concrete
// scenarios documented as testable properties against fresh VM
// instances and reports the first mismatch, using the same
// build-step-assert shape pkg/vm's own _test.go files use (grounded on
// n-ulricksen/nes-emulator's cpu_test.go), just invoked from main
// instead of go test so a deployed binary can self-check without its
// test sources.
package selftest

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/cwoolum/lc3vm/pkg/vm"
)

type scenario struct {
	name  string
	setup func(m *vm.VM)
	check func(m *vm.VM, stdout string) error
}

func newVM(stdin string) (*vm.VM, *bytes.Buffer, *bufio.Writer) {
	var out bytes.Buffer
	in := bufio.NewReader(bytes.NewBufferString(stdin))
	w := bufio.NewWriter(&out)
	return vm.New(in, w), &out, w
}

var scenarios = []scenario{
	{
		name: "ADD register",
		setup: func(m *vm.VM) {
			m.Mem[0x3000] = 0x1042 // ADD R0, R1, R2
			m.Reg[1], m.Reg[2] = 1, 2
		},
		check: func(m *vm.VM, _ string) error {
			return expect(m, 0, 3, vm.FlagPOS, 0x3001)
		},
	},
	{
		name: "ADD immediate",
		setup: func(m *vm.VM) {
			m.Mem[0x3000] = 0x1062 // ADD R0, R1, #2
			m.Reg[1] = 1
		},
		check: func(m *vm.VM, _ string) error {
			return expect(m, 0, 3, vm.FlagPOS, 0)
		},
	},
	{
		name: "AND register",
		setup: func(m *vm.VM) {
			m.Mem[0x3000] = 0x5042 // AND R0, R1, R2
			m.Reg[1], m.Reg[2] = 0xFF, 0xF0
		},
		check: func(m *vm.VM, _ string) error {
			return expect(m, 0, 0xF0, vm.FlagPOS, 0)
		},
	},
	{
		name: "AND immediate",
		setup: func(m *vm.VM) {
			m.Mem[0x3000] = 0x506F // AND R0, R1, #15
			m.Reg[1] = 0xFF
		},
		check: func(m *vm.VM, _ string) error {
			return expect(m, 0, 0x0F, vm.FlagPOS, 0)
		},
	},
	{
		name: "NOT",
		setup: func(m *vm.VM) {
			m.Mem[0x3000] = 0x907F // NOT R0, R1
			m.Reg[1] = 0x000F
		},
		check: func(m *vm.VM, _ string) error {
			return expect(m, 0, 0xFFF0, vm.FlagNEG, 0)
		},
	},
	{
		name: "LDI chain",
		setup: func(m *vm.VM) {
			m.Mem[0x3000] = 0xA001 // LDI R0, #1
			m.Mem[0x3002] = 0x4000
			m.Mem[0x4000] = 0x1234
		},
		check: func(m *vm.VM, _ string) error {
			return expect(m, 0, 0x1234, vm.FlagPOS, 0)
		},
	},
	{
		name: "HALT",
		setup: func(m *vm.VM) {
			m.Mem[0x3000] = 0xF025 // TRAP HALT
		},
		check: func(m *vm.VM, stdout string) error {
			if stdout != "HALT\n" {
				return fmt.Errorf("stdout = %q, want %q", stdout, "HALT\n")
			}
			return nil
		},
	},
}

func expect(m *vm.VM, reg int, wantVal uint16, wantCond uint16, wantPC uint16) error {
	if got := m.Reg[reg]; got != wantVal {
		return fmt.Errorf("R%d = %#04x, want %#04x", reg, got, wantVal)
	}
	if m.Cond != wantCond {
		return fmt.Errorf("COND = %#x, want %#x", m.Cond, wantCond)
	}
	if wantPC != 0 && m.PC != wantPC {
		return fmt.Errorf("PC = %#04x, want %#04x", m.PC, wantPC)
	}
	return nil
}

// Run executes every built-in scenario and returns the first failure
// it encounters, wrapped with the scenario's name, or nil if all pass.
func Run() error {
	for _, sc := range scenarios {
		m, out, w := newVM("")
		sc.setup(m)

		var err error
		if sc.name == "HALT" {
			err = m.Run()
		} else {
			err = m.Step()
		}
		if err != nil {
			return fmt.Errorf("selftest %q: %w", sc.name, err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("selftest %q: flush: %w", sc.name, err)
		}
		if err := sc.check(m, out.String()); err != nil {
			return fmt.Errorf("selftest %q: %w", sc.name, err)
		}
	}
	return nil
}
