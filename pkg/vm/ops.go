package vm

// Execute executes the already-fetched instruction instr. PC has
// already been advanced past it (spec.md §3 invariant 2), so handlers
// that branch or jump simply overwrite or offset PC from that
// post-increment value. Execute returns ErrHalt when the HALT trap
// has run, ErrUndefinedOpcode for RTI/RES, or an I/O error from a
// trap's blocking read/write.
func (vm *VM) Execute(instr uint16) error {
	switch DecodeOpcode(instr) {
	case OpBR:
		n, z, p := (instr>>11)&0x1, (instr>>10)&0x1, (instr>>9)&0x1
		cond := vm.Cond
		if (n != 0 && cond == FlagNEG) || (z != 0 && cond == FlagZRO) || (p != 0 && cond == FlagPOS) {
			vm.PC += DecodePCOffset9(instr)
		}

	case OpADD:
		dr, sr1 := DecodeDR(instr), DecodeSR1(instr)
		if (instr>>5)&0x1 != 0 {
			vm.Reg[dr] = vm.Reg[sr1] + DecodeImm5(instr)
		} else {
			vm.Reg[dr] = vm.Reg[sr1] + vm.Reg[DecodeSR2(instr)]
		}
		vm.updateFlags(dr)

	case OpLD:
		dr := DecodeDR(instr)
		vm.Reg[dr] = vm.MemRead(vm.PC + DecodePCOffset9(instr))
		vm.updateFlags(dr)

	case OpST:
		sr := DecodeDR(instr)
		vm.MemWrite(vm.PC+DecodePCOffset9(instr), vm.Reg[sr])

	case OpJSR:
		vm.Reg[7] = vm.PC
		if (instr>>11)&0x1 != 0 {
			vm.PC += DecodePCOffset11(instr)
		} else {
			vm.PC = vm.Reg[DecodeSR1(instr)]
		}

	case OpAND:
		dr, sr1 := DecodeDR(instr), DecodeSR1(instr)
		if (instr>>5)&0x1 != 0 {
			vm.Reg[dr] = vm.Reg[sr1] & DecodeImm5(instr)
		} else {
			vm.Reg[dr] = vm.Reg[sr1] & vm.Reg[DecodeSR2(instr)]
		}
		vm.updateFlags(dr)

	case OpLDR:
		dr, base := DecodeDR(instr), DecodeSR1(instr)
		vm.Reg[dr] = vm.MemRead(vm.Reg[base] + DecodeOffset6(instr))
		vm.updateFlags(dr)

	case OpSTR:
		sr, base := DecodeDR(instr), DecodeSR1(instr)
		vm.MemWrite(vm.Reg[base]+DecodeOffset6(instr), vm.Reg[sr])

	case OpRTI:
		return ErrUndefinedOpcode

	case OpNOT:
		dr, sr := DecodeDR(instr), DecodeSR1(instr)
		vm.Reg[dr] = ^vm.Reg[sr]
		vm.updateFlags(dr)

	case OpLDI:
		dr := DecodeDR(instr)
		addr := vm.MemRead(vm.PC + DecodePCOffset9(instr))
		vm.Reg[dr] = vm.MemRead(addr)
		vm.updateFlags(dr)

	case OpSTI:
		sr := DecodeDR(instr)
		addr := vm.MemRead(vm.PC + DecodePCOffset9(instr))
		vm.MemWrite(addr, vm.Reg[sr])

	case OpJMP:
		vm.PC = vm.Reg[DecodeSR1(instr)]

	case OpRES:
		return ErrUndefinedOpcode

	case OpLEA:
		dr := DecodeDR(instr)
		vm.Reg[dr] = vm.PC + DecodePCOffset9(instr)
		vm.updateFlags(dr)

	case OpTRAP:
		return vm.trap(DecodeTrapVect(instr))
	}
	return nil
}
