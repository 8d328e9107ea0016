// Package emulator wires a program listing to the processor model and
// drives execution for the outer I/O layer.
package emulator

import (
	"iter"
	"maps"

	"github.com/ax16/ax16/cpu"
	"github.com/ax16/ax16/internal"
	"github.com/ax16/ax16/listing"
)

var _emulator_defines = map[string]string{
	"LOAD_BASE": "0",
}

// Emulator state. CPU + currently loaded program.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Program *listing.Program // Reference to the loaded program listing.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &listing.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines, suitable for seeding
// listing predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
		cpu.OpcodeDefines(),
	)
}

// Reset zeroes the machine and loads the program into memory from address 0.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	for n, word := range emu.Program.Words {
		emu.Cpu.Mem.Write(uint16(n), word)
	}

	return
}

// LineNo returns the listing line number for the instruction at pc.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Step runs one instruction cycle and reports whether the machine halted.
// Errors are wrapped with the faulting pc and listing line.
func (emu *Emulator) Step() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	done, err = emu.Cpu.Step()
	return
}

// Run steps until the machine halts, or until a positive step limit is
// exhausted. It reports the number of steps taken.
func (emu *Emulator) Run(limit int) (steps int, err error) {
	if emu.Cpu.Status.Halt {
		return
	}
	for {
		var done bool
		done, err = emu.Step()
		if err != nil {
			return
		}
		steps++
		if done {
			return
		}
		if limit > 0 && steps >= limit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Pc: emu.Cpu.Pc, Err: cpu.ErrStepLimit}
			return
		}
	}
}
