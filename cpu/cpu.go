package cpu

import (
	"fmt"
	"log"
)

// MemSize is the memory capacity in words.
const MemSize = 4096

// Memory is the flat word-addressed store. All accesses wrap modulo MemSize,
// which is the documented policy for effective addresses produced past the
// end of memory by indexed addressing.
type Memory [MemSize]uint16

// Read returns the word at addr, wrapping.
func (m *Memory) Read(addr uint16) uint16 {
	return m[addr%MemSize]
}

// Write stores value at addr, wrapping.
func (m *Memory) Write(addr uint16, value uint16) {
	m[addr%MemSize] = value
}

// Status is the condition-flag register. Only Zero and Halt are written by
// instruction handlers; Interrupt is settable through ei/di but never
// consulted, and Negative, Carry and Overflow are declared but inert.
type Status struct {
	Zero      bool
	Negative  bool
	Carry     bool
	Interrupt bool
	Overflow  bool
	Halt      bool
}

// Cpu is the simulated machine state: registers, program counter, status
// flags and memory. It is owned by the execution cycle; observers should
// read it through Snapshot between steps.
type Cpu struct {
	Verbose bool // Set to enable verbose instruction tracing.

	Mem    Memory // Flat word memory.
	Acc    uint16 // Accumulator.
	X      uint16 // Index register.
	Pc     uint16 // Program counter.
	Status Status // Condition flags.

	Steps int // Instructions executed since reset.

	// zeroLatch holds the zero flag as it stood when the current cycle
	// began, before the per-cycle clear. bz tests this latch, so it
	// branches on the previous instruction's result.
	zeroLatch bool
}

// NewCpu creates a machine in its reset state.
func NewCpu() (c *Cpu) {
	c = &Cpu{}
	return
}

// Reset zeroes the registers, flags, counters and memory. The program
// counter returns to 0.
func (c *Cpu) Reset() {
	if c.Verbose {
		log.Printf("cpu: reset")
	}
	*c = Cpu{Verbose: c.Verbose}
}

func (c *Cpu) reg(reg RegSelect) uint16 {
	if reg == RegAcc {
		return c.Acc
	}
	return c.X
}

func (c *Cpu) setReg(reg RegSelect, value uint16) {
	if reg == RegAcc {
		c.Acc = value
	} else {
		c.X = value
	}
}

// Step runs one fetch-decode-execute cycle and reports whether the machine
// is halted afterward. On a halted machine Step is a no-op that reports
// true. A decode error halts the machine and is returned with the faulting
// pc and word attached.
func (c *Cpu) Step() (halted bool, err error) {
	if c.Status.Halt {
		return true, nil
	}

	ctx, err := Decode(&c.Mem, c.Pc, c.X)
	if err != nil {
		c.Status.Halt = true
		return true, err
	}

	if c.Verbose {
		log.Printf("cpu: %03x: %v", c.Pc, ctx)
	}

	// Z is cleared before every handler; an instruction that does not set
	// it leaves it false. The pre-clear value is latched for bz, which
	// would otherwise always observe the cleared flag and never branch.
	c.zeroLatch = c.Status.Zero
	c.Status.Zero = false

	var next NextPc
	if ctx.Extended {
		next = extendedSet[ctx.ExtOpcode].Execute(c, ctx.Register, ctx.EffAddr)
	} else {
		next = instructionSet[ctx.Opcode].Execute(c, ctx.Register, ctx.EffAddr)
	}

	if next.Jump {
		c.Pc = next.Target
	} else {
		c.Pc++
	}
	c.Steps++

	return c.Status.Halt, nil
}

// Run steps the machine until it halts. A positive limit bounds the number
// of steps; exhausting it returns ErrStepLimit. Run reports the number of
// steps taken.
func (c *Cpu) Run(limit int) (steps int, err error) {
	if c.Status.Halt {
		return
	}
	for {
		halted, err := c.Step()
		if err != nil {
			return steps, err
		}
		steps++
		if halted {
			return steps, nil
		}
		if limit > 0 && steps >= limit {
			return steps, ErrStepLimit
		}
	}
}

// Snapshot is a read-only copy of the machine state, safe to hold across
// further steps.
type Snapshot struct {
	Pc     uint16
	Acc    uint16
	X      uint16
	Status Status
	Mem    Memory
	Steps  int
}

// Snapshot copies the current machine state.
func (c *Cpu) Snapshot() Snapshot {
	return Snapshot{
		Pc:     c.Pc,
		Acc:    c.Acc,
		X:      c.X,
		Status: c.Status,
		Mem:    c.Mem,
		Steps:  c.Steps,
	}
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// String renders the snapshot as a register dump followed by the used
// prefix of memory, ten words per row.
func (s Snapshot) String() (text string) {
	text = fmt.Sprintf("PC:%x X:%x ACC:%x\n", s.Pc, s.X, s.Acc)
	text += fmt.Sprintf("STATUS: [Z:%d N:%d C:%d I:%d V:%d H:%d]\n",
		flag(s.Status.Zero), flag(s.Status.Negative), flag(s.Status.Carry),
		flag(s.Status.Interrupt), flag(s.Status.Overflow), flag(s.Status.Halt))

	// Show memory up to the last nonzero word plus a margin, 30 words
	// minimum.
	used := 0
	for i := MemSize - 1; i >= 0; i-- {
		if s.Mem[i] != 0 {
			used = i
			break
		}
	}
	show := max(used+10, 30)
	show = min(show, MemSize)

	text += fmt.Sprintf("Memory [0-%d]:", show-1)
	for i := range show {
		if i%10 == 0 {
			text += "\n   "
		}
		text += fmt.Sprintf(" %04x", s.Mem[i])
	}
	text += "\n"

	return
}

// String renders the current machine state.
func (c *Cpu) String() string {
	return c.Snapshot().String()
}
