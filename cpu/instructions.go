package cpu

// NextPc is the program-counter action a handler returns. The cycle driver
// advances to pc+1 unless the handler asked for a jump, which decouples
// control-transfer instructions from the driver's advance.
type NextPc struct {
	Jump   bool
	Target uint16
}

// Advance continues to the next sequential instruction.
func Advance() NextPc {
	return NextPc{}
}

// JumpTo transfers control to target.
func JumpTo(target uint16) NextPc {
	return NextPc{Jump: true, Target: target}
}

// Instruction maps a mnemonic to its handler.
type Instruction struct {
	Name    string
	Execute func(c *Cpu, reg RegSelect, ea uint16) NextPc
}

// Primary dispatch table, indexed by opcode. Opcode 7 selects extendedSet
// instead and never reaches this table.
var instructionSet = [7]Instruction{
	{"st", storeData},
	{"ld", loadData},
	{"add", addData},
	{"br", branchJump},
	{"bz", branchIfZero},
	{"clr", clearReg},
	{"dec", decrementReg},
}

// Extended dispatch table, indexed by extended opcode.
var extendedSet = [3]Instruction{
	{"halt", haltCpu},
	{"ei", enableInt},
	{"di", disableInt},
}

// st: mem[ea] = register. No flags.
func storeData(c *Cpu, reg RegSelect, ea uint16) NextPc {
	c.Mem.Write(ea, c.reg(reg))
	return Advance()
}

// ld: register = mem[ea]. Z tracks the loaded value.
func loadData(c *Cpu, reg RegSelect, ea uint16) NextPc {
	value := c.Mem.Read(ea)
	c.setReg(reg, value)
	c.Status.Zero = value == 0
	return Advance()
}

// add: register += mem[ea], wrapping. Z tracks the result.
func addData(c *Cpu, reg RegSelect, ea uint16) NextPc {
	value := c.reg(reg) + c.Mem.Read(ea)
	c.setReg(reg, value)
	c.Status.Zero = value == 0
	return Advance()
}

// br: unconditional jump to ea.
func branchJump(c *Cpu, reg RegSelect, ea uint16) NextPc {
	return JumpTo(ea)
}

// bz: jump to ea when Z was set by the previous instruction, otherwise fall
// through. The only handler that reads a flag; it tests the latched value
// since the live flag is already cleared by the time handlers run.
func branchIfZero(c *Cpu, reg RegSelect, ea uint16) NextPc {
	if c.zeroLatch {
		return JumpTo(ea)
	}
	return Advance()
}

// clr: register = 0. Z is always set; the addressing fields are irrelevant.
func clearReg(c *Cpu, reg RegSelect, ea uint16) NextPc {
	c.setReg(reg, 0)
	c.Status.Zero = true
	return Advance()
}

// dec: register -= 1, wrapping. Z tracks the result.
func decrementReg(c *Cpu, reg RegSelect, ea uint16) NextPc {
	value := c.reg(reg) - 1
	c.setReg(reg, value)
	c.Status.Zero = value == 0
	return Advance()
}

// halt: stop the machine. Jumping to the current pc keeps the halt
// instruction at pc, so a reset-and-rerun refetches it rather than garbage.
func haltCpu(c *Cpu, reg RegSelect, ea uint16) NextPc {
	c.Status.Halt = true
	return JumpTo(c.Pc)
}

// ei: set the interrupt-enable flag. The flag is never consulted; no
// interrupt delivery exists in this machine.
func enableInt(c *Cpu, reg RegSelect, ea uint16) NextPc {
	c.Status.Interrupt = true
	return Advance()
}

// di: clear the interrupt-enable flag.
func disableInt(c *Cpu, reg RegSelect, ea uint16) NextPc {
	c.Status.Interrupt = false
	return Advance()
}
