package cpu

import (
	"fmt"
)

// InstructionContext holds one decoded instruction. A fresh context is built
// every cycle and discarded after the handler runs.
type InstructionContext struct {
	Word      uint16    // Raw instruction word.
	Opcode    Opcode    // Primary opcode (bits 9-11).
	Register  RegSelect // Selected register (bit 8).
	Mode      AddrMode  // Addressing mode (bits 6-7).
	Address   uint16    // Address literal (bits 0-5).
	EffAddr   uint16    // Resolved effective address.
	Extended  bool      // Set when the primary opcode is OpExtended.
	ExtOpcode ExtOpcode // Extended opcode (the MODE bits, reinterpreted).
}

// Decode reads the word at mem[pc] and decodes it into an
// InstructionContext. The index register value is needed to resolve the two
// indexed addressing modes. Decode never mutates memory.
func Decode(mem *Memory, pc uint16, x uint16) (ctx InstructionContext, err error) {
	word := mem.Read(pc)

	ctx = InstructionContext{
		Word:     word,
		Opcode:   Opcode((word >> OpcodeShift) & OpcodeMask),
		Register: RegSelect((word >> RegShift) & 1),
		Mode:     AddrMode((word >> ModeShift) & ModeMask),
		Address:  word & AddressMask,
	}

	switch ctx.Mode {
	case ModeDirect:
		ctx.EffAddr = ctx.Address
	case ModeIndirect:
		ctx.EffAddr = mem.Read(ctx.Address)
	case ModeIndexed:
		ctx.EffAddr = ctx.Address + x
	case ModeIndirectIndexed:
		ctx.EffAddr = mem.Read(ctx.Address + x)
	}

	ctx.Extended = ctx.Opcode == OpExtended
	if ctx.Extended {
		ctx.ExtOpcode = ExtOpcode(ctx.Mode)
		if int(ctx.ExtOpcode) >= len(extendedSet) {
			err = ErrDecode{Pc: pc, Word: word}
			return
		}
	}

	return
}

// String renders the context as a one-line trace entry.
func (ctx InstructionContext) String() string {
	if ctx.Extended {
		return ctx.ExtOpcode.String()
	}
	return fmt.Sprintf("%v %v, %v %#02x -> %#03x",
		ctx.Opcode, ctx.Register, ctx.Mode, ctx.Address, ctx.EffAddr)
}
