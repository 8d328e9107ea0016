package cpu

import (
	"fmt"
	"iter"
	"maps"
)

// Instruction word layout (bit 15 = MSB):
//
//	[...][OPCODE:3][REG:1][MODE:2][ADDRESS:6]
//
// Bits 12-15 are unused and ignored by the decoder. When OPCODE is 7 the
// MODE field is reinterpreted as the extended opcode and selects the
// extended dispatch table.
const (
	OpcodeShift = 9    // Opcode position (bits 9-11).
	OpcodeMask  = 0x7  // Opcode width (3 bits).
	RegShift    = 8    // Register select position (bit 8).
	ModeShift   = 6    // Addressing mode position (bits 6-7).
	ModeMask    = 0x3  // Addressing mode width (2 bits).
	AddressMask = 0x3f // Address literal width (bits 0-5).
)

// Opcode is a primary operation code.
type Opcode uint16

const (
	OpStore      = Opcode(0) // st
	OpLoad       = Opcode(1) // ld
	OpAdd        = Opcode(2) // add
	OpBranch     = Opcode(3) // br
	OpBranchZero = Opcode(4) // bz
	OpClear      = Opcode(5) // clr
	OpDecrement  = Opcode(6) // dec
	OpExtended   = Opcode(7) // selects the extended table
)

// ExtOpcode is an extended operation code, valid when the primary opcode
// is OpExtended.
type ExtOpcode uint16

const (
	ExtHalt       = ExtOpcode(0) // halt
	ExtEnableInt  = ExtOpcode(1) // ei
	ExtDisableInt = ExtOpcode(2) // di
)

// RegSelect chooses the register an instruction operates on.
type RegSelect uint16

const (
	RegX   = RegSelect(0)
	RegAcc = RegSelect(1)
)

func (reg RegSelect) String() string {
	if reg == RegAcc {
		return "acc"
	}
	return "x"
}

// AddrMode is an addressing mode.
type AddrMode uint16

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	ModeDirect          = AddrMode(0) // direct
	ModeIndirect        = AddrMode(1) // indirect
	ModeIndexed         = AddrMode(2) // indexed
	ModeIndirectIndexed = AddrMode(3) // indirect-indexed
)

func (op Opcode) String() string {
	if op == OpExtended {
		return "ext"
	}
	if int(op) < len(instructionSet) {
		return instructionSet[op].Name
	}
	return fmt.Sprintf("op%d", uint16(op))
}

func (ext ExtOpcode) String() string {
	if int(ext) < len(extendedSet) {
		return extendedSet[ext].Name
	}
	return fmt.Sprintf("ext%d", uint16(ext))
}

// Encode builds an instruction word from its fields. The address literal is
// truncated to its six bits.
func Encode(op Opcode, reg RegSelect, mode AddrMode, address uint16) uint16 {
	return uint16(op&OpcodeMask)<<OpcodeShift |
		uint16(reg&1)<<RegShift |
		uint16(mode&ModeMask)<<ModeShift |
		address&AddressMask
}

// EncodeExtended builds an extended instruction word.
func EncodeExtended(ext ExtOpcode) uint16 {
	return Encode(OpExtended, RegX, AddrMode(ext), 0)
}

var _layout_defines = map[string]string{
	"MEM_SIZE":     fmt.Sprintf("%v", MemSize),
	"OPCODE_SHIFT": fmt.Sprintf("%v", OpcodeShift),
	"REG_SHIFT":    fmt.Sprintf("%v", RegShift),
	"MODE_SHIFT":   fmt.Sprintf("%v", ModeShift),
	"ADDRESS_MASK": fmt.Sprintf("%#x", AddressMask),
}

var _opcode_defines = map[string]string{
	"OP_ST":                 fmt.Sprintf("%v", uint16(OpStore)),
	"OP_LD":                 fmt.Sprintf("%v", uint16(OpLoad)),
	"OP_ADD":                fmt.Sprintf("%v", uint16(OpAdd)),
	"OP_BR":                 fmt.Sprintf("%v", uint16(OpBranch)),
	"OP_BZ":                 fmt.Sprintf("%v", uint16(OpBranchZero)),
	"OP_CLR":                fmt.Sprintf("%v", uint16(OpClear)),
	"OP_DEC":                fmt.Sprintf("%v", uint16(OpDecrement)),
	"OP_EXT":                fmt.Sprintf("%v", uint16(OpExtended)),
	"EXT_HALT":              fmt.Sprintf("%v", uint16(ExtHalt)),
	"EXT_EI":                fmt.Sprintf("%v", uint16(ExtEnableInt)),
	"EXT_DI":                fmt.Sprintf("%v", uint16(ExtDisableInt)),
	"REG_X":                 fmt.Sprintf("%v", uint16(RegX)),
	"REG_ACC":               fmt.Sprintf("%v", uint16(RegAcc)),
	"MODE_DIRECT":           fmt.Sprintf("%v", uint16(ModeDirect)),
	"MODE_INDIRECT":         fmt.Sprintf("%v", uint16(ModeIndirect)),
	"MODE_INDEXED":          fmt.Sprintf("%v", uint16(ModeIndexed)),
	"MODE_INDIRECT_INDEXED": fmt.Sprintf("%v", uint16(ModeIndirectIndexed)),
}

// Defines returns the machine layout constants as name/value pairs, for use
// as listing predefines.
func Defines() iter.Seq2[string, string] {
	return maps.All(_layout_defines)
}

// OpcodeDefines returns the operation and field values as name/value pairs,
// for use as listing predefines.
func OpcodeDefines() iter.Seq2[string, string] {
	return maps.All(_opcode_defines)
}
