package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFields(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		op   Opcode
		reg  RegSelect
		mode AddrMode
		addr uint16
	}){
		{"st_x_direct", OpStore, RegX, ModeDirect, 0x00},
		{"ld_acc_direct", OpLoad, RegAcc, ModeDirect, 0x3f},
		{"add_x_indirect", OpAdd, RegX, ModeIndirect, 0x10},
		{"br_acc_indexed", OpBranch, RegAcc, ModeIndexed, 0x01},
		{"bz_x_inind", OpBranchZero, RegX, ModeIndirectIndexed, 0x2a},
		{"clr_acc_direct", OpClear, RegAcc, ModeDirect, 0x15},
		{"dec_x_direct", OpDecrement, RegX, ModeDirect, 0x3f},
	}

	for _, entry := range table {
		mem := &Memory{}
		mem.Write(0, Encode(entry.op, entry.reg, entry.mode, entry.addr))

		ctx, err := Decode(mem, 0, 0)
		assert.NoError(err, entry.name)
		assert.Equal(entry.op, ctx.Opcode, entry.name)
		assert.Equal(entry.reg, ctx.Register, entry.name)
		assert.Equal(entry.mode, ctx.Mode, entry.name)
		assert.Equal(entry.addr, ctx.Address, entry.name)
		assert.False(ctx.Extended, entry.name)
	}
}

func TestDecodeExtended(t *testing.T) {
	assert := assert.New(t)

	for _, ext := range []ExtOpcode{ExtHalt, ExtEnableInt, ExtDisableInt} {
		mem := &Memory{}
		mem.Write(0, EncodeExtended(ext))

		ctx, err := Decode(mem, 0, 0)
		assert.NoError(err)
		assert.True(ctx.Extended)
		assert.Equal(OpExtended, ctx.Opcode)
		assert.Equal(ext, ctx.ExtOpcode)
	}

	// Extended opcode 3 has no table entry.
	mem := &Memory{}
	mem.Write(0, Encode(OpExtended, RegX, AddrMode(3), 0))

	_, err := Decode(mem, 0, 0)
	assert.Error(err)
	assert.True(errors.Is(err, ErrDecode{}))

	var derr ErrDecode
	assert.True(errors.As(err, &derr))
	assert.Equal(uint16(0), derr.Pc)
	assert.Equal(Encode(OpExtended, RegX, AddrMode(3), 0), derr.Word)
}

func TestDecodeIgnoresHighBits(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write(0, 0xf000|Encode(OpLoad, RegAcc, ModeDirect, 0x21))

	ctx, err := Decode(mem, 0, 0)
	assert.NoError(err)
	assert.Equal(OpLoad, ctx.Opcode)
	assert.Equal(RegAcc, ctx.Register)
	assert.Equal(uint16(0x21), ctx.Address)
}

func TestAddressingModes(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		mode AddrMode
		addr uint16
		x    uint16
		mem  map[uint16]uint16
		ea   uint16
	}){
		{"direct", ModeDirect, 0x20, 0, nil, 0x20},
		{"indirect", ModeIndirect, 0x05, 0, map[uint16]uint16{5: 0x123}, 0x123},
		{"indexed", ModeIndexed, 0x05, 10, nil, 15},
		{"indexed_wraps_word", ModeIndexed, 0x05, 0xfffd, nil, 2},
		{"indirect_indexed", ModeIndirectIndexed, 0x05, 10, map[uint16]uint16{15: 42}, 42},
	}

	for _, entry := range table {
		mem := &Memory{}
		for addr, value := range entry.mem {
			mem.Write(addr, value)
		}
		mem.Write(0, Encode(OpLoad, RegAcc, entry.mode, entry.addr))

		ctx, err := Decode(mem, 0, entry.x)
		assert.NoError(err, entry.name)
		assert.Equal(entry.ea, ctx.EffAddr, entry.name)
	}
}

// The double-indirection property: mode 3 resolves through mem[literal+x],
// and the load then reads through that address.
func TestIndirectIndexedLoad(t *testing.T) {
	assert := assert.New(t)

	c := NewCpu()
	c.X = 10
	c.Mem.Write(15, 42)
	c.Mem.Write(42, 0x4242)
	c.Mem.Write(0, Encode(OpLoad, RegAcc, ModeIndirectIndexed, 5))

	halted, err := c.Step()
	assert.NoError(err)
	assert.False(halted)
	assert.Equal(uint16(0x4242), c.Acc)
}

func TestMemoryWraps(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write(MemSize+3, 7)
	assert.Equal(uint16(7), mem.Read(3))
	assert.Equal(uint16(7), mem.Read(MemSize+3))
}
