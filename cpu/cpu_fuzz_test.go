package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDecode(f *testing.F) {
	f.Add(uint16(0), uint16(0))
	f.Add(uint16(0xffff), uint16(0))
	f.Add(Encode(OpLoad, RegAcc, ModeIndirectIndexed, 0x3f), uint16(0x1000))
	f.Add(EncodeExtended(ExtHalt), uint16(0))
	f.Add(Encode(OpExtended, RegAcc, AddrMode(3), 0x15), uint16(7))

	f.Fuzz(func(t *testing.T, word uint16, x uint16) {
		assert := assert.New(t)

		mem := &Memory{}
		mem.Write(0, word)

		ctx, err := Decode(mem, 0, x)
		if err != nil {
			// The only decode failure is the unassigned extended opcode.
			assert.True(errors.Is(err, ErrDecode{}))
			assert.Equal(OpExtended, Opcode((word>>OpcodeShift)&OpcodeMask))
			assert.Equal(AddrMode(3), AddrMode((word>>ModeShift)&ModeMask))
			return
		}

		assert.LessOrEqual(uint16(ctx.Opcode), uint16(7))
		assert.LessOrEqual(uint16(ctx.Mode), uint16(3))
		assert.LessOrEqual(ctx.Address, uint16(AddressMask))
		assert.Equal(ctx.Extended, ctx.Opcode == OpExtended)

		// The decoded fields reproduce the word, minus the unused high bits.
		assert.Equal(word&0x0fff,
			Encode(ctx.Opcode, ctx.Register, ctx.Mode, ctx.Address))

		if ctx.Mode == ModeDirect {
			assert.Equal(ctx.Address, ctx.EffAddr)
		}
	})
}
