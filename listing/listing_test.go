package listing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ax16/ax16/cpu"
)

// defineLoader returns a Loader seeded with the machine's symbol defines.
func defineLoader() (ld *Loader) {
	ld = &Loader{}
	for key, value := range cpu.Defines() {
		ld.Predefine(key, value)
	}
	for key, value := range cpu.OpcodeDefines() {
		ld.Predefine(key, value)
	}
	return
}

func TestParseLiterals(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"; full-line comment",
		"# another",
		"/ and another",
		"// and another",
		"",
		"42",
		"0x2a00,",
		"  10, // trailing comment and comma",
		"-1",
		"65537",
	}, "\n")

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal([]uint16{42, 0x2a00, 10, 0xffff, 1}, prog.Words)

	// Words map back to their listing lines.
	assert.Equal(6, prog.LineNo(0))
	assert.Equal(8, prog.LineNo(2))
	assert.Equal(0, prog.LineNo(100))
}

func TestParseExpressions(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"$(OP_CLR << OPCODE_SHIFT | REG_ACC << REG_SHIFT)",
		"$(OP_EXT << OPCODE_SHIFT | EXT_HALT << MODE_SHIFT)",
		"$(MEM_SIZE - 1)",
		"$(2 + 3), // arithmetic only",
	}, "\n")

	ld := defineLoader()
	prog, err := ld.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal([]uint16{
		cpu.Encode(cpu.OpClear, cpu.RegAcc, cpu.ModeDirect, 0),
		cpu.EncodeExtended(cpu.ExtHalt),
		cpu.MemSize - 1,
		5,
	}, prog.Words)
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		lineno int
	}){
		{"not_a_number", "1\nbanana\n2\n", 2},
		{"bad_expression", "$(nope)\n", 1},
		{"trailing_junk", "12 34\n", 1},
	}

	for _, entry := range table {
		ld := &Loader{}
		_, err := ld.Parse(strings.NewReader(entry.source))
		assert.Error(err, entry.name)

		var serr ErrSyntax
		assert.True(errors.As(err, &serr), entry.name)
		assert.Equal(entry.lineno, serr.LineNo, entry.name)
	}
}

func TestParseCapacity(t *testing.T) {
	assert := assert.New(t)

	source := strings.Repeat("1\n", cpu.MemSize+100)

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(cpu.MemSize, len(prog.Words))
}

func TestPredefineIgnoresNonIntegers(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	ld.Predefine("GOOD", "7")
	ld.Predefine("BAD", "not-a-number")

	prog, err := ld.Parse(strings.NewReader("$(GOOD * 2)\n"))
	assert.NoError(err)
	assert.Equal([]uint16{14}, prog.Words)
}
