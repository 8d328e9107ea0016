package cpu

import (
	"errors"

	"github.com/ax16/ax16/translate"
)

var f = translate.From

var (
	// ErrStepLimit reports a run that exhausted its step budget without
	// reaching a halt instruction.
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrDecode reports an instruction word whose extended opcode has no entry
// in the extended dispatch table. It carries the program counter and the raw
// word for diagnosis.
type ErrDecode struct {
	Pc   uint16
	Word uint16
}

func (err ErrDecode) Error() string {
	return f("pc %#04x word %#04x: invalid extended opcode", err.Pc, err.Word)
}

func (err ErrDecode) Is(target error) (ok bool) {
	_, ok = target.(ErrDecode)
	return
}
