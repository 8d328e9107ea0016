package emulator

import (
	"github.com/ax16/ax16/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error, both in memory and
// in the source listing when the faulting word came from one.
type ErrRuntime struct {
	LineNo int
	Pc     uint16
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d pc %#04x %v", err.LineNo, err.Pc, err.Err)
	}
	return f("pc %#04x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
