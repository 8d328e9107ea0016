// Package cpu implements the ax16 processor model.
//
// The machine is a fixed-width 16-bit design: 4096 words of flat memory, an
// accumulator and an index register selected per-instruction by a single
// register bit, a program counter, and a six-bit status register. Each step
// runs one two-phase cycle: decode the word at the program counter into an
// InstructionContext (including effective-address resolution through one of
// four addressing modes), then execute it through the primary or extended
// dispatch table.
//
// Every memory access wraps modulo MemSize. Indexed addressing can produce
// addresses past the end of memory; wrapping is the documented policy,
// applied in Memory so no access path can bypass it.
package cpu
