// Package listing reads pre-encoded program listings into memory words.
//
// A listing is a text file with one integer literal per line, decimal or
// 0x-prefixed hex, optionally followed by a trailing comma and a // comment.
// Lines starting with ';', '#' or '/' are full-line comments. Literals may
// contain $(...) constant expressions, evaluated at load time against the
// machine's predefined symbols. Each literal becomes one 16-bit word, stored
// sequentially from address 0.
package listing

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ax16/ax16/cpu"
)

// Program is a loaded listing: the encoded words and, per word, the listing
// line it came from.
type Program struct {
	Words []uint16
	Lines []int
}

// LineNo returns the listing line number for the word at addr, or 0 when
// addr is outside the program.
func (prog *Program) LineNo(addr uint16) int {
	if int(addr) < len(prog.Lines) {
		return prog.Lines[int(addr)]
	}
	return 0
}

// Loader parses program listings.
type Loader struct {
	Verbose bool // If set, verbosely logs loader actions.

	predefine map[string]string
}

// Predefine defines or redefines a symbol usable inside $(...) expressions.
// Values that do not parse as integers are ignored at evaluation time.
func (ld *Loader) Predefine(name string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{name: value}
	} else {
		ld.predefine[name] = value
	}
}

var parenRe = regexp.MustCompile(`\$\(([^)]*)\)`)

// parenEval does load-time $(...) evaluations.
func (ld *Loader) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ld.predefine {
		v, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer predefines.
			continue
		}
		pred[key] = starlark.MakeInt(int(v))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine reduces one listing line to its literal text, stripping comments
// and the trailing comma and resolving $(...) expressions. An empty result
// means the line holds no word.
func (ld *Loader) parseLine(line string) (text string, err error) {
	text = strings.TrimSpace(line)
	if text == "" {
		return
	}

	switch text[0] {
	case ';', '#', '/':
		// Full-line comment. A literal never starts with '/', so a
		// leading "//" comment is covered too.
		text = ""
		return
	}

	if n := strings.Index(text, "//"); n >= 0 {
		text = strings.TrimSpace(text[:n])
	}
	text = strings.TrimSpace(strings.TrimSuffix(text, ","))
	if text == "" {
		return
	}

	text = parenRe.ReplaceAllStringFunc(text, func(word string) string {
		expr := word[2 : len(word)-1]
		value, everr := ld.parenEval(expr)
		if everr != nil {
			if err == nil {
				err = everr
			}
			return word
		}
		return strconv.Itoa(int(value))
	})

	return
}

// Parse reads a listing and returns the program it encodes. Reading stops
// at end of input or once memory capacity is reached. Errors carry the
// offending line number and text.
func (ld *Loader) Parse(reader io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(reader)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		if len(prog.Words) >= cpu.MemSize {
			if ld.Verbose {
				log.Printf("listing: memory capacity reached at line %d", lineno)
			}
			break
		}

		text, perr := ld.parseLine(line)
		if perr != nil {
			return nil, ErrSyntax{LineNo: lineno, Line: line, Err: perr}
		}
		if text == "" {
			continue
		}

		value, perr := strconv.ParseInt(text, 0, 64)
		if perr != nil {
			return nil, ErrSyntax{LineNo: lineno, Line: line, Err: ErrParseNumber(text)}
		}

		prog.Words = append(prog.Words, uint16(value))
		prog.Lines = append(prog.Lines, lineno)
	}
	if serr := scanner.Err(); serr != nil {
		return nil, serr
	}

	if ld.Verbose {
		log.Printf("listing: loaded %d words", len(prog.Words))
	}

	return
}
