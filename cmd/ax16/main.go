package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ax16/ax16/emulator"
	"github.com/ax16/ax16/listing"
)

func main() {
	var step bool
	var limit int
	var verbose bool

	flag.BoolVar(&step, "s", false, "Interactive stepping (any key steps, q quits)")
	flag.IntVar(&limit, "n", 0, "Step limit (0 for unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("Usage: %v [flags] <program-listing>", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	loader := &listing.Loader{Verbose: verbose}
	for key, value := range emu.Defines() {
		loader.Predefine(key, value)
	}

	name := flag.Arg(0)
	inf, err := os.Open(name)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	prog, err := loader.Parse(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}
	fmt.Printf("Loaded %d words from %v\n", len(prog.Words), name)

	emu.Program = prog
	if err = emu.Reset(); err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	if step {
		runInteractive(emu)
		return
	}

	steps, err := emu.Run(limit)
	fmt.Print(emu.Cpu.Snapshot())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("CPU halted after %d steps\n", steps)
}

// runInteractive steps one instruction per keypress, dumping the machine
// state after each.
func runInteractive(emu *emulator.Emulator) {
	if err := enterRawTerm(); err != nil {
		log.Fatalf("terminal: %v", err)
	}
	defer exitRawTerm()

	for {
		done, err := emu.Step()
		fmt.Print(emu.Cpu.Snapshot())
		fmt.Println("---")
		if err != nil {
			exitRawTerm()
			log.Fatal(err)
		}
		if done {
			fmt.Println("CPU halted")
			return
		}

		key, err := readKey()
		if err != nil || key == 'q' || key == 0x03 {
			return
		}
	}
}
