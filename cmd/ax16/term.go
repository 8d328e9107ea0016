package main

import (
	"os"

	"golang.org/x/sys/unix"
)

var termRestore unix.Termios

// enterRawTerm puts stdin into raw mode so the step loop can react to
// single keypresses without waiting for a newline.
func enterRawTerm() error {
	termios, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}

	termRestore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN

	// Block until one byte is available.
	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &termstate)
}

func exitRawTerm() {
	unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &termRestore)
}

// readKey waits for a single keypress.
func readKey() (key byte, err error) {
	var one [1]byte
	_, err = os.Stdin.Read(one[:])
	key = one[0]
	return
}
