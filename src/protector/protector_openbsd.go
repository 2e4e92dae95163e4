//go:build openbsd

package protector

import "golang.org/x/sys/unix"

// Protect calls OS specific protections like pledge on OpenBSD.
// The greeter only needs the terminal and an optional log file.
func Protect() {
	unix.PledgePromises("stdio rpath wpath cpath tty")
}
