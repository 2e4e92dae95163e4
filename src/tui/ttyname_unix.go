//go:build !windows

package tui

import (
	"os"
	"syscall"
)

var devPrefixes = [...]string{"/dev/pts/", "/dev/"}

// ttyname finds the device file of the terminal by comparing device numbers
func ttyname(file *os.File) string {
	var stdin syscall.Stat_t
	if syscall.Fstat(int(file.Fd()), &stdin) != nil {
		return ""
	}

	for _, prefix := range devPrefixes {
		files, err := os.ReadDir(prefix)
		if err != nil {
			continue
		}

		for _, file := range files {
			info, err := file.Info()
			if err != nil {
				continue
			}
			if stat, ok := info.Sys().(*syscall.Stat_t); ok && stat.Rdev == stdin.Rdev && info.Mode()&os.ModeCharDevice != 0 {
				return prefix + file.Name()
			}
		}
	}
	return ""
}
