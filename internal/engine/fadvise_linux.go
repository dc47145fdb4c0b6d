package engine

import (
	"os"

	"golang.org/x/sys/unix"
)

// advise tells the kernel the range is about to be read once, front to back.
func advise(f *os.File, offset, length int64) {
	_ = unix.Fadvise(int(f.Fd()), offset, length, unix.FADV_SEQUENTIAL)
	_ = unix.Fadvise(int(f.Fd()), offset, length, unix.FADV_WILLNEED)
}
