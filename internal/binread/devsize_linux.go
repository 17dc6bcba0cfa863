//go:build linux

package binread

import (
	"os"

	"golang.org/x/sys/unix"
)

// deviceSize asks the kernel for a block device's byte length, since stat
// reports zero for device nodes.
func deviceSize(f *os.File) (int64, error) {
	size, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, err
	}
	return int64(size), nil
}
