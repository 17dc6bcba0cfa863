//go:build !linux

package binread

import (
	"errors"
	"os"
)

func deviceSize(_ *os.File) (int64, error) {
	return 0, errors.New("block device sizing is only supported on linux")
}
