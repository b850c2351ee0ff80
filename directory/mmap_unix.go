//go:build darwin || dragonfly || freebsd || illumos || linux || netbsd || openbsd

package directory

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func mmap(f *os.File, size int) ([]byte, error) {
	b, err := unix.Mmap(int(f.Fd()), 0, size, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	_ = unix.Madvise(b, syscall.MADV_RANDOM)
	return b, nil
}

func munmap(b []byte) error {
	return unix.Munmap(b)
}
