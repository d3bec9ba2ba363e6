//go:build !windows

package shm

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"
)

type unixRegion struct {
	data []byte
	size int
}

// shmDir returns the tmpfs directory backing named regions. /dev/shm gives
// consumers the same open-by-name contract the Windows mapping has.
func shmDir() string {
	if fi, err := os.Stat("/dev/shm"); err == nil && fi.IsDir() {
		return "/dev/shm"
	}
	return os.TempDir()
}

// Open opens the backing file for a named region, creating it if needed,
// sizes it and maps it shared read/write. A newly created file is
// zero-filled by the sizing; an existing region keeps its contents, so a
// second Open of the same name sees what the first mapping wrote.
func Open(name string, size int) (Region, error) {
	path := filepath.Join(shmDir(), name)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening shm backing file %s: %w", path, err)
	}
	defer f.Close()

	if err := f.Truncate(int64(size)); err != nil {
		return nil, fmt.Errorf("sizing shm backing file %s: %w", path, err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}

	return &unixRegion{data: data, size: size}, nil
}

func (r *unixRegion) Pointer() unsafe.Pointer {
	return unsafe.Pointer(&r.data[0])
}

func (r *unixRegion) Size() int { return r.size }

func (r *unixRegion) Close() error {
	if r.data != nil {
		err := unix.Munmap(r.data)
		r.data = nil
		return err
	}
	return nil
}
