//go:build windows

package shm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

type winRegion struct {
	handle windows.Handle
	view   uintptr
	size   int
}

// Open creates (or opens) a named page-file-backed mapping of exactly size
// bytes and maps it read/write. The region is zeroed by the OS on creation.
func Open(name string, size int) (Region, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("converting mapping name to UTF-16: %w", err)
	}

	handle, err := windows.CreateFileMapping(
		windows.InvalidHandle, nil,
		windows.PAGE_READWRITE,
		0, uint32(size),
		namePtr,
	)
	if err != nil {
		return nil, fmt.Errorf("creating file mapping %q: %w", name, err)
	}

	view, err := windows.MapViewOfFile(
		handle,
		windows.FILE_MAP_READ|windows.FILE_MAP_WRITE,
		0, 0, uintptr(size),
	)
	if err != nil {
		_ = windows.CloseHandle(handle)
		return nil, fmt.Errorf("mapping view of %q: %w", name, err)
	}

	return &winRegion{handle: handle, view: view, size: size}, nil
}

func (r *winRegion) Pointer() unsafe.Pointer {
	return unsafe.Pointer(r.view)
}

func (r *winRegion) Size() int { return r.size }

func (r *winRegion) Close() error {
	if r.view != 0 {
		_ = windows.UnmapViewOfFile(r.view)
		r.view = 0
	}
	if r.handle != 0 {
		_ = windows.CloseHandle(r.handle)
		r.handle = 0
	}
	return nil
}
