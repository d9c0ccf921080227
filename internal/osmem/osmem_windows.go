//go:build windows

package osmem

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Anonymous commits size bytes of zeroed memory with VirtualAlloc.
func Anonymous(size int) ([]byte, func() error, error) {
	if err := checkSize(size); err != nil {
		return nil, nil, err
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, err
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	var once sync.Once
	cleanup := func() error {
		var err error
		once.Do(func() {
			err = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		})
		return err
	}
	return data, cleanup, nil
}
