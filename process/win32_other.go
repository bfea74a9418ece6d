//go:build !windows

package process

import "github.com/pkg/errors"

var errUnsupported = errors.New("process access not supported on this platform")

// Win32 is a stub outside Windows: no window is ever found and every handle
// operation fails.
type Win32 struct{}

func NewAPI() API {
	return Win32{}
}

func (Win32) FindWindow(title string) uintptr { return 0 }

func (Win32) WindowProcessID(hwnd uintptr) uint32 { return 0 }

func (Win32) CreateSnapshot(flags, pid uint32) Handle { return InvalidHandle }

func (Win32) FirstModule(snapshot Handle) (Module, error) { return Module{}, errUnsupported }

func (Win32) NextModule(snapshot Handle) (Module, error) { return Module{}, errUnsupported }

func (Win32) CloseHandle(h Handle) error { return errUnsupported }

func (Win32) OpenProcess(pid, access uint32) (Handle, error) { return NullHandle, errUnsupported }

func (Win32) ReadMemory(h Handle, addr uintptr, buf []byte) (int, error) {
	return 0, errUnsupported
}
