//go:build windows

package process

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW = user32.NewProc("FindWindowW")
)

// Win32 implements API with kernel32/user32 calls.
type Win32 struct{}

func NewAPI() API {
	return Win32{}
}

func (Win32) FindWindow(title string) uintptr {
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(name)))
	return hwnd
}

func (Win32) WindowProcessID(hwnd uintptr) uint32 {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(windows.HWND(hwnd), &pid); err != nil {
		return 0
	}
	return pid
}

func (Win32) CreateSnapshot(flags, pid uint32) Handle {
	// on failure x/sys returns InvalidHandle together with the error
	snap, _ := windows.CreateToolhelp32Snapshot(flags, pid)
	return Handle(snap)
}

func (Win32) FirstModule(snapshot Handle) (Module, error) {
	var me windows.ModuleEntry32
	me.Size = uint32(unsafe.Sizeof(me))
	err := windows.Module32First(windows.Handle(snapshot), &me)
	return moduleFromEntry(&me), err
}

func (Win32) NextModule(snapshot Handle) (Module, error) {
	var me windows.ModuleEntry32
	me.Size = uint32(unsafe.Sizeof(me))
	err := windows.Module32Next(windows.Handle(snapshot), &me)
	return moduleFromEntry(&me), err
}

func (Win32) CloseHandle(h Handle) error {
	return windows.CloseHandle(windows.Handle(h))
}

func (Win32) OpenProcess(pid, access uint32) (Handle, error) {
	h, err := windows.OpenProcess(access, false, pid)
	return Handle(h), err
}

func (Win32) ReadMemory(h Handle, addr uintptr, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	var read uintptr
	err := windows.ReadProcessMemory(windows.Handle(h), addr, &buf[0], uintptr(len(buf)), &read)
	return int(read), err
}

func moduleFromEntry(me *windows.ModuleEntry32) Module {
	return Module{
		Name:        windows.UTF16ToString(me.Module[:]),
		BaseAddress: me.ModBaseAddr,
	}
}
