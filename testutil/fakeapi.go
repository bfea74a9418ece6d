package testutil

import (
	"sync"

	"github.com/pkg/errors"

	"ut2004trainer/process"
)

var (
	ErrNoMoreFiles  = errors.New("There are no more files.")
	ErrAccessDenied = errors.New("Access is denied.")
)

// FakeAPI is a scripted process.API that records every call.
type FakeAPI struct {
	mu sync.Mutex

	// Windows maps a window title to its hwnd; PIDs maps an hwnd to its owner.
	Windows map[string]uintptr
	PIDs    map[uintptr]uint32

	// Snapshots maps snapshot flags to the handle CreateSnapshot returns.
	// Flags without an entry yield process.InvalidHandle.
	Snapshots map[uint32]process.Handle

	Modules  []process.Module
	FirstErr error

	// Memory maps an address to the bytes readable from it.
	Memory  map[uintptr][]byte
	OpenErr error
	// OpenHandle is returned by OpenProcess; zero means 0x500.
	OpenHandle process.Handle

	FindCalls     []string
	SnapshotCalls []uint32
	Inspected     []string
	Closed        map[process.Handle]int
	OpenCalls     []uint32

	cursor int
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{
		Windows:   map[string]uintptr{},
		PIDs:      map[uintptr]uint32{},
		Snapshots: map[uint32]process.Handle{},
		Memory:    map[uintptr][]byte{},
		Closed:    map[process.Handle]int{},
	}
}

// AddWindow registers a window titled title owned by pid.
func (f *FakeAPI) AddWindow(title string, hwnd uintptr, pid uint32) {
	f.Windows[title] = hwnd
	f.PIDs[hwnd] = pid
}

// AddModules appends modules named names with bases 0x10000000, 0x10100000, ...
func (f *FakeAPI) AddModules(names ...string) {
	for _, name := range names {
		base := uintptr(0x10000000 + 0x100000*len(f.Modules))
		f.Modules = append(f.Modules, process.Module{Name: name, BaseAddress: base})
	}
}

func (f *FakeAPI) CloseCount(h process.Handle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Closed[h]
}

func (f *FakeAPI) TotalCloses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Closed {
		n += c
	}
	return n
}

func (f *FakeAPI) FindWindow(title string) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FindCalls = append(f.FindCalls, title)
	return f.Windows[title]
}

func (f *FakeAPI) WindowProcessID(hwnd uintptr) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PIDs[hwnd]
}

func (f *FakeAPI) CreateSnapshot(flags, pid uint32) process.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SnapshotCalls = append(f.SnapshotCalls, flags)
	if h, ok := f.Snapshots[flags]; ok {
		return h
	}
	return process.InvalidHandle
}

func (f *FakeAPI) FirstModule(snapshot process.Handle) (process.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursor = 0
	if f.FirstErr != nil {
		return process.Module{}, f.FirstErr
	}
	return f.current()
}

func (f *FakeAPI) NextModule(snapshot process.Handle) (process.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursor++
	return f.current()
}

func (f *FakeAPI) current() (process.Module, error) {
	if f.cursor >= len(f.Modules) {
		return process.Module{}, ErrNoMoreFiles
	}
	m := f.Modules[f.cursor]
	f.Inspected = append(f.Inspected, m.Name)
	return m, nil
}

func (f *FakeAPI) CloseHandle(h process.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed[h]++
	return nil
}

func (f *FakeAPI) OpenProcess(pid, access uint32) (process.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.OpenCalls = append(f.OpenCalls, pid)
	if f.OpenErr != nil {
		return process.NullHandle, f.OpenErr
	}
	if f.OpenHandle == 0 {
		return 0x500, nil
	}
	return f.OpenHandle, nil
}

func (f *FakeAPI) ReadMemory(h process.Handle, addr uintptr, buf []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.Memory[addr]
	if !ok {
		return 0, ErrAccessDenied
	}
	return copy(buf, data), nil
}
