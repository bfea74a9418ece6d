package process

import (
	"fmt"
	"io"
	"os"
	"strings"

	"ut2004trainer/config"
)

// Window is the result of a successful window lookup.
type Window struct {
	PID  uint32
	Name string
}

// Finder runs the discovery stages against an API. Diagnostics go to Out.
type Finder struct {
	API     API
	Targets config.Targets
	Out     io.Writer
}

func NewFinder(api API, targets config.Targets) *Finder {
	return &Finder{
		API:     api,
		Targets: targets,
		Out:     os.Stdout,
	}
}

func (f *Finder) printf(format string, args ...interface{}) {
	if f.Out == nil {
		return
	}
	fmt.Fprintf(f.Out, format, args...)
}

// Locate walks the window titles in order and stops at the first one whose
// window belongs to a live process.
func (f *Finder) Locate() (Window, error) {
	for _, name := range f.Targets.WindowNames {
		var pid uint32
		if hwnd := f.API.FindWindow(name); hwnd != 0 {
			pid = f.API.WindowProcessID(hwnd)
		}

		if pid != 0 {
			f.printf("[GAME] Game found: %q, PID: %d\n", name, pid)
			return Window{PID: pid, Name: name}, nil
		}
	}

	f.printf("[GAME] No running games were found.\n")
	return Window{}, &Fatal{Stage: StageLocate, Msg: "no running games were found"}
}

// AcquireSnapshot asks for both the 32-bit and the 64-bit module snapshot of
// pid and keeps the first valid one, 32-bit first. The loser is closed.
func (f *Finder) AcquireSnapshot(pid uint32) (Handle, error) {
	snap32 := f.API.CreateSnapshot(config.SNAPSHOT_SCOPE_32, pid)
	snap64 := f.API.CreateSnapshot(config.SNAPSHOT_SCOPE_64, pid)

	if snap32.Valid() {
		f.release(snap64)
		return snap32, nil
	}
	if snap64.Valid() {
		return snap64, nil
	}

	f.printf("[GAME] Could not find process handle.\n")
	return NullHandle, &Fatal{
		Stage: StageAcquire,
		Msg:   fmt.Sprintf("no valid module snapshot for pid %d", pid),
	}
}

func (f *Finder) release(h Handle) {
	if !h.Valid() {
		return
	}
	if err := f.API.CloseHandle(h); err != nil {
		f.printf("[GAME] Close snapshot %#x: %v\n", uintptr(h), err)
	}
}

// ResolveModule scans the snapshot in enumeration order for the first module
// whose name contains the target module name. It returns 0 with a nil error
// when the scan runs out of modules.
func (f *Finder) ResolveModule(snapshot Handle) (uintptr, error) {
	target := f.Targets.ModuleName

	me, err := f.API.FirstModule(snapshot)
	if err != nil {
		f.printf("[GAME] No modules were found: %v\n", err)
		f.printf("[GAME] %+v\n", me)
		return 0, &Fatal{Stage: StageEnumerate, Msg: "no modules were found", Err: err}
	}

	for {
		if strings.Contains(me.Name, target) {
			f.printf("[GAME] Base module found: %s\n", target)
			f.printf("[GAME] Base module address: %#x\n", me.BaseAddress)
			return me.BaseAddress, nil
		}

		if me, err = f.API.NextModule(snapshot); err != nil {
			f.printf("[GAME] Could not find module %s\n", target)
			return 0, nil
		}
	}
}
