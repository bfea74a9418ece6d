package game

import (
	"fmt"
	"io"
	"os"
	"sync"

	psutil "github.com/shirou/gopsutil/v3/process"

	"ut2004trainer/config"
	"ut2004trainer/process"
)

// Game is a discovered game process. It owns its snapshot handle; only Close
// releases it. Use it through the pointer returned by Find.
type Game struct {
	name          string
	pid           uint32
	handle        process.Handle
	moduleAddress uintptr

	api       process.API
	closeOnce sync.Once
	closeErr  error
}

func (g *Game) Name() string { return g.name }
func (g *Game) PID() uint32 { return g.pid }
func (g *Game) Handle() process.Handle { return g.handle }
func (g *Game) ModuleAddress() uintptr { return g.moduleAddress }
func (g *Game) ModuleFound() bool { return g.moduleAddress != 0 }

// Close releases the handle. Only the first call reaches the OS.
func (g *Game) Close() error {
	if g == nil {
		return nil
	}
	g.closeOnce.Do(func() {
		g.closeErr = g.api.CloseHandle(g.handle)
	})
	return g.closeErr
}

// Executable returns the image name of the game process, or "" when the
// process can no longer be queried.
func (g *Game) Executable() string {
	p, err := psutil.NewProcess(int32(g.pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}

func (g *Game) String() string {
	return fmt.Sprintf("%s (pid %d) base %#x", g.name, g.pid, g.moduleAddress)
}

// Find runs locate, acquire and resolve in order and assembles the Game.
// A zero module address is not an error; the caller decides what to do with it.
func Find(f *process.Finder) (*Game, error) {
	win, err := f.Locate()
	if err != nil {
		return nil, err
	}

	snap, err := f.AcquireSnapshot(win.PID)
	if err != nil {
		return nil, err
	}

	base, err := f.ResolveModule(snap)
	if err != nil {
		// no Game owns the snapshot yet
		f.API.CloseHandle(snap)
		return nil, err
	}

	return &Game{
		name:          win.Name,
		pid:           win.PID,
		handle:        snap,
		moduleAddress: base,
		api:           f.API,
	}, nil
}

// Exit terminates the process. Tests replace it.
var Exit = os.Exit

// MustFind is Find for the top-level driver: a fatal discovery failure prints
// its diagnostic and exits with status 1.
func MustFind(f *process.Finder) *Game {
	g, err := Find(f)
	if err != nil {
		var out io.Writer = os.Stderr
		if f.Out != nil {
			out = f.Out
		}
		fmt.Fprintln(out, "[GAME] Fatal:", err)
		Exit(config.EXIT_FATAL)
		return nil
	}
	return g
}
