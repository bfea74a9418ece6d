package game

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"ut2004trainer/config"
	"ut2004trainer/process"
	"ut2004trainer/testutil"
)

func runningGame() *testutil.FakeAPI {
	api := testutil.NewFakeAPI()
	api.AddWindow(config.WINDOW_UT2004, 0x30, 4242)
	api.Snapshots[config.SNAPSHOT_SCOPE_32] = 0x100
	api.Snapshots[config.SNAPSHOT_SCOPE_64] = 0x200
	api.AddModules("UT2004.exe", "Core.dll", "Engine.dll", "Window.dll")
	return api
}

func newFinder(api process.API) (*process.Finder, *bytes.Buffer) {
	var out bytes.Buffer
	f := process.NewFinder(api, config.Default())
	f.Out = &out
	return f, &out
}

func TestFind(t *testing.T) {
	api := runningGame()
	f, _ := newFinder(api)

	g, err := Find(f)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	defer g.Close()

	if g.Name() != config.WINDOW_UT2004 {
		t.Errorf("name = %q", g.Name())
	}
	if g.PID() != 4242 {
		t.Errorf("pid = %d", g.PID())
	}
	if g.Handle() != 0x100 {
		t.Errorf("handle = %#x, want 0x100", uintptr(g.Handle()))
	}
	if g.ModuleAddress() != api.Modules[2].BaseAddress || !g.ModuleFound() {
		t.Errorf("module address = %#x, want %#x", g.ModuleAddress(), api.Modules[2].BaseAddress)
	}
	if api.CloseCount(0x100) != 0 {
		t.Error("handle closed before Close")
	}
}

func TestFind_moduleMissStillBuildsGame(t *testing.T) {
	api := runningGame()
	api.Modules = nil
	api.AddModules("UT2004.exe", "Core.dll")
	f, _ := newFinder(api)

	g, err := Find(f)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	defer g.Close()

	if g.ModuleAddress() != 0 || g.ModuleFound() {
		t.Errorf("module address = %#x, want 0", g.ModuleAddress())
	}
	if !strings.Contains(g.String(), "base 0x0") {
		t.Errorf("String() = %q", g.String())
	}
}

func TestFind_fatalStages(t *testing.T) {
	tests := []struct {
		name  string
		setup func(api *testutil.FakeAPI)
		stage process.Stage
	}{
		{"no window", func(api *testutil.FakeAPI) { api.Windows = map[string]uintptr{} }, process.StageLocate},
		{"no snapshot", func(api *testutil.FakeAPI) { api.Snapshots = nil }, process.StageAcquire},
		{"no first module", func(api *testutil.FakeAPI) { api.FirstErr = testutil.ErrAccessDenied }, process.StageEnumerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := runningGame()
			tt.setup(api)
			f, _ := newFinder(api)

			g, err := Find(f)
			if g != nil {
				t.Fatal("no Game may exist after a fatal stage")
			}
			fatal, ok := process.AsFatal(err)
			if !ok || fatal.Stage != tt.stage {
				t.Fatalf("err = %v, want %s Fatal", err, tt.stage)
			}
		})
	}
}

func TestFind_enumerateFailureReleasesSnapshot(t *testing.T) {
	api := runningGame()
	api.FirstErr = testutil.ErrAccessDenied
	f, _ := newFinder(api)

	if _, err := Find(f); err == nil {
		t.Fatal("expected error")
	}
	if api.CloseCount(0x100) != 1 {
		t.Errorf("snapshot closed %d times, want 1", api.CloseCount(0x100))
	}
}

func TestClose_exactlyOnce(t *testing.T) {
	api := runningGame()
	f, _ := newFinder(api)

	g, err := Find(f)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	g.Close()
	g.Close()

	if n := api.CloseCount(0x100); n != 1 {
		t.Errorf("handle closed %d times, want 1", n)
	}
}

func TestClose_onEarlyReturn(t *testing.T) {
	api := runningGame()
	f, _ := newFinder(api)

	useGame := func() error {
		g, err := Find(f)
		if err != nil {
			return err
		}
		defer g.Close()

		return errors.New("trainer failed after attach")
	}

	if err := useGame(); err == nil {
		t.Fatal("expected the trainer error")
	}
	if n := api.CloseCount(0x100); n != 1 {
		t.Errorf("handle closed %d times, want 1", n)
	}
}

func TestClose_onPanic(t *testing.T) {
	api := runningGame()
	f, _ := newFinder(api)

	func() {
		defer func() { recover() }()

		g, err := Find(f)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		defer g.Close()
		panic("unwind")
	}()

	if n := api.CloseCount(0x100); n != 1 {
		t.Errorf("handle closed %d times, want 1", n)
	}
}

func TestClose_nil(t *testing.T) {
	var g *Game
	if err := g.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestMustFind_callsExit(t *testing.T) {
	orig := Exit
	defer func() { Exit = orig }()

	code := -1
	Exit = func(c int) { code = c }

	f, out := newFinder(testutil.NewFakeAPI())
	if g := MustFind(f); g != nil {
		t.Error("MustFind returned a Game without a window")
	}
	if code != config.EXIT_FATAL {
		t.Errorf("exit code = %d, want %d", code, config.EXIT_FATAL)
	}
	if !strings.Contains(out.String(), "[GAME] Fatal:") {
		t.Errorf("missing diagnostic, got %q", out.String())
	}
}

func TestMustFind_success(t *testing.T) {
	orig := Exit
	defer func() { Exit = orig }()
	Exit = func(c int) { t.Fatalf("unexpected exit %d", c) }

	f, _ := newFinder(runningGame())
	g := MustFind(f)
	defer g.Close()
	if g.PID() != 4242 {
		t.Errorf("pid = %d", g.PID())
	}
}

// The child re-runs this test with the env var set and exits through os.Exit.
func TestMustFind_exitStatus(t *testing.T) {
	if os.Getenv("UT_TRAINER_EXIT_CHILD") == "1" {
		f, _ := newFinder(testutil.NewFakeAPI())
		MustFind(f)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMustFind_exitStatus$")
	cmd.Env = append(os.Environ(), "UT_TRAINER_EXIT_CHILD=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected the child to exit with an error status, got %v", err)
	}
	if exitErr.ExitCode() != config.EXIT_FATAL {
		t.Errorf("exit code = %d, want %d", exitErr.ExitCode(), config.EXIT_FATAL)
	}
}
