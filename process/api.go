package process

// Handle is a raw OS handle value. Two values mean failure: NullHandle and InvalidHandle.
type Handle uintptr

const (
	NullHandle    Handle = 0
	InvalidHandle Handle = ^Handle(0)
)

func (h Handle) Valid() bool {
	return h != NullHandle && h != InvalidHandle
}

// Module is one entry of a module snapshot.
type Module struct {
	Name        string
	BaseAddress uintptr
}

// API is the slice of the OS the locator depends on.
type API interface {
	// FindWindow returns the window with exactly this title, or 0.
	FindWindow(title string) uintptr
	// WindowProcessID returns the pid owning hwnd, or 0.
	WindowProcessID(hwnd uintptr) uint32
	// CreateSnapshot returns the raw snapshot handle; callers check it with Valid.
	CreateSnapshot(flags, pid uint32) Handle
	FirstModule(snapshot Handle) (Module, error)
	// NextModule fails once the snapshot has no more entries.
	NextModule(snapshot Handle) (Module, error)
	CloseHandle(h Handle) error

	OpenProcess(pid, access uint32) (Handle, error)
	ReadMemory(h Handle, addr uintptr, buf []byte) (int, error)
}
