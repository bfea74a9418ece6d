package memory

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"

	"ut2004trainer/config"
	"ut2004trainer/process"
)

// Reader holds its own read-only handle to the game process, separate from
// the snapshot handle owned by game.Game.
type Reader struct {
	api       process.API
	handle    process.Handle
	pid       uint32
	closeOnce sync.Once
}

func Open(api process.API, pid uint32) (*Reader, error) {
	h, err := api.OpenProcess(pid, config.TRAINER_ACCESS)
	if err != nil {
		return nil, errors.Wrapf(err, "open process %d", pid)
	}
	if !h.Valid() {
		return nil, errors.Errorf("open process %d: invalid handle", pid)
	}
	return &Reader{api: api, handle: h, pid: pid}, nil
}

func (r *Reader) Close() {
	r.closeOnce.Do(func() {
		r.api.CloseHandle(r.handle)
	})
}

func (r *Reader) ReadBytes(addr uintptr, buf []byte) error {
	n, err := r.api.ReadMemory(r.handle, addr, buf)
	if err != nil {
		return errors.Wrapf(err, "read %d bytes at %#x", len(buf), addr)
	}
	if n != len(buf) {
		return errors.Errorf("short read at %#x: %d of %d bytes", addr, n, len(buf))
	}
	return nil
}

func (r *Reader) ReadU32(addr uintptr) (uint32, error) {
	var b [4]byte
	if err := r.ReadBytes(addr, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadString reads up to maxLen bytes and cuts at the first NUL.
func (r *Reader) ReadString(addr uintptr, maxLen int) (string, error) {
	buf := make([]byte, maxLen)
	if err := r.ReadBytes(addr, buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i]), nil
		}
	}
	return string(buf), nil
}

// HasImageHeader reports whether base points at a DOS image header.
func (r *Reader) HasImageHeader(base uintptr) bool {
	if base == 0 {
		return false
	}
	sig, err := r.ReadString(base, len(config.IMAGE_DOS_SIGNATURE))
	return err == nil && sig == config.IMAGE_DOS_SIGNATURE
}
