package overlay

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"ut2004trainer/config"
)

// Status is what the overlay shows about the attached game.
type Status struct {
	Name       string
	PID        uint32
	Executable string
	Module     string
	Base       uintptr
	// HeaderOK is nil when the header was not checked.
	HeaderOK *bool
}

type Overlay struct {
	status Status
	lines  []string
}

func New(status Status) *Overlay {
	return &Overlay{status: status, lines: Lines(status)}
}

// Lines renders the status panel text.
func Lines(s Status) []string {
	exe := s.Executable
	if exe == "" {
		exe = "?"
	}

	lines := []string{
		fmt.Sprintf("Game:   %s", TruncStr(s.Name, 40)),
		fmt.Sprintf("PID:    %d", s.PID),
		fmt.Sprintf("Image:  %s", TruncStr(exe, 40)),
	}

	if s.Base == 0 {
		lines = append(lines, fmt.Sprintf("Module: %s not found", s.Module))
		return lines
	}
	lines = append(lines, fmt.Sprintf("Module: %s @ %#x", s.Module, s.Base))

	switch {
	case s.HeaderOK == nil:
	case *s.HeaderOK:
		lines = append(lines, "Header: MZ ok")
	default:
		lines = append(lines, "Header: unreadable")
	}
	return lines
}

func TruncStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "."
}

func (o *Overlay) Update() error {
	return nil
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.SCREEN_WIDTH, config.SCREEN_HEIGHT
}

// Run opens the status window and blocks until it is closed.
func Run(status Status) error {
	ebiten.SetWindowSize(config.SCREEN_WIDTH, config.SCREEN_HEIGHT)
	ebiten.SetWindowTitle("UT Trainer")
	ebiten.SetTPS(10)
	ebiten.SetVsyncEnabled(true)

	return ebiten.RunGame(New(status))
}
