package main

import (
	"flag"
	"fmt"
	"os"

	"ut2004trainer/config"
	"ut2004trainer/game"
	"ut2004trainer/memory"
	"ut2004trainer/overlay"
	"ut2004trainer/process"
)

func main() {
	configPath := flag.String("config", config.DEFAULT_CONFIG_FILE, "path of TOML file overriding window names and module")
	headless := flag.Bool("headless", false, "print the result and exit instead of opening the status window")
	flag.Parse()

	targets, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("[CONFIG] Error:", err)
		os.Exit(config.EXIT_FATAL)
	}

	api := process.NewAPI()
	g := game.MustFind(process.NewFinder(api, targets))
	defer g.Close()

	status := overlay.Status{
		Name:       g.Name(),
		PID:        g.PID(),
		Executable: g.Executable(),
		Module:     targets.ModuleName,
		Base:       g.ModuleAddress(),
	}

	if g.ModuleFound() {
		if r, err := memory.Open(api, g.PID()); err != nil {
			fmt.Println("[MEM] Attach failed:", err)
		} else {
			ok := r.HasImageHeader(g.ModuleAddress())
			r.Close()
			status.HeaderOK = &ok
		}
	}

	if *headless {
		for _, line := range overlay.Lines(status) {
			fmt.Println(line)
		}
		return
	}

	if err := overlay.Run(status); err != nil {
		fmt.Println("[GAME] Overlay:", err)
	}
}
