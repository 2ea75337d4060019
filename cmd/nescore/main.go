// Command nescore loads an iNES ROM, wires it into a Console, and drives a
// glfw/portaudio host window for it.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/emudev/nescore/nes"
	"github.com/emudev/nescore/ui"
)

const (
	windowWidth  = 256 * 3
	windowHeight = 240 * 3
)

func main() {
	romPath := flag.String("rom", "", "path to an iNES (.nes) ROM image")
	sramPath := flag.String("sram", "", "optional path to a battery-backed save RAM file to load/persist")
	debug := flag.Bool("debug", false, "start the interactive step debugger instead of the windowed UI")
	flag.Parse()

	if *romPath == "" {
		glog.Fatalln("usage: nescore -rom path/to/game.nes [-sram path/to/game.sav] [-debug]")
	}

	data, err := os.ReadFile(*romPath)
	if err != nil {
		glog.Fatalf("reading %s: %v", *romPath, err)
	}
	cartridge, err := nes.NewCartridge(data)
	if err != nil {
		glog.Fatalf("loading cartridge %s: %v", *romPath, err)
	}

	console, err := nes.NewConsole(cartridge, *debug)
	if err != nil {
		glog.Fatalf("initializing console: %v", err)
	}
	if err := console.Reset(); err != nil {
		glog.Fatalf("resetting console: %v", err)
	}

	if *sramPath != "" {
		if blob, err := os.ReadFile(*sramPath); err == nil {
			if err := console.LoadSRAM(blob); err != nil {
				glog.Errorf("loading save RAM %s: %v", *sramPath, err)
			}
		}
		defer func() {
			if err := os.WriteFile(*sramPath, console.SaveSRAM(), 0644); err != nil {
				glog.Errorf("saving save RAM %s: %v", *sramPath, err)
			}
		}()
	}

	if *debug {
		runDebug(console)
		return
	}
	ui.Start(console, windowWidth, windowHeight)
}

// runDebug drives the interactive step debugger's command loop until it
// errors or exits via its own "q" command.
func runDebug(console nes.Console) {
	for {
		if _, err := console.Step(); err != nil {
			glog.Errorln(err)
			return
		}
	}
}
