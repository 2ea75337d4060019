package nes

import "image"

// Console is the driver-facing interface: reset, step-by-instruction
// execution, frame polling, and the audio/input sinks/sources a host
// wires up.
type Console interface {
	Reset() error
	Step() (int, error)
	Frame() (*image.RGBA, bool)
	SetAudioOut(chan float32)
	// SetButtons latches a single-byte button bitmask for the given
	// controller port (1 or 2; any other value is treated as port 1).
	SetButtons(player int, mask byte)
	LoadSRAM(blob []byte) error
	SaveSRAM() []byte
}

// NesConsole wires the CPU, PPU, APU, mapper, and controllers together and
// owns the cross-component mutable state the driver (not any single
// component) must hold: the NMI latch and the DMA/DMC stall counter.
type NesConsole struct {
	cpu         *CPU
	bus         *Bus
	ppu         *PPU
	apu         *APU
	mapper      Mapper
	cartridge   *Cartridge
	controller1 *Controller
	controller2 *Controller

	nmiPending bool
	stall      int
	cycleCount uint64

	lastFrame    uint64
	currentFrame uint64
	buffer       *image.RGBA
}

// NewConsole creates a console for the given cartridge. If debug is true,
// the console returned is wrapped with the interactive step debugger.
func NewConsole(cartridge *Cartridge, debug bool) (Console, error) {
	mapper, err := NewMapper(cartridge)
	if err != nil {
		return nil, err
	}
	console := &NesConsole{
		cpu:         NewCPU(),
		mapper:      mapper,
		cartridge:   cartridge,
		controller1: NewController(),
		controller2: NewController(),
	}
	console.ppu = NewPPU(NewPPUBus(NewRAM(), cartridge, mapper))
	console.apu = NewAPU()
	console.bus = NewBus(NewRAM(), console.ppu, console.apu, mapper,
		console.controller1, console.controller2, &console.stall)
	console.apu.SetMemoryReader(console.bus.Read)
	console.apu.SetStallCounter(&console.stall)
	if debug {
		return &DebugConsole{NesConsole: console}, nil
	}
	return console, nil
}

func (c *NesConsole) Reset() error {
	c.currentFrame = 0
	c.lastFrame = 0
	c.nmiPending = false
	c.stall = 0
	c.cpu.Reset(c.bus)
	c.ppu.Reset()
	return nil
}

// Step executes exactly one CPU instruction (or a single stalled cycle, or
// one 7-cycle interrupt entry) and drives the PPU and APU for the matching number of clocks, at
// the NES's fixed 1:3 CPU:PPU clock ratio.
func (c *NesConsole) Step() (int, error) {
	preStall := c.stall
	irqLine := c.apu.IRQLine() || c.mapper.IRQPending()
	cycles, err := c.cpu.Step(c.bus, &c.nmiPending, &c.stall, irqLine)
	if err != nil {
		return cycles, err
	}
	// A fresh OAM DMA transfer charges an extra cycle when it starts on an
	// odd CPU cycle; Bus always charges the base 513 and leaves this parity
	// correction to the driver, which is the only component tracking the
	// running cycle count.
	if c.stall-preStall == 513 && c.cycleCount%2 == 1 {
		c.stall++
	}
	c.cycleCount += uint64(cycles)

	for i := 0; i < cycles; i++ {
		c.apu.Step()
	}
	for i := 0; i < cycles*3; i++ {
		if c.ppu.Step(c.mapper) {
			c.nmiPending = true
		}
		if ok, f := c.ppu.Frame(); ok {
			c.currentFrame++
			c.buffer = f
		}
	}
	return cycles, nil
}

// Frame returns the most recently completed frame buffer, and whether it
// is new since the last call.
func (c *NesConsole) Frame() (*image.RGBA, bool) {
	if c.lastFrame < c.currentFrame {
		c.lastFrame = c.currentFrame
		return c.buffer, true
	}
	return c.buffer, false
}

func (c *NesConsole) SetAudioOut(channel chan float32) {
	c.apu.SetAudioOut(channel)
}

func (c *NesConsole) SetButtons(player int, mask byte) {
	if player == 2 {
		c.controller2.SetButtonMask(mask)
	} else {
		c.controller1.SetButtonMask(mask)
	}
}

func (c *NesConsole) LoadSRAM(blob []byte) error { return c.cartridge.LoadSRAM(blob) }
func (c *NesConsole) SaveSRAM() []byte           { return c.cartridge.SaveSRAM() }
