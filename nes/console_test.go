package nes

import "testing"

func newTestConsole(t *testing.T, prg []byte, resetAddr uint16) *NesConsole {
	t.Helper()
	cart := newTestCartridge(prg, resetAddr)
	mapper, err := NewMapper(cart)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	console := &NesConsole{
		cpu:         NewCPU(),
		mapper:      mapper,
		cartridge:   cart,
		controller1: NewController(),
		controller2: NewController(),
	}
	console.ppu = NewPPU(NewPPUBus(NewRAM(), cart, mapper))
	console.apu = NewAPU()
	console.bus = NewBus(NewRAM(), console.ppu, console.apu, mapper,
		console.controller1, console.controller2, &console.stall)
	console.apu.SetMemoryReader(console.bus.Read)
	console.apu.SetStallCounter(&console.stall)
	if err := console.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return console
}

// set NMI-enable via write $80 to $2000. Run until
// the PPU reaches line 241 cycle 0. The next CPU step loads PC from
// $FFFA/$FFFB, decreases SP by 3, and sets I.
func TestNMIHandshake(t *testing.T) {
	prg := make([]byte, testPRGSize)
	prg[0] = 0xEA // NOP at 0x8000, never executed: the NMI is taken first
	prg[0x1000] = 0xEA
	prg[0x7FFA] = 0x00 // NMI vector -> 0x9000
	prg[0x7FFB] = 0x90
	console := newTestConsole(t, prg, 0x8000)

	// WriteRegister(0, 0x80) sets PPUCTRL's NMI-enable bit directly; this
	// mirrors what a CPU write to $2000 would do without needing the CPU
	// to execute the write itself.
	console.ppu.WriteRegister(0, 0x80)

	preSP := console.cpu.S
	for i := 0; i < 400000; i++ {
		if console.ppu.scanline == 241 && console.ppu.cycle == 0 {
			break
		}
		console.ppu.Step(console.mapper)
	}
	if console.ppu.scanline != 241 || console.ppu.cycle != 0 {
		t.Fatalf("PPU never reached line 241 cycle 0")
	}

	// The vblank-entry dot (scanline 241, cycle 1) is one Step away; take
	// it so the NMI latch is armed before the next CPU instruction.
	if console.ppu.Step(console.mapper) {
		console.nmiPending = true
	}

	if _, err := console.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if console.cpu.PC != 0x9000 {
		t.Fatalf("PC after NMI: got=0x%04x, want=0x9000", console.cpu.PC)
	}
	if console.cpu.S != preSP-3 {
		t.Fatalf("S after NMI: got=0x%02x, want=0x%02x", console.cpu.S, preSP-3)
	}
	if !console.cpu.P.I {
		t.Fatalf("I flag after NMI: got=false, want=true")
	}
}

// end-to-end through Console.Step: a DMA that
// starts on an odd running-cycle count is debited 514 cycles.
func TestConsoleDMAOddParityChargesExtraCycle(t *testing.T) {
	prg := []byte{0x8D, 0x14, 0x40, 0x00} // STA $4014 (A is 0 after reset)
	console := newTestConsole(t, prg, 0x8000)
	console.cycleCount = 1 // force odd parity before the DMA-triggering write

	cycles, err := console.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if console.stall != 514 {
		t.Fatalf("stall after odd-parity DMA: got=%d, want=514", console.stall)
	}
	if cycles <= 0 {
		t.Fatalf("Step reported zero cycles for the STA itself")
	}
}
