package nes

// nes_test.go holds shared test scaffolding: a minimal iNES (mapper 0,
// 32 KiB PRG, 8 KiB CHR) builder used across the component test files so
// each one can focus on the behavior it's checking instead of re-deriving
// cartridge bytes.

const testPRGSize = 0x8000 // 32 KiB: fills 0x8000-0xFFFF with no mirroring.

// newTestCartridge builds a 32 KiB PRG / 8 KiB CHR NROM image, with prg
// copied in starting at CPU address 0x8000, and the reset vector pointed
// at resetAddr.
func newTestCartridge(prg []byte, resetAddr uint16) *Cartridge {
	data := make([]byte, inesHeaderSizeBytes+testPRGSize+chrROMSizeUnit)
	copy(data[0:4], []byte{'N', 'E', 'S', 0x1A})
	data[4] = byte(testPRGSize / prgROMSizeUnit) // 2 PRG banks
	data[5] = 1                                  // 1 CHR bank
	data[6] = 0                                  // mapper 0, horizontal mirror
	data[7] = 0
	copy(data[inesHeaderSizeBytes:inesHeaderSizeBytes+len(prg)], prg)
	// Reset vector lives at CPU 0xFFFC/0xFFFD, which is PRG offset
	// 0x7FFC/0x7FFD within this 32 KiB image.
	vecOff := inesHeaderSizeBytes + testPRGSize - 4
	data[vecOff] = byte(resetAddr)
	data[vecOff+1] = byte(resetAddr >> 8)
	cart, err := NewCartridge(data)
	if err != nil {
		panic(err)
	}
	return cart
}

// newTestCartridgeCHRRAM builds a mapper-0 cartridge with zero CHR banks,
// so NewCartridge allocates 8 KiB of writable CHR RAM - needed by PPU
// tests that write pattern data directly.
func newTestCartridgeCHRRAM() *Cartridge {
	data := make([]byte, inesHeaderSizeBytes+testPRGSize)
	copy(data[0:4], []byte{'N', 'E', 'S', 0x1A})
	data[4] = byte(testPRGSize / prgROMSizeUnit)
	data[5] = 0 // 0 CHR banks -> CHR RAM
	cart, err := NewCartridge(data)
	if err != nil {
		panic(err)
	}
	return cart
}

// testSystem bundles a CPU against a fully wired Bus (PPU/APU/mapper0)
// built from the given PRG image loaded at 0x8000, with PC reset to
// resetAddr.
type testSystem struct {
	cpu        *CPU
	bus        *Bus
	ppu        *PPU
	apu        *APU
	mapper     Mapper
	nmiPending bool
	stall      int
}

func newTestSystem(prg []byte, resetAddr uint16) *testSystem {
	cart := newTestCartridge(prg, resetAddr)
	mapper, err := NewMapper(cart)
	if err != nil {
		panic(err)
	}
	ppu := NewPPU(NewPPUBus(NewRAM(), cart, mapper))
	apu := NewAPU()
	sys := &testSystem{ppu: ppu, apu: apu, mapper: mapper}
	sys.bus = NewBus(NewRAM(), ppu, apu, mapper, NewController(), NewController(), &sys.stall)
	apu.SetMemoryReader(sys.bus.Read)
	apu.SetStallCounter(&sys.stall)
	sys.cpu = NewCPU()
	sys.cpu.Reset(sys.bus)
	return sys
}

// step runs exactly one CPU unit of work (instruction, stall cycle, or
// interrupt sequence) and returns the cycle count, per CPU.Step.
func (s *testSystem) step() (int, error) {
	irqLine := s.apu.IRQLine() || s.mapper.IRQPending()
	return s.cpu.Step(s.bus, &s.nmiPending, &s.stall, irqLine)
}
