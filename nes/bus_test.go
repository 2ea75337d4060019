package nes

import "testing"

// write $02 to $4014 with OAM_addr=0. The next 256 bus reads are from
// $0200-$02FF, the CPU is debited the base 513-cycle stall (the driver
// adds one more on odd start-cycle parity), and OAM receives those
// bytes in order.
func TestOAMDMA(t *testing.T) {
	sys := newTestSystem(make([]byte, 16), 0x8000)
	for i := 0; i < 256; i++ {
		sys.bus.Write(0x0200+uint16(i), byte(i))
	}
	sys.cpu.PC = 0x8000 // arbitrary; DMA is driven directly here, not via CPU fetch

	preStall := sys.stall
	sys.bus.Write(0x4014, 0x02)
	if got := sys.stall - preStall; got != 513 {
		t.Fatalf("DMA base stall: got=%d, want=513 (parity correction applied by the driver)", got)
	}
	for i := 0; i < 256; i++ {
		if got := sys.ppu.primaryOAM[i]; got != byte(i) {
			t.Fatalf("OAM[%d]: got=0x%02x, want=0x%02x", i, got, byte(i))
		}
	}
}

func TestWorkRAMMirroring(t *testing.T) {
	sys := newTestSystem(make([]byte, 16), 0x8000)
	sys.bus.Write(0x0000, 0xAB)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := sys.bus.Read(mirror); got != 0xAB {
			t.Fatalf("RAM mirror at 0x%04x: got=0x%02x, want=0xAB", mirror, got)
		}
	}
}
