package nes

import "testing"

// mapper 0 (NROM) mirrors a 16 KiB PRG image at both 0x8000
// and 0xC000.
func TestMapper0MirrorsHalfSizePRG(t *testing.T) {
	cart := &Cartridge{PRGROM: make([]byte, prgROMSizeUnit), CHRROM: make([]byte, chrROMSizeUnit)}
	cart.PRGROM[0] = 0x11
	cart.PRGROM[0x3FFF] = 0x22
	m := newMapper0(cart)
	if got := m.CPURead(0x8000); got != 0x11 {
		t.Fatalf("CPURead(0x8000): got=0x%02x, want=0x11", got)
	}
	if got := m.CPURead(0xC000); got != 0x11 {
		t.Fatalf("CPURead(0xC000): got=0x%02x, want=0x11 (16 KiB PRG mirrored)", got)
	}
	if got := m.CPURead(0xBFFF); got != 0x22 {
		t.Fatalf("CPURead(0xBFFF): got=0x%02x, want=0x22", got)
	}
}

// mapper 3 (CNROM) switches CHR bank on any write to
// 0x8000-0xFFFF, masking the written value to 2 bits.
func TestMapper3CHRBankSwitch(t *testing.T) {
	cart := &Cartridge{PRGROM: make([]byte, prgROMSizeUnit), CHRROM: make([]byte, 4*chrROMSizeUnit)}
	for bank := 0; bank < 4; bank++ {
		cart.CHRROM[bank*chrROMSizeUnit] = byte(bank)
	}
	m := newMapper3(cart)
	m.CPUWrite(0x8000, 0x05) // 0x05 & 3 == 1
	if got := m.CHRIndex(0x0000); got != uint16(chrROMSizeUnit) {
		t.Fatalf("CHRIndex after bank switch: got=%d, want=%d", got, chrROMSizeUnit)
	}
	if got := cart.CHRROM[m.CHRIndex(0x0000)]; got != 1 {
		t.Fatalf("CHR bank contents: got=%d, want=1", got)
	}
}
