package nes

// mapper4 implements MMC3: 8 bank registers selected by an even write to
// 0x8000 and populated by the following odd write; a PRG-mode bit swaps
// which 8 KiB PRG window is bank-switchable vs. fixed to the
// second-to-last bank; a CHR-mode bit swaps the 2x(2 KiB)+4x(1 KiB)
// arrangement; a scanline counter (reload/latch at 0xC000/0xC001, enable
// at 0xE000/0xE001) raises a CPU IRQ on the transition to zero.
type mapper4 struct {
	cart *Cartridge

	registers [8]byte
	register  byte // which of the 8 registers the next bank-data write targets
	prgMode   bool
	chrMode   bool

	prgOffsets [4]int
	chrOffsets [8]int

	reload      byte
	counter     byte
	irqEnabled  bool
	irqPending  bool
	mirrorValue byte
	hasMirror   bool

	prgBanks int
	chrBanks int
}

func newMapper4(c *Cartridge) *mapper4 {
	m := &mapper4{cart: c}
	m.prgBanks = len(c.PRGROM) / 0x2000
	m.chrBanks = len(c.CHRROM) / 0x0400
	if m.prgBanks == 0 {
		m.prgBanks = 1
	}
	if m.chrBanks == 0 {
		m.chrBanks = 1
	}
	m.prgOffsets[0] = m.prgBankOffset(0)
	m.prgOffsets[1] = m.prgBankOffset(1)
	m.prgOffsets[2] = m.prgBankOffset(-2)
	m.prgOffsets[3] = m.prgBankOffset(-1)
	return m
}

func (m *mapper4) prgBankOffset(index int) int {
	if index >= 0x80 {
		index -= 0x100
	}
	index %= m.prgBanks
	offset := index * 0x2000
	if offset < 0 {
		offset += len(m.cart.PRGROM)
	}
	return offset
}

func (m *mapper4) chrBankOffset(index int) int {
	if index >= 0x80 {
		index -= 0x100
	}
	index %= m.chrBanks
	offset := index * 0x0400
	if offset < 0 {
		offset += len(m.cart.CHRROM)
	}
	return offset
}

func (m *mapper4) updateOffsets() {
	if m.prgMode {
		m.prgOffsets[0] = m.prgBankOffset(-2)
		m.prgOffsets[1] = m.prgBankOffset(int(m.registers[7]))
		m.prgOffsets[2] = m.prgBankOffset(int(m.registers[6]))
		m.prgOffsets[3] = m.prgBankOffset(-1)
	} else {
		m.prgOffsets[0] = m.prgBankOffset(int(m.registers[6]))
		m.prgOffsets[1] = m.prgBankOffset(int(m.registers[7]))
		m.prgOffsets[2] = m.prgBankOffset(-2)
		m.prgOffsets[3] = m.prgBankOffset(-1)
	}
	if m.chrMode {
		m.chrOffsets[0] = m.chrBankOffset(int(m.registers[2]))
		m.chrOffsets[1] = m.chrBankOffset(int(m.registers[3]))
		m.chrOffsets[2] = m.chrBankOffset(int(m.registers[4]))
		m.chrOffsets[3] = m.chrBankOffset(int(m.registers[5]))
		m.chrOffsets[4] = m.chrBankOffset(int(m.registers[0] &^ 1))
		m.chrOffsets[5] = m.chrBankOffset(int(m.registers[0] | 1))
		m.chrOffsets[6] = m.chrBankOffset(int(m.registers[1] &^ 1))
		m.chrOffsets[7] = m.chrBankOffset(int(m.registers[1] | 1))
	} else {
		m.chrOffsets[0] = m.chrBankOffset(int(m.registers[0] &^ 1))
		m.chrOffsets[1] = m.chrBankOffset(int(m.registers[0] | 1))
		m.chrOffsets[2] = m.chrBankOffset(int(m.registers[1] &^ 1))
		m.chrOffsets[3] = m.chrBankOffset(int(m.registers[1] | 1))
		m.chrOffsets[4] = m.chrBankOffset(int(m.registers[2]))
		m.chrOffsets[5] = m.chrBankOffset(int(m.registers[3]))
		m.chrOffsets[6] = m.chrBankOffset(int(m.registers[4]))
		m.chrOffsets[7] = m.chrBankOffset(int(m.registers[5]))
	}
}

func (m *mapper4) CPURead(address uint16) byte {
	switch {
	case address >= 0x8000:
		offset := address - 0x8000
		bank := offset / 0x2000
		within := offset % 0x2000
		return m.cart.PRGROM[m.prgOffsets[bank]+int(within)]
	case address >= 0x6000:
		return m.cart.SRAM[address-0x6000]
	default:
		return 0
	}
}

func (m *mapper4) CPUWrite(address uint16, data byte) {
	switch {
	case address >= 0x8000:
		m.writeRegister(address, data)
	case address >= 0x6000:
		m.cart.SRAM[address-0x6000] = data
	}
}

func (m *mapper4) writeRegister(address uint16, data byte) {
	even := address%2 == 0
	switch {
	case address < 0xA000:
		if even {
			m.writeBankSelect(data)
		} else {
			m.writeBankData(data)
		}
	case address < 0xC000:
		if even {
			m.mirrorValue = data & 1
			m.hasMirror = true
		}
		// odd: PRG-RAM protect, not modeled.
	case address < 0xE000:
		if even {
			m.reload = data
		} else {
			m.counter = 0
		}
	default:
		if even {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mapper4) writeBankSelect(data byte) {
	m.prgMode = data&0x40 != 0
	m.chrMode = data&0x80 != 0
	m.register = data & 0x07
	m.updateOffsets()
}

func (m *mapper4) writeBankData(data byte) {
	m.registers[m.register] = data
	m.updateOffsets()
}

func (m *mapper4) CHRIndex(address uint16) uint16 {
	bank := address / 0x0400
	offset := address % 0x0400
	return uint16(m.chrOffsets[bank]) + offset
}

// Step decrements the scanline counter once per visible-line tick when
// rendering is enabled, raising IRQ on the transition to zero with enable
// set.
func (m *mapper4) Step(scanline, cycle int, renderingEnabled bool) {
	if cycle != 260 {
		return
	}
	if scanline > 239 && scanline < 261 {
		return
	}
	if !renderingEnabled {
		return
	}
	if m.counter == 0 {
		m.counter = m.reload
	} else {
		m.counter--
	}
	if m.counter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mapper4) MirrorOverride() (Mirroring, bool) {
	if !m.hasMirror {
		return 0, false
	}
	if m.mirrorValue == 0 {
		return MirrorVertical, true
	}
	return MirrorHorizontal, true
}

func (m *mapper4) IRQPending() bool { return m.irqPending }
