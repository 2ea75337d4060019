package nes

// PPUBus is the PPU-side memory map: pattern tables (via the mapper's CHR
// bank, including CHR-RAM writes), two physical nametables mirrored into
// four logical ones, and palette RAM.
type PPUBus struct {
	vram      *RAM
	cartridge *Cartridge
	mapper    Mapper
	palette   [32]byte
}

func NewPPUBus(vram *RAM, cartridge *Cartridge, mapper Mapper) *PPUBus {
	return &PPUBus{vram: vram, cartridge: cartridge, mapper: mapper}
}

func (b *PPUBus) mirroring() Mirroring {
	if m, ok := b.mapper.MirrorOverride(); ok {
		return m
	}
	return b.cartridge.Mirroring
}

// nametableIndex maps a $2000-$2FFF nametable address to a 2 KiB VRAM
// offset under the configured mirroring mode.
func (b *PPUBus) nametableIndex(address uint16) uint16 {
	offset := (address - 0x2000) % 0x1000
	table := offset / 0x0400  // logical nametable 0-3
	within := offset % 0x0400 // 0-0x3FF

	switch b.mirroring() {
	case MirrorHorizontal:
		// tables 0,1 -> physical 0; tables 2,3 -> physical 1
		return (table/2)*0x0400 + within
	case MirrorVertical:
		// tables 0,2 -> physical 0; tables 1,3 -> physical 1
		return (table%2)*0x0400 + within
	case MirrorSingle0:
		return within
	case MirrorSingle1:
		return 0x0400 + within
	case MirrorFour:
		return table*0x0400 + within
	default:
		return within
	}
}

// paletteIndex applies the sprite-palette mirroring quirk: entries 0x10,
// 0x14, 0x18, 0x1C alias the background-palette universal-color entries
// at 0x00, 0x04, 0x08, 0x0C.
func paletteIndex(address uint16) uint16 {
	idx := address % 0x20
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

// Read reads one byte from PPU address space.
//
//	0x0000-0x1FFF  pattern tables (CHR ROM/RAM via the mapper)
//	0x2000-0x2FFF  nametables (mirrored per b.mirroring())
//	0x3000-0x3EFF  mirror of 0x2000-0x2EFF
//	0x3F00-0x3FFF  palette RAM, mirrored every 0x20
func (b *PPUBus) Read(address uint16) byte {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		return b.readCHR(address)
	case address < 0x3000:
		return b.vram.read(b.nametableIndex(address))
	case address < 0x3F00:
		return b.vram.read(b.nametableIndex(address - 0x1000))
	default:
		return b.palette[paletteIndex(address)]
	}
}

func (b *PPUBus) Write(address uint16, data byte) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		b.writeCHR(address, data)
	case address < 0x3000:
		b.vram.write(b.nametableIndex(address), data)
	case address < 0x3F00:
		b.vram.write(b.nametableIndex(address-0x1000), data)
	default:
		b.palette[paletteIndex(address)] = data
	}
}

func (b *PPUBus) readCHR(address uint16) byte {
	return b.cartridge.CHRROM[b.mapper.CHRIndex(address)]
}

func (b *PPUBus) writeCHR(address uint16, data byte) {
	if !b.cartridge.CHRIsRAM {
		return // writes to CHR ROM are ignored, matching real hardware
	}
	idx := b.mapper.CHRIndex(address)
	b.cartridge.CHRROM[idx] = data
}
