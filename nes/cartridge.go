package nes

import "fmt"

const (
	chrROMSizeUnit      int  = 0x2000 // 8 KiB
	prgROMSizeUnit      int  = 0x4000 // 16 KiB
	inesHeaderSizeBytes int  = 16
	msdosEOF            byte = 0x1A
	sramSize            int  = 0x2000 // 8 KiB
)

// Mirroring identifies how the PPU maps its two physical 1 KiB name-table
// banks onto the logical 2x2 name-table grid. Modeled as an enum rather
// than a single "is_horizontal_mirror" boolean so four-screen and the two
// single-screen modes have a home too.
type Mirroring int

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingle0
	MirrorSingle1
	MirrorFour
)

// Cartridge is the parsed iNES (v1) image: PRG/CHR banks, mirroring,
// mapper id, and a save-RAM blob the host may seed from persisted storage.
type Cartridge struct {
	PRGROM     []byte
	CHRROM     []byte
	CHRIsRAM   bool
	Mirroring  Mirroring
	MapperID   byte
	HasBattery bool
	SRAM       [sramSize]byte
}

func isValidINES(data []byte) bool {
	return len(data) >= inesHeaderSizeBytes &&
		data[0] == 'N' && data[1] == 'E' && data[2] == 'S' && data[3] == msdosEOF
}

// NewCartridge parses an iNES v1 image. If the image declares zero CHR
// banks, an 8 KiB zeroed CHR RAM bank is allocated instead.
func NewCartridge(data []byte) (*Cartridge, error) {
	if !isValidINES(data) {
		return nil, &BadCartridgeError{Reason: "missing \"NES\\x1A\" magic or header too short"}
	}
	prgBanks := int(data[4])
	chrBanks := int(data[5])
	flags6 := data[6]
	flags7 := data[7]

	prgEnd := inesHeaderSizeBytes + prgBanks*prgROMSizeUnit
	chrEnd := prgEnd + chrBanks*chrROMSizeUnit
	if len(data) < prgEnd || len(data) < chrEnd {
		return nil, &BadCartridgeError{Reason: "truncated PRG/CHR payload relative to header sizes"}
	}

	c := &Cartridge{
		PRGROM:     data[inesHeaderSizeBytes:prgEnd],
		MapperID:   (flags6 >> 4) | (flags7 & 0xF0),
		HasBattery: flags6&(1<<1) != 0,
	}
	switch {
	case flags6&(1<<3) != 0:
		c.Mirroring = MirrorFour
	case flags6&1 != 0:
		c.Mirroring = MirrorVertical
	default:
		c.Mirroring = MirrorHorizontal
	}
	if chrBanks == 0 {
		c.CHRROM = make([]byte, chrROMSizeUnit)
		c.CHRIsRAM = true
	} else {
		c.CHRROM = data[prgEnd:chrEnd]
	}
	return c, nil
}

// LoadSRAM seeds the cartridge's save-RAM from a host-provided 8 KiB blob.
func (c *Cartridge) LoadSRAM(blob []byte) error {
	if len(blob) != sramSize {
		return fmt.Errorf("save RAM blob must be exactly %d bytes, got %d", sramSize, len(blob))
	}
	copy(c.SRAM[:], blob)
	return nil
}

// SaveSRAM returns a copy of the current save-RAM contents for the host to
// persist.
func (c *Cartridge) SaveSRAM() []byte {
	out := make([]byte, sramSize)
	copy(out, c.SRAM[:])
	return out
}
