package nes

import (
	"image"
	"image/color"
)

// NES PPU generates 256x240 pixels.
const (
	width  = 256
	height = 240
)

// Palette colors, "RGB" scheme.
// Reference: https://emulation.gametechwiki.com/index.php/Famicom_color_palette
var colors = [64]color.RGBA{
	{0x6D, 0x6D, 0x6D, 255}, {0x00, 0x24, 0x92, 255}, {0x00, 0x00, 0xDB, 255}, {0x6D, 0x49, 0xDB, 255},
	{0x92, 0x00, 0x6D, 255}, {0xB6, 0x00, 0x6D, 255}, {0xB6, 0x24, 0x00, 255}, {0x92, 0x49, 0x00, 255},
	{0x6D, 0x49, 0x00, 255}, {0x24, 0x49, 0x00, 255}, {0x00, 0x6D, 0x24, 255}, {0x00, 0x92, 0x00, 255},
	{0x00, 0x49, 0x49, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xB6, 0xB6, 0xB6, 255}, {0x00, 0x6D, 0xDB, 255}, {0x00, 0x49, 0xFF, 255}, {0x92, 0x00, 0xFF, 255},
	{0xB6, 0x00, 0xFF, 255}, {0xFF, 0x00, 0x92, 255}, {0xFF, 0x00, 0x00, 255}, {0xDB, 0x6D, 0x00, 255},
	{0x92, 0x6D, 0x00, 255}, {0x24, 0x92, 0x00, 255}, {0x00, 0x92, 0x00, 255}, {0x00, 0xB6, 0x6D, 255},
	{0x00, 0x92, 0x92, 255}, {0x24, 0x24, 0x24, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0x6D, 0xB6, 0xFF, 255}, {0x92, 0x92, 0xFF, 255}, {0xDB, 0x6D, 0xFF, 255},
	{0xFF, 0x00, 0xFF, 255}, {0xFF, 0x6D, 0xFF, 255}, {0xFF, 0x92, 0x00, 255}, {0xFF, 0xB6, 0x00, 255},
	{0xDB, 0xDB, 0x00, 255}, {0x6D, 0xDB, 0x00, 255}, {0x00, 0xFF, 0x00, 255}, {0x49, 0xFF, 0xDB, 255},
	{0x00, 0xFF, 0xFF, 255}, {0x49, 0x49, 0x49, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0xB6, 0xDB, 0xFF, 255}, {0xDB, 0xB6, 0xFF, 255}, {0xFF, 0xB6, 0xFF, 255},
	{0xFF, 0x92, 0xFF, 255}, {0xFF, 0xB6, 0xB6, 255}, {0xFF, 0xDB, 0x92, 255}, {0xFF, 0xFF, 0x49, 255},
	{0xFF, 0xFF, 0x6D, 255}, {0xB6, 0xFF, 0x49, 255}, {0x92, 0xFF, 0x6D, 255}, {0x49, 0xFF, 0xDB, 255},
	{0x92, 0xDB, 0xFF, 255}, {0x92, 0x92, 0x92, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
}

// backgroundTile is one 8x8 tile of the background, built once per 8-line
// band rather than fetched dot by dot: a 2-bit pattern-index grid, the
// 4-entry palette resolved at build time, and the scroll offsets and
// enable flag in effect for that band.
type backgroundTile struct {
	pixels  [8][8]byte
	palette [4]byte
	scrollX byte
	scrollY byte
	enabled bool
}

// spriteRecord is one OAM entry expanded into a ready-to-composite bitmap;
// the whole list is rebuilt from primaryOAM once per frame.
type spriteRecord struct {
	pixels    [][8]byte // 8 rows for 8x8 sprites, 16 for 8x16
	x, y      int
	attribute byte
	palette   [4]byte
}

func (s *spriteRecord) priority() byte       { return s.attribute >> 5 & 1 }
func (s *spriteRecord) horizontalFlip() bool { return s.attribute>>6&1 == 1 }
func (s *spriteRecord) verticalFlip() bool   { return s.attribute>>7&1 == 1 }

// buildPatternGrid expands h*16 CHR bytes starting at tileID (tileID,
// tileID+1, ... for 8x16 sprites) into an 8-wide, 8*h-tall grid of 2-bit
// pattern indices, reading through bus so CHR-RAM and mapper bank
// switching apply normally.
func buildPatternGrid(bus *PPUBus, tileID byte, offset uint16, h int) [][8]byte {
	grid := make([][8]byte, 8*h)
	for k := 0; k < h; k++ {
		for i := 0; i < 16; i++ {
			address := offset + uint16(tileID+byte(k))*16 + uint16(i)
			data := bus.Read(address)
			for j := 0; j < 8; j++ {
				if data&(0x80>>byte(j)) != 0 {
					grid[k*8+i%8][j] += 1 << byte(i/8)
				}
			}
		}
	}
	return grid
}

// PPU renders 256x240 NTSC frames. It advances one dot per Step call (341
// dots/scanline, 262 scanlines/frame); register behavior is tracked every
// dot, but background and sprite pixel data are built in scanline-sized
// (and frame-sized) batches rather than fetched one byte per dot.
type PPU struct {
	bus *PPUBus

	picture *image.RGBA

	oamAddress byte
	primaryOAM [256]byte

	backgroundTiles []backgroundTile
	sprites         []spriteRecord

	spriteZeroHit bool

	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address (15 bits)
	x byte   // fine x scroll (3 bits)
	w bool   // shared write toggle

	buffer byte // PPUDATA read buffer

	nmiOccurred bool
	oldNMI      bool
	nmiOutput   bool

	nameTableFlag         byte
	vramIncrementFlag     byte
	spriteTableFlag       byte
	backgroundTableFlag   byte
	spriteSizeFlag        byte
	masterSlaveSelectFlag byte

	grayScale          bool
	showLeftBackground bool
	showLeftSprite     bool
	showBackground     bool
	showSprite         bool
	emphasizeRed       bool
	emphasizeGreen     bool
	emphasizeBlue      bool

	register byte // low 5 bits of the last PPUSTATUS-adjacent write, for open-bus reads

	cycle    int
	scanline int
}

func NewPPU(bus *PPUBus) *PPU {
	return &PPU{
		bus:     bus,
		picture: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (p *PPU) Reset() {
	p.cycle = 0
	p.scanline = 240
}

// Frame reports the completed picture once per frame, at the single dot
// where the scanline counter wraps back to 0.
func (p *PPU) Frame() (bool, *image.RGBA) {
	if p.cycle == 0 && p.scanline == 0 {
		return true, p.picture
	}
	return false, nil
}

// ReadRegister dispatches a CPU-visible $2000-$2007 read by its index
// within that 8-register window (0 = PPUCTRL ... 7 = PPUDATA). Write-only
// registers return the bus's open-bus byte (the low 5 bits latched from
// the last write that touched PPUSTATUS-adjacent state).
func (p *PPU) ReadRegister(index int) byte {
	switch index {
	case 2:
		return p.readPPUSTATUS()
	case 4:
		return p.readOAMDATA()
	case 7:
		return p.readPPUDATA()
	default:
		return p.register
	}
}

func (p *PPU) WriteRegister(index int, data byte) {
	p.register = data & 0x1F
	switch index {
	case 0:
		p.writePPUCTRL(data)
	case 1:
		p.writePPUMASK(data)
	case 3:
		p.writeOAMADDR(data)
	case 4:
		p.writeOAMDATA(data)
	case 5:
		p.writePPUSCROLL(data)
	case 6:
		p.writePPUADDR(data)
	case 7:
		p.writePPUDATA(data)
	}
}

// WriteOAMDMA copies the 256 bytes into OAM starting at the PPU's current
// oam_addr, wrapping at the 256-byte boundary, the way the CPU's $4014 DMA
// actually lands data (not necessarily at index 0).
func (p *PPU) WriteOAMDMA(data [256]byte) {
	addr := p.oamAddress
	for _, b := range data {
		p.primaryOAM[addr] = b
		addr++
	}
}

func (p *PPU) writePPUCTRL(data byte) {
	p.nameTableFlag = data & 3
	p.vramIncrementFlag = (data >> 2) & 1
	p.spriteTableFlag = (data >> 3) & 1
	p.backgroundTableFlag = (data >> 4) & 1
	p.spriteSizeFlag = (data >> 5) & 1
	p.masterSlaveSelectFlag = (data >> 6) & 1
	p.nmiOutput = (data>>7)&1 == 1
	p.t = (p.t & 0xF3FF) | ((uint16(data) & 0x03) << 10)
}

func (p *PPU) writePPUMASK(data byte) {
	p.grayScale = data&1 == 1
	p.showLeftBackground = (data>>1)&1 == 1
	p.showLeftSprite = (data>>2)&1 == 1
	p.showBackground = (data>>3)&1 == 1
	p.showSprite = (data>>4)&1 == 1
	p.emphasizeRed = (data>>5)&1 == 1
	p.emphasizeGreen = (data>>6)&1 == 1
	p.emphasizeBlue = (data>>7)&1 == 1
}

// renderingEnabled reports whether the mapper's scanline IRQ counter
// (MMC3) should be ticking.
func (p *PPU) renderingEnabled() bool {
	return p.showBackground || p.showSprite
}

// readPPUSTATUS does not model sprite overflow (bit 5 always reads 0);
// the source this emulator follows has no equivalent detection either.
func (p *PPU) readPPUSTATUS() byte {
	res := p.register & 0x1F
	if p.spriteZeroHit {
		res |= 1 << 6
	}
	if p.oldNMI {
		res |= 1 << 7
	}
	p.updateNMI(false)
	p.w = false
	return res
}

func (p *PPU) writeOAMADDR(data byte) { p.oamAddress = data }

func (p *PPU) readOAMDATA() byte { return p.primaryOAM[p.oamAddress] }

func (p *PPU) writeOAMDATA(data byte) {
	p.primaryOAM[p.oamAddress] = data
	p.oamAddress++
}

func (p *PPU) writePPUSCROLL(data byte) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(data) >> 3)
		p.x = data & 7
		p.w = true
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(data) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(data) & 0xF8) << 2)
		p.w = false
	}
}

func (p *PPU) writePPUADDR(data byte) {
	if !p.w {
		p.t = (p.t & 0xC0FF) | (uint16(data) << 8)
		p.w = true
	} else {
		p.t = (p.t & 0xFF00) | uint16(data)
		p.v = p.t
		p.w = false
	}
}

func (p *PPU) writePPUDATA(data byte) {
	p.bus.Write(p.v, data)
	p.advanceV()
}

func (p *PPU) readPPUDATA() byte {
	data := p.bus.Read(p.v)
	if p.v < 0x3F00 {
		buffered := p.buffer
		p.buffer = data
		data = buffered
	} else {
		// Palette reads bypass the buffer and return immediately; the
		// buffer is instead refilled from the nametable mirror that sits
		// "behind" palette RAM, per nesdev's documented buffered-read quirk.
		p.buffer = p.bus.Read(p.v - 0x1000)
	}
	p.advanceV()
	return data
}

func (p *PPU) advanceV() {
	if p.vramIncrementFlag == 0 {
		p.v++
	} else {
		p.v += 32
	}
}

func (p *PPU) updateNMI(flag bool) {
	p.nmiOccurred = flag
	p.oldNMI = p.nmiOccurred
}

// scrollSnapshot reads the currently latched scroll/nametable selection
// out of the loopy "t" register: the absolute x/y scroll position and the
// base nametable id, the values a background strip is built against.
func (p *PPU) scrollSnapshot() (scrollX, scrollY, nameTableID int) {
	coarseX := p.t & 0x001F
	coarseY := (p.t >> 5) & 0x001F
	fineY := (p.t >> 12) & 0x0007
	nameTableID = int((p.t >> 10) & 0x0003)
	scrollX = int(coarseX)*8 + int(p.x)
	scrollY = int(coarseY)*8 + int(fineY)
	return
}

// buildBackgroundStrip builds one horizontal strip of 33 background tiles
// (one extra for smooth scroll) for the 8-line band that just finished,
// appending it to backgroundTiles in top-to-bottom order. Tile
// coordinates wrap across the 2x2 logical nametable grid, and palette
// bytes are resolved once here rather than once per rendered pixel.
func (p *PPU) buildBackgroundStrip() {
	scrollX, scrollY, nameTableID := p.scrollSnapshot()
	if scrollY > 240 {
		return
	}
	tileXBase := (scrollX + (nameTableID%2)*256) / 8
	tileY := (scrollY + p.scanline + (nameTableID/2)*240) / 8
	tableIDOffset := 0
	if (tileY/30)%2 != 0 {
		tableIDOffset = 2
	}
	clampedTileY := tileY % 30
	bgTableOffset := uint16(p.backgroundTableFlag) * 0x1000

	for x := 0; x <= 32; x++ {
		tileX := x + tileXBase
		clampedTileX := tileX % 32
		tileNameTableID := (tileX/32)%2 + tableIDOffset
		ntBase := uint16(tileNameTableID) * 0x0400
		tileAddress := 0x2000 + ntBase + uint16(clampedTileY)*32 + uint16(clampedTileX)
		attributeAddress := 0x2000 + ntBase + 0x03C0 + uint16(clampedTileX/4) + uint16(clampedTileY/4)*8
		blockID := byte((clampedTileX%4)/2) + byte((clampedTileY%4)/2)*2

		tileID := p.bus.Read(tileAddress)
		attribute := p.bus.Read(attributeAddress)
		paletteID := (attribute >> (blockID * 2)) & 3

		grid := buildPatternGrid(p.bus, tileID, bgTableOffset, 1)
		var pixels [8][8]byte
		copy(pixels[:], grid)

		p.backgroundTiles = append(p.backgroundTiles, backgroundTile{
			pixels: pixels,
			palette: [4]byte{
				p.bus.Read(0x3F00 + uint16(paletteID)*4 + 0),
				p.bus.Read(0x3F00 + uint16(paletteID)*4 + 1),
				p.bus.Read(0x3F00 + uint16(paletteID)*4 + 2),
				p.bus.Read(0x3F00 + uint16(paletteID)*4 + 3),
			},
			scrollX: byte(scrollX),
			scrollY: byte(scrollY),
			enabled: p.showBackground,
		})
	}
}

// buildSprites rebuilds the whole sprite list from primaryOAM once per
// frame rather than once per scanline: entries whose y falls outside
// [8, 244) are off the visible area and dropped, and 8x16 mode splits
// the tile index into top/bottom halves sharing one pattern-table bank.
func (p *PPU) buildSprites() []spriteRecord {
	tall := p.spriteSizeFlag == 1
	h := 1
	if tall {
		h = 2
	}
	var out []spriteRecord
	for i := 0; i < 64; i++ {
		base := i * 4
		y := p.primaryOAM[base]
		if y < 8 || y >= 244 {
			continue
		}
		tileID := p.primaryOAM[base+1]
		attribute := p.primaryOAM[base+2]
		x := p.primaryOAM[base+3]

		offset := uint16(p.spriteTableFlag) * 0x1000
		if tall {
			offset = 0x1000 * uint16(tileID&1)
			tileID &^= 1
		}

		paletteID := attribute & 3
		out = append(out, spriteRecord{
			pixels:    buildPatternGrid(p.bus, tileID, offset, h),
			x:         int(x),
			y:         int(y) - 8,
			attribute: attribute,
			palette: [4]byte{
				p.bus.Read(0x3F10 + uint16(paletteID)*4 + 0),
				p.bus.Read(0x3F10 + uint16(paletteID)*4 + 1),
				p.bus.Read(0x3F10 + uint16(paletteID)*4 + 2),
				p.bus.Read(0x3F10 + uint16(paletteID)*4 + 3),
			},
		})
	}
	return out
}

// renderFrame composites the accumulated background strips and the
// current sprite list into the picture buffer. Sprite-vs-sprite ordering
// is not modeled (later OAM entries can overdraw earlier ones); only
// sprite-vs-background priority and left-column clipping are applied.
func (p *PPU) renderFrame() {
	backdrop := colors[p.bus.Read(0x3F00)]
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.picture.SetRGBA(x, y, backdrop)
		}
	}
	p.renderBackground()
	p.renderSprites()
}

func (p *PPU) renderBackground() {
	for i := range p.backgroundTiles {
		bg := &p.backgroundTiles[i]
		if !bg.enabled {
			continue
		}
		col := i % 33
		row := i / 33
		baseX := col * 8
		baseY := row * 8
		offsetX := int(bg.scrollX % 8)
		offsetY := int(bg.scrollY % 8)
		for r := 0; r < 8; r++ {
			for c := 0; c < 8; c++ {
				x := baseX + c - offsetX
				y := baseY + r - offsetY
				if x < 0 || x >= width || y < 0 || y >= height {
					continue
				}
				out := colors[bg.palette[bg.pixels[r][c]]]
				if x < 8 && !p.showLeftBackground {
					out.A = 0
				}
				p.picture.SetRGBA(x, y, out)
			}
		}
	}
}

// shouldHideSprite reports whether a low-priority sprite pixel at (x, y)
// is covered by an opaque background pixel (pattern index not a multiple
// of 4, i.e. not the tile's backdrop entry).
func (p *PPU) shouldHideSprite(x, y int) bool {
	tileX := x / 8
	tileY := y / 8
	index := tileY*33 + tileX
	if index < 0 || index >= len(p.backgroundTiles) {
		return false
	}
	bg := &p.backgroundTiles[index]
	return bg.pixels[y%8][x%8]%4 != 0
}

func (p *PPU) renderSprites() {
	if !p.showSprite {
		return
	}
	for i := range p.sprites {
		s := &p.sprites[i]
		vFlip := s.verticalFlip()
		hFlip := s.horizontalFlip()
		lowPriority := s.priority() == 1
		h := len(s.pixels)
		for row := 0; row < h; row++ {
			y := s.y + row
			if vFlip {
				y = s.y + h - 1 - row
			}
			if y < 0 || y >= height {
				continue
			}
			for col := 0; col < 8; col++ {
				x := s.x + col
				if hFlip {
					x = s.x + 7 - col
				}
				if x < 0 || x >= width {
					continue
				}
				if lowPriority && p.shouldHideSprite(x, y) {
					continue
				}
				v := s.pixels[row][col]
				if v == 0 {
					continue
				}
				out := colors[s.palette[v]]
				if x < 8 && !p.showLeftSprite {
					out.A = 0
				}
				p.picture.SetRGBA(x, y, out)
			}
		}
	}
}

// Step advances the PPU by one dot and reports whether an NMI should be
// raised this step. Register state (OAM, scroll/addr latch, palette
// mirroring) is exact every dot; background and sprite pixel data are
// built in scanline- and frame-sized batches at the points named below,
// not fetched one byte per dot.
func (p *PPU) Step(mapper Mapper) bool {
	p.cycle++
	if p.cycle == 341 {
		p.cycle = 0
		p.scanline++
		if p.scanline == 262 {
			p.scanline = 0
		}
	}

	mapper.Step(p.scanline, p.cycle, p.renderingEnabled())

	if p.cycle == 0 && p.scanline != 0 && p.scanline <= 240 && p.scanline%8 == 0 {
		p.buildBackgroundStrip()
	}

	// Sprite-0 hit: the current dot has reached OAM[3].x on the scanline
	// OAM[0].y names, with sprite rendering enabled.
	if p.showSprite && p.cycle >= int(p.primaryOAM[3]) && p.scanline == int(p.primaryOAM[0]) {
		p.spriteZeroHit = true
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.updateNMI(true)
	}
	if p.scanline == 261 && p.cycle == 1 {
		p.spriteZeroHit = false
		p.updateNMI(false)
	}
	if p.cycle == 0 && p.scanline == 0 {
		p.sprites = p.buildSprites()
		p.renderFrame()
		p.backgroundTiles = p.backgroundTiles[:0]
	}

	return p.nmiOutput && p.nmiOccurred && p.scanline == 241 && p.cycle == 1
}
