package nes

// AddressingMode names one of the 6502's operand-addressing schemes. Kept
// as a distinct type (not an int opcode field comment) so opcode table
// entries stay self-documenting.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	AbsoluteIndirect
	IndexedIndirect
	IndirectIndexed
)

// fetch reads the byte at PC and advances PC, per the CPU's normal
// instruction-stream consumption.
func (c *CPU) fetch(bus *Bus) byte {
	v := bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16(bus *Bus) uint16 {
	lo := c.fetch(bus)
	hi := c.fetch(bus)
	return uint16(hi)<<8 | uint16(lo)
}

// resolveOperand computes the effective address for mode (if any) and
// reports whether forming it crossed a page boundary. Implied and
// Accumulator modes have no address; instructions for those modes ignore
// the returned value.
func (c *CPU) resolveOperand(bus *Bus, mode AddressingMode) (address uint16, pageCrossed bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false
	case Immediate:
		addr := c.PC
		c.PC++
		return addr, false
	case ZeroPage:
		return uint16(c.fetch(bus)), false
	case ZeroPageX:
		return uint16(c.fetch(bus) + c.X), false
	case ZeroPageY:
		return uint16(c.fetch(bus) + c.Y), false
	case Relative:
		offset := int8(c.fetch(bus))
		return uint16(int32(c.PC) + int32(offset)), false
	case Absolute:
		return c.fetch16(bus), false
	case AbsoluteX:
		base := c.fetch16(bus)
		addr := base + uint16(c.X)
		return addr, (addr & 0xFF00) != (base & 0xFF00)
	case AbsoluteY:
		base := c.fetch16(bus)
		addr := base + uint16(c.Y)
		return addr, (addr & 0xFF00) != (base & 0xFF00)
	case AbsoluteIndirect:
		ptr := c.fetch16(bus)
		lo := bus.Read(ptr)
		// The 6502's indirect-JMP bug: the high byte is fetched from the
		// same page as the low byte, wrapping instead of crossing.
		hi := bus.Read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF))
		return uint16(hi)<<8 | uint16(lo), false
	case IndexedIndirect:
		zp := c.fetch(bus) + c.X
		lo := bus.Read(uint16(zp))
		hi := bus.Read(uint16(zp + 1))
		return uint16(hi)<<8 | uint16(lo), false
	case IndirectIndexed:
		zp := c.fetch(bus)
		lo := bus.Read(uint16(zp))
		hi := bus.Read(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.Y)
		return addr, (addr & 0xFF00) != (base & 0xFF00)
	default:
		return 0, false
	}
}
