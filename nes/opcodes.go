package nes

// opcodeTable is the full 256-entry 6502 decode table, including the
// undocumented combinations real hardware executes deterministically.
// cycles is the base cycle count for the addressing mode/instruction
// pair; pageCrossPenalty marks entries where crossing a page boundary
// while forming the effective address costs one extra cycle (read-only
// instructions in indexed modes; never stores or read-modify-write ops,
// which already use the worst-case fixed cycle count).
//
// A handful of the most unstable undocumented opcodes (0x8B, 0x93, 0x9B,
// 0x9C, 0x9E, 0x9F, 0xBB) have no reliable documented behavior even
// among real hardware revisions; they're mapped to their addressing mode's
// NOP so PC/cycle accounting stays correct without guessing at side effects
// no commercial ROM depends on. 0xAB is executed as an immediate-mode LAX.
type opcodeEntry struct {
	mnemonic         string
	mode             AddressingMode
	cycles           int
	pageCrossPenalty bool
	execute          func(c *CPU, bus *Bus, mode AddressingMode, address uint16)
}

var opcodeTable = [256]opcodeEntry{
	0x00: {"BRK", Implied, 7, false, opBRK},
	0x01: {"ORA", IndexedIndirect, 6, false, opORA},
	0x02: {"KIL", Implied, 0, false, opKIL},
	0x03: {"SLO", IndexedIndirect, 8, false, opSLO},
	0x04: {"NOP", ZeroPage, 3, false, opNOP},
	0x05: {"ORA", ZeroPage, 3, false, opORA},
	0x06: {"ASL", ZeroPage, 5, false, opASL},
	0x07: {"SLO", ZeroPage, 5, false, opSLO},
	0x08: {"PHP", Implied, 3, false, opPHP},
	0x09: {"ORA", Immediate, 2, false, opORA},
	0x0A: {"ASL", Accumulator, 2, false, opASL},
	0x0B: {"ANC", Immediate, 2, false, opANC},
	0x0C: {"NOP", Absolute, 4, false, opNOP},
	0x0D: {"ORA", Absolute, 4, false, opORA},
	0x0E: {"ASL", Absolute, 6, false, opASL},
	0x0F: {"SLO", Absolute, 6, false, opSLO},

	0x10: {"BPL", Relative, 2, false, opBPL},
	0x11: {"ORA", IndirectIndexed, 5, true, opORA},
	0x12: {"KIL", Implied, 0, false, opKIL},
	0x13: {"SLO", IndirectIndexed, 8, false, opSLO},
	0x14: {"NOP", ZeroPageX, 4, false, opNOP},
	0x15: {"ORA", ZeroPageX, 4, false, opORA},
	0x16: {"ASL", ZeroPageX, 6, false, opASL},
	0x17: {"SLO", ZeroPageX, 6, false, opSLO},
	0x18: {"CLC", Implied, 2, false, opCLC},
	0x19: {"ORA", AbsoluteY, 4, true, opORA},
	0x1A: {"NOP", Implied, 2, false, opNOP},
	0x1B: {"SLO", AbsoluteY, 7, false, opSLO},
	0x1C: {"NOP", AbsoluteX, 4, true, opNOP},
	0x1D: {"ORA", AbsoluteX, 4, true, opORA},
	0x1E: {"ASL", AbsoluteX, 7, false, opASL},
	0x1F: {"SLO", AbsoluteX, 7, false, opSLO},

	0x20: {"JSR", Absolute, 6, false, opJSR},
	0x21: {"AND", IndexedIndirect, 6, false, opAND},
	0x22: {"KIL", Implied, 0, false, opKIL},
	0x23: {"RLA", IndexedIndirect, 8, false, opRLA},
	0x24: {"BIT", ZeroPage, 3, false, opBIT},
	0x25: {"AND", ZeroPage, 3, false, opAND},
	0x26: {"ROL", ZeroPage, 5, false, opROL},
	0x27: {"RLA", ZeroPage, 5, false, opRLA},
	0x28: {"PLP", Implied, 4, false, opPLP},
	0x29: {"AND", Immediate, 2, false, opAND},
	0x2A: {"ROL", Accumulator, 2, false, opROL},
	0x2B: {"ANC", Immediate, 2, false, opANC},
	0x2C: {"BIT", Absolute, 4, false, opBIT},
	0x2D: {"AND", Absolute, 4, false, opAND},
	0x2E: {"ROL", Absolute, 6, false, opROL},
	0x2F: {"RLA", Absolute, 6, false, opRLA},

	0x30: {"BMI", Relative, 2, false, opBMI},
	0x31: {"AND", IndirectIndexed, 5, true, opAND},
	0x32: {"KIL", Implied, 0, false, opKIL},
	0x33: {"RLA", IndirectIndexed, 8, false, opRLA},
	0x34: {"NOP", ZeroPageX, 4, false, opNOP},
	0x35: {"AND", ZeroPageX, 4, false, opAND},
	0x36: {"ROL", ZeroPageX, 6, false, opROL},
	0x37: {"RLA", ZeroPageX, 6, false, opRLA},
	0x38: {"SEC", Implied, 2, false, opSEC},
	0x39: {"AND", AbsoluteY, 4, true, opAND},
	0x3A: {"NOP", Implied, 2, false, opNOP},
	0x3B: {"RLA", AbsoluteY, 7, false, opRLA},
	0x3C: {"NOP", AbsoluteX, 4, true, opNOP},
	0x3D: {"AND", AbsoluteX, 4, true, opAND},
	0x3E: {"ROL", AbsoluteX, 7, false, opROL},
	0x3F: {"RLA", AbsoluteX, 7, false, opRLA},

	0x40: {"RTI", Implied, 6, false, opRTI},
	0x41: {"EOR", IndexedIndirect, 6, false, opEOR},
	0x42: {"KIL", Implied, 0, false, opKIL},
	0x43: {"SRE", IndexedIndirect, 8, false, opSRE},
	0x44: {"NOP", ZeroPage, 3, false, opNOP},
	0x45: {"EOR", ZeroPage, 3, false, opEOR},
	0x46: {"LSR", ZeroPage, 5, false, opLSR},
	0x47: {"SRE", ZeroPage, 5, false, opSRE},
	0x48: {"PHA", Implied, 3, false, opPHA},
	0x49: {"EOR", Immediate, 2, false, opEOR},
	0x4A: {"LSR", Accumulator, 2, false, opLSR},
	0x4B: {"ALR", Immediate, 2, false, opALR},
	0x4C: {"JMP", Absolute, 3, false, opJMP},
	0x4D: {"EOR", Absolute, 4, false, opEOR},
	0x4E: {"LSR", Absolute, 6, false, opLSR},
	0x4F: {"SRE", Absolute, 6, false, opSRE},

	0x50: {"BVC", Relative, 2, false, opBVC},
	0x51: {"EOR", IndirectIndexed, 5, true, opEOR},
	0x52: {"KIL", Implied, 0, false, opKIL},
	0x53: {"SRE", IndirectIndexed, 8, false, opSRE},
	0x54: {"NOP", ZeroPageX, 4, false, opNOP},
	0x55: {"EOR", ZeroPageX, 4, false, opEOR},
	0x56: {"LSR", ZeroPageX, 6, false, opLSR},
	0x57: {"SRE", ZeroPageX, 6, false, opSRE},
	0x58: {"CLI", Implied, 2, false, opCLI},
	0x59: {"EOR", AbsoluteY, 4, true, opEOR},
	0x5A: {"NOP", Implied, 2, false, opNOP},
	0x5B: {"SRE", AbsoluteY, 7, false, opSRE},
	0x5C: {"NOP", AbsoluteX, 4, true, opNOP},
	0x5D: {"EOR", AbsoluteX, 4, true, opEOR},
	0x5E: {"LSR", AbsoluteX, 7, false, opLSR},
	0x5F: {"SRE", AbsoluteX, 7, false, opSRE},

	0x60: {"RTS", Implied, 6, false, opRTS},
	0x61: {"ADC", IndexedIndirect, 6, false, opADC},
	0x62: {"KIL", Implied, 0, false, opKIL},
	0x63: {"RRA", IndexedIndirect, 8, false, opRRA},
	0x64: {"NOP", ZeroPage, 3, false, opNOP},
	0x65: {"ADC", ZeroPage, 3, false, opADC},
	0x66: {"ROR", ZeroPage, 5, false, opROR},
	0x67: {"RRA", ZeroPage, 5, false, opRRA},
	0x68: {"PLA", Implied, 4, false, opPLA},
	0x69: {"ADC", Immediate, 2, false, opADC},
	0x6A: {"ROR", Accumulator, 2, false, opROR},
	0x6B: {"ARR", Immediate, 2, false, opARR},
	0x6C: {"JMP", AbsoluteIndirect, 5, false, opJMP},
	0x6D: {"ADC", Absolute, 4, false, opADC},
	0x6E: {"ROR", Absolute, 6, false, opROR},
	0x6F: {"RRA", Absolute, 6, false, opRRA},

	0x70: {"BVS", Relative, 2, false, opBVS},
	0x71: {"ADC", IndirectIndexed, 5, true, opADC},
	0x72: {"KIL", Implied, 0, false, opKIL},
	0x73: {"RRA", IndirectIndexed, 8, false, opRRA},
	0x74: {"NOP", ZeroPageX, 4, false, opNOP},
	0x75: {"ADC", ZeroPageX, 4, false, opADC},
	0x76: {"ROR", ZeroPageX, 6, false, opROR},
	0x77: {"RRA", ZeroPageX, 6, false, opRRA},
	0x78: {"SEI", Implied, 2, false, opSEI},
	0x79: {"ADC", AbsoluteY, 4, true, opADC},
	0x7A: {"NOP", Implied, 2, false, opNOP},
	0x7B: {"RRA", AbsoluteY, 7, false, opRRA},
	0x7C: {"NOP", AbsoluteX, 4, true, opNOP},
	0x7D: {"ADC", AbsoluteX, 4, true, opADC},
	0x7E: {"ROR", AbsoluteX, 7, false, opROR},
	0x7F: {"RRA", AbsoluteX, 7, false, opRRA},

	0x80: {"NOP", Immediate, 2, false, opNOP},
	0x81: {"STA", IndexedIndirect, 6, false, opSTA},
	0x82: {"NOP", Immediate, 2, false, opNOP},
	0x83: {"SAX", IndexedIndirect, 6, false, opSAX},
	0x84: {"STY", ZeroPage, 3, false, opSTY},
	0x85: {"STA", ZeroPage, 3, false, opSTA},
	0x86: {"STX", ZeroPage, 3, false, opSTX},
	0x87: {"SAX", ZeroPage, 3, false, opSAX},
	0x88: {"DEY", Implied, 2, false, opDEY},
	0x89: {"NOP", Immediate, 2, false, opNOP},
	0x8A: {"TXA", Implied, 2, false, opTXA},
	0x8B: {"NOP", Immediate, 2, false, opNOP},
	0x8C: {"STY", Absolute, 4, false, opSTY},
	0x8D: {"STA", Absolute, 4, false, opSTA},
	0x8E: {"STX", Absolute, 4, false, opSTX},
	0x8F: {"SAX", Absolute, 4, false, opSAX},

	0x90: {"BCC", Relative, 2, false, opBCC},
	0x91: {"STA", IndirectIndexed, 6, false, opSTA},
	0x92: {"KIL", Implied, 0, false, opKIL},
	0x93: {"NOP", IndirectIndexed, 6, false, opNOP},
	0x94: {"STY", ZeroPageX, 4, false, opSTY},
	0x95: {"STA", ZeroPageX, 4, false, opSTA},
	0x96: {"STX", ZeroPageY, 4, false, opSTX},
	0x97: {"SAX", ZeroPageY, 4, false, opSAX},
	0x98: {"TYA", Implied, 2, false, opTYA},
	0x99: {"STA", AbsoluteY, 5, false, opSTA},
	0x9A: {"TXS", Implied, 2, false, opTXS},
	0x9B: {"NOP", AbsoluteY, 5, false, opNOP},
	0x9C: {"NOP", AbsoluteX, 5, false, opNOP},
	0x9D: {"STA", AbsoluteX, 5, false, opSTA},
	0x9E: {"NOP", AbsoluteY, 5, false, opNOP},
	0x9F: {"NOP", AbsoluteY, 5, false, opNOP},

	0xA0: {"LDY", Immediate, 2, false, opLDY},
	0xA1: {"LDA", IndexedIndirect, 6, false, opLDA},
	0xA2: {"LDX", Immediate, 2, false, opLDX},
	0xA3: {"LAX", IndexedIndirect, 6, false, opLAX},
	0xA4: {"LDY", ZeroPage, 3, false, opLDY},
	0xA5: {"LDA", ZeroPage, 3, false, opLDA},
	0xA6: {"LDX", ZeroPage, 3, false, opLDX},
	0xA7: {"LAX", ZeroPage, 3, false, opLAX},
	0xA8: {"TAY", Implied, 2, false, opTAY},
	0xA9: {"LDA", Immediate, 2, false, opLDA},
	0xAA: {"TAX", Implied, 2, false, opTAX},
	0xAB: {"LAX", Immediate, 2, false, opLAX},
	0xAC: {"LDY", Absolute, 4, false, opLDY},
	0xAD: {"LDA", Absolute, 4, false, opLDA},
	0xAE: {"LDX", Absolute, 4, false, opLDX},
	0xAF: {"LAX", Absolute, 4, false, opLAX},

	0xB0: {"BCS", Relative, 2, false, opBCS},
	0xB1: {"LDA", IndirectIndexed, 5, true, opLDA},
	0xB2: {"KIL", Implied, 0, false, opKIL},
	0xB3: {"LAX", IndirectIndexed, 5, true, opLAX},
	0xB4: {"LDY", ZeroPageX, 4, false, opLDY},
	0xB5: {"LDA", ZeroPageX, 4, false, opLDA},
	0xB6: {"LDX", ZeroPageY, 4, false, opLDX},
	0xB7: {"LAX", ZeroPageY, 4, false, opLAX},
	0xB8: {"CLV", Implied, 2, false, opCLV},
	0xB9: {"LDA", AbsoluteY, 4, true, opLDA},
	0xBA: {"TSX", Implied, 2, false, opTSX},
	0xBB: {"NOP", AbsoluteY, 4, true, opNOP},
	0xBC: {"LDY", AbsoluteX, 4, true, opLDY},
	0xBD: {"LDA", AbsoluteX, 4, true, opLDA},
	0xBE: {"LDX", AbsoluteY, 4, true, opLDX},
	0xBF: {"LAX", AbsoluteY, 4, true, opLAX},

	0xC0: {"CPY", Immediate, 2, false, opCPY},
	0xC1: {"CMP", IndexedIndirect, 6, false, opCMP},
	0xC2: {"NOP", Immediate, 2, false, opNOP},
	0xC3: {"DCP", IndexedIndirect, 8, false, opDCP},
	0xC4: {"CPY", ZeroPage, 3, false, opCPY},
	0xC5: {"CMP", ZeroPage, 3, false, opCMP},
	0xC6: {"DEC", ZeroPage, 5, false, opDEC},
	0xC7: {"DCP", ZeroPage, 5, false, opDCP},
	0xC8: {"INY", Implied, 2, false, opINY},
	0xC9: {"CMP", Immediate, 2, false, opCMP},
	0xCA: {"DEX", Implied, 2, false, opDEX},
	0xCB: {"AXS", Immediate, 2, false, opAXS},
	0xCC: {"CPY", Absolute, 4, false, opCPY},
	0xCD: {"CMP", Absolute, 4, false, opCMP},
	0xCE: {"DEC", Absolute, 6, false, opDEC},
	0xCF: {"DCP", Absolute, 6, false, opDCP},

	0xD0: {"BNE", Relative, 2, false, opBNE},
	0xD1: {"CMP", IndirectIndexed, 5, true, opCMP},
	0xD2: {"KIL", Implied, 0, false, opKIL},
	0xD3: {"DCP", IndirectIndexed, 8, false, opDCP},
	0xD4: {"NOP", ZeroPageX, 4, false, opNOP},
	0xD5: {"CMP", ZeroPageX, 4, false, opCMP},
	0xD6: {"DEC", ZeroPageX, 6, false, opDEC},
	0xD7: {"DCP", ZeroPageX, 6, false, opDCP},
	0xD8: {"CLD", Implied, 2, false, opCLD},
	0xD9: {"CMP", AbsoluteY, 4, true, opCMP},
	0xDA: {"NOP", Implied, 2, false, opNOP},
	0xDB: {"DCP", AbsoluteY, 7, false, opDCP},
	0xDC: {"NOP", AbsoluteX, 4, true, opNOP},
	0xDD: {"CMP", AbsoluteX, 4, true, opCMP},
	0xDE: {"DEC", AbsoluteX, 7, false, opDEC},
	0xDF: {"DCP", AbsoluteX, 7, false, opDCP},

	0xE0: {"CPX", Immediate, 2, false, opCPX},
	0xE1: {"SBC", IndexedIndirect, 6, false, opSBC},
	0xE2: {"NOP", Immediate, 2, false, opNOP},
	0xE3: {"ISC", IndexedIndirect, 8, false, opISC},
	0xE4: {"CPX", ZeroPage, 3, false, opCPX},
	0xE5: {"SBC", ZeroPage, 3, false, opSBC},
	0xE6: {"INC", ZeroPage, 5, false, opINC},
	0xE7: {"ISC", ZeroPage, 5, false, opISC},
	0xE8: {"INX", Implied, 2, false, opINX},
	0xE9: {"SBC", Immediate, 2, false, opSBC},
	0xEA: {"NOP", Implied, 2, false, opNOP},
	0xEB: {"SBC", Immediate, 2, false, opSBC},
	0xEC: {"CPX", Absolute, 4, false, opCPX},
	0xED: {"SBC", Absolute, 4, false, opSBC},
	0xEE: {"INC", Absolute, 6, false, opINC},
	0xEF: {"ISC", Absolute, 6, false, opISC},

	0xF0: {"BEQ", Relative, 2, false, opBEQ},
	0xF1: {"SBC", IndirectIndexed, 5, true, opSBC},
	0xF2: {"KIL", Implied, 0, false, opKIL},
	0xF3: {"ISC", IndirectIndexed, 8, false, opISC},
	0xF4: {"NOP", ZeroPageX, 4, false, opNOP},
	0xF5: {"SBC", ZeroPageX, 4, false, opSBC},
	0xF6: {"INC", ZeroPageX, 6, false, opINC},
	0xF7: {"ISC", ZeroPageX, 6, false, opISC},
	0xF8: {"SED", Implied, 2, false, opSED},
	0xF9: {"SBC", AbsoluteY, 4, true, opSBC},
	0xFA: {"NOP", Implied, 2, false, opNOP},
	0xFB: {"ISC", AbsoluteY, 7, false, opISC},
	0xFC: {"NOP", AbsoluteX, 4, true, opNOP},
	0xFD: {"SBC", AbsoluteX, 4, true, opSBC},
	0xFE: {"INC", AbsoluteX, 7, false, opINC},
	0xFF: {"ISC", AbsoluteX, 7, false, opISC},
}
