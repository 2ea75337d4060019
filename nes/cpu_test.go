package nes

import "testing"

// LDA #$42; STA $00 at 0x8000, reset vector
// 0x8000. After two CPU steps, A=0x42 and RAM[0x0000]=0x42.
func TestCPUResetAndLoadStore(t *testing.T) {
	prg := []byte{0xA9, 0x42, 0x85, 0x00, 0x00}
	sys := newTestSystem(prg, 0x8000)

	if sys.cpu.PC != 0x8000 {
		t.Fatalf("PC after reset: got=0x%04x, want=0x8000", sys.cpu.PC)
	}
	if sys.cpu.S != 0xFD {
		t.Fatalf("S after reset: got=0x%02x, want=0xFD", sys.cpu.S)
	}

	if _, err := sys.step(); err != nil { // LDA #$42
		t.Fatalf("step 1: %v", err)
	}
	if sys.cpu.A != 0x42 {
		t.Fatalf("A after LDA: got=0x%02x, want=0x42", sys.cpu.A)
	}

	if _, err := sys.step(); err != nil { // STA $00
		t.Fatalf("step 2: %v", err)
	}
	if got := sys.bus.Read(0x0000); got != 0x42 {
		t.Fatalf("RAM[0x0000]: got=0x%02x, want=0x42", got)
	}
}

func TestStatusBit5AlwaysSet(t *testing.T) {
	prg := []byte{0xA9, 0x00, 0x38, 0x18, 0x00} // LDA #0; SEC; CLC
	sys := newTestSystem(prg, 0x8000)
	for i := 0; i < 3; i++ {
		if _, err := sys.step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if sys.cpu.P.encode()&(1<<5) == 0 {
			t.Fatalf("P bit 5 clear after step %d: 0x%02x", i, sys.cpu.P.encode())
		}
	}
}

func TestADCCarryNoOverflow(t *testing.T) {
	// LDA #$01; SEC; ADC #$03
	prg := []byte{0xA9, 0x01, 0x38, 0x69, 0x03}
	sys := newTestSystem(prg, 0x8000)
	for i := 0; i < 3; i++ {
		if _, err := sys.step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if sys.cpu.A != 0x05 {
		t.Fatalf("A: got=0x%02x, want=0x05", sys.cpu.A)
	}
	if sys.cpu.P.V || sys.cpu.P.C || sys.cpu.P.Z || sys.cpu.P.N {
		t.Fatalf("flags: V=%v C=%v Z=%v N=%v, want all false", sys.cpu.P.V, sys.cpu.P.C, sys.cpu.P.Z, sys.cpu.P.N)
	}
}

func TestADCSignedOverflow(t *testing.T) {
	// LDA #$01; CLC; ADC #$7F -> A=0x80, V set
	prg := []byte{0xA9, 0x01, 0x18, 0x69, 0x7F}
	sys := newTestSystem(prg, 0x8000)
	for i := 0; i < 3; i++ {
		if _, err := sys.step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if sys.cpu.A != 0x80 {
		t.Fatalf("A: got=0x%02x, want=0x80", sys.cpu.A)
	}
	if !sys.cpu.P.V {
		t.Fatalf("V: got=false, want=true")
	}
}

func TestSBCNoOverflow(t *testing.T) {
	// LDA #$03; SEC; SBC #$02 -> A=0x01, V clear
	prg := []byte{0xA9, 0x03, 0x38, 0xE9, 0x02}
	sys := newTestSystem(prg, 0x8000)
	for i := 0; i < 3; i++ {
		if _, err := sys.step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if sys.cpu.A != 0x01 {
		t.Fatalf("A: got=0x%02x, want=0x01", sys.cpu.A)
	}
	if sys.cpu.P.V {
		t.Fatalf("V: got=true, want=false")
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	// 0x8000: JSR $8005; 0x8003: BRK (should never execute); 0x8005: RTS
	prg := []byte{0x20, 0x05, 0x80, 0x00, 0x00, 0x60}
	sys := newTestSystem(prg, 0x8000)
	if _, err := sys.step(); err != nil { // JSR
		t.Fatalf("jsr: %v", err)
	}
	if sys.cpu.PC != 0x8005 {
		t.Fatalf("PC after JSR: got=0x%04x, want=0x8005", sys.cpu.PC)
	}
	if _, err := sys.step(); err != nil { // RTS
		t.Fatalf("rts: %v", err)
	}
	if sys.cpu.PC != 0x8003 {
		t.Fatalf("PC after RTS: got=0x%04x, want=0x8003 (instruction after JSR's operand)", sys.cpu.PC)
	}
}

func TestBRKAndRTI(t *testing.T) {
	// 0x8000: BRK; IRQ/BRK vector at 0xFFFE points to 0x9000.
	// 0x9000: RTI.
	prg := make([]byte, testPRGSize)
	prg[0] = 0x00 // BRK
	prg[0x1000] = 0x40
	prg[0x7FFA] = 0x00 // unused NMI vector
	prg[0x7FFB] = 0x90
	prg[0x7FFE] = 0x00 // IRQ/BRK vector -> 0x9000
	prg[0x7FFF] = 0x90
	sys := newTestSystem(prg, 0x8000)
	preSP := sys.cpu.S
	if _, err := sys.step(); err != nil { // BRK
		t.Fatalf("brk: %v", err)
	}
	if sys.cpu.PC != 0x9000 {
		t.Fatalf("PC after BRK: got=0x%04x, want=0x9000", sys.cpu.PC)
	}
	if !sys.cpu.P.I {
		t.Fatalf("I flag after BRK: got=false, want=true")
	}
	if sys.cpu.S != preSP-3 {
		t.Fatalf("S after BRK pushed 3 bytes: got=0x%02x, want=0x%02x", sys.cpu.S, preSP-3)
	}
	if _, err := sys.step(); err != nil { // RTI
		t.Fatalf("rti: %v", err)
	}
	if sys.cpu.PC != 0x8002 {
		t.Fatalf("PC after RTI: got=0x%04x, want=0x8002 (BRK pushed PC+1, skipping its padding byte)", sys.cpu.PC)
	}
	if sys.cpu.S != preSP {
		t.Fatalf("S after RTI: got=0x%02x, want=0x%02x", sys.cpu.S, preSP)
	}
}

func TestNMIEntryConsumesSevenCyclesAndVectors(t *testing.T) {
	prg := make([]byte, testPRGSize)
	prg[0x1000] = 0xEA // NOP at 0x9000, never reached
	prg[0x7FFA] = 0x00 // NMI vector -> 0x9000
	prg[0x7FFB] = 0x90
	sys := newTestSystem(prg, 0x8000)
	preSP := sys.cpu.S
	sys.nmiPending = true
	cycles, err := sys.step()
	if err != nil {
		t.Fatalf("nmi: %v", err)
	}
	if cycles != 7 {
		t.Fatalf("NMI cycles: got=%d, want=7", cycles)
	}
	if sys.cpu.PC != 0x9000 {
		t.Fatalf("PC after NMI: got=0x%04x, want=0x9000", sys.cpu.PC)
	}
	if !sys.cpu.P.I {
		t.Fatalf("I flag after NMI: got=false, want=true")
	}
	if sys.cpu.S != preSP-3 {
		t.Fatalf("S after NMI pushed PC+P: got=0x%02x, want=0x%02x", sys.cpu.S, preSP-3)
	}
	if sys.nmiPending {
		t.Fatalf("nmiPending latch not cleared after servicing")
	}
}

func TestBranchTakenAndPageCrossPenalties(t *testing.T) {
	// BEQ with Z set, target on the same page: base 2 + 1 taken = 3.
	prg := []byte{0xF0, 0x00} // BEQ +0 (branches to PC+2, same page)
	sys := newTestSystem(prg, 0x8000)
	sys.cpu.P.Z = true
	cycles, err := sys.step()
	if err != nil {
		t.Fatalf("beq: %v", err)
	}
	if cycles != 3 {
		t.Fatalf("same-page taken branch cycles: got=%d, want=3", cycles)
	}

	// BEQ near the end of a page so the branch target crosses into the
	// next page: base 2 + 1 taken + 1 page-cross = 4.
	prg2 := make([]byte, testPRGSize)
	// BEQ opcode at $80FD, operand at $80FE; PC after the fetch is $80FF,
	// and a +1 offset lands the branch target at $8100 - a different page.
	prg2[0x00FD] = 0xF0
	prg2[0x00FE] = 0x01
	sys2 := newTestSystem(prg2, 0x80FD)
	sys2.cpu.P.Z = true
	cycles2, err := sys2.step()
	if err != nil {
		t.Fatalf("beq cross: %v", err)
	}
	if cycles2 != 4 {
		t.Fatalf("page-crossing taken branch cycles: got=%d, want=4", cycles2)
	}
}

func TestUnknownOpcodeIsFatal(t *testing.T) {
	prg := []byte{0x02} // KIL/JAM
	sys := newTestSystem(prg, 0x8000)
	if _, err := sys.step(); err == nil {
		t.Fatalf("expected an UnknownOpcodeError, got nil")
	} else if _, ok := err.(*UnknownOpcodeError); !ok {
		t.Fatalf("expected *UnknownOpcodeError, got %T: %v", err, err)
	}
}

func TestAbsoluteIndirectJMPPageWrapBug(t *testing.T) {
	// JMP ($81FF): low byte from $81FF, high byte wraps to $8100 instead
	// of $8200, a documented 6502 hardware bug.
	prg := make([]byte, testPRGSize)
	prg[0] = 0x6C // JMP (ind)
	prg[1] = 0xFF
	prg[2] = 0x81
	prg[0x1FF] = 0x34 // low byte of target, at $81FF
	prg[0x100] = 0x12 // high byte read from $8100 (wrapped), not $8200
	sys := newTestSystem(prg, 0x8000)
	if _, err := sys.step(); err != nil {
		t.Fatalf("jmp: %v", err)
	}
	if sys.cpu.PC != 0x1234 {
		t.Fatalf("PC after indirect JMP: got=0x%04x, want=0x1234", sys.cpu.PC)
	}
}
