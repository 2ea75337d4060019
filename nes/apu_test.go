package nes

import "testing"

// APU invariant: in 4-step mode with IRQ enabled,
// the frame IRQ flag sets exactly once per 4 steps (~4*7457 CPU cycles),
// and reading $4015 clears it.
func TestAPUFrameIRQFires(t *testing.T) {
	a := NewAPU()
	a.WriteRegister(0x4017, 0x00) // 4-step mode, IRQ enabled

	if a.FrameIRQ() {
		t.Fatalf("frame IRQ set before any steps")
	}
	for i := 0; i < 4*frameStep1+10 && !a.FrameIRQ(); i++ {
		a.Step()
	}
	if !a.FrameIRQ() {
		t.Fatalf("frame IRQ never set across 4 frame-sequencer steps")
	}
	if status := a.ReadStatus(); status&(1<<6) == 0 {
		t.Fatalf("status byte missing frame IRQ bit before the clearing read")
	}
	if a.FrameIRQ() {
		t.Fatalf("frame IRQ not cleared by reading $4015")
	}
}

func TestAPUFrameIRQInhibited(t *testing.T) {
	a := NewAPU()
	a.WriteRegister(0x4017, 0x40) // 4-step mode, IRQ disabled
	for i := 0; i < 4*frameStep1+10; i++ {
		a.Step()
	}
	if a.FrameIRQ() {
		t.Fatalf("frame IRQ set despite the inhibit bit")
	}
}

// mixer output is 0 when all channels are disabled.
func TestAPUMixerSilentWhenAllChannelsDisabled(t *testing.T) {
	a := NewAPU()
	a.WriteRegister(0x4015, 0x00) // disable every channel
	samples := make(chan float32, 1)
	a.SetAudioOut(samples)

	ratio := cpuFrequencyHz / audioSampleHz
	cyclesPerSample := int(ratio) + 1
	for i := 0; i < cyclesPerSample; i++ {
		a.Step()
	}
	select {
	case s := <-samples:
		if s != 0 {
			t.Fatalf("mixer output with all channels disabled: got=%v, want=0", s)
		}
	default:
		t.Fatalf("no sample emitted within one sample period")
	}
}

// length counter reload reads from the 32-entry length table
// by the top 5 bits of the value written.
func TestLengthCounterReload(t *testing.T) {
	a := NewAPU()
	a.WriteRegister(0x4015, 0x01) // enable pulse 1 so its length counter latches
	a.WriteRegister(0x4003, 0x08) // top 5 bits = 00001 -> lengthTable[1] = 254
	if got := a.pulse1.lengthValue; got != lengthTable[1] {
		t.Fatalf("pulse1 length counter: got=%d, want=%d", got, lengthTable[1])
	}
}
