package nes

import "testing"

// with strobe high, every read reports button A's state;
// with strobe low, reads cycle through all 8 buttons in order, then
// report 0 past the 8th.
func TestControllerStrobeAndReadSequence(t *testing.T) {
	c := NewController()
	c.SetButtonMask(0x81) // A and Right pressed (bits 7 and 0)

	c.write(1) // strobe high
	if got := c.read(); got != 1 {
		t.Fatalf("strobed read (A pressed): got=%d, want=1", got)
	}
	if got := c.read(); got != 1 {
		t.Fatalf("second strobed read should still report A: got=%d, want=1", got)
	}

	c.write(0) // strobe low: now cycles A, B, Select, Start, Up, Down, Left, Right
	want := []byte{1, 0, 0, 0, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.read(); got != w {
			t.Fatalf("read #%d: got=%d, want=%d", i, got, w)
		}
	}
	if got := c.read(); got != 0 {
		t.Fatalf("read past the 8th button: got=%d, want=0", got)
	}
}
