package nes

// Reference:
//   http://hp.vector.co.jp/authors/VA042397/nes/joypad.html (In Japanese)
//   https://www.nesdev.org/wiki/Controller_reading
//   https://www.nesdev.org/wiki/Controller_reading_code

type button int

// Controller bit assignments, 1 means pressed otherwise 0.
// bit    7 6      5     4  3    2    1     0
// button A B Select Start Up Down Left Right
const (
	ButtonA button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

type Controller struct {
	buttons [8]bool
	index   byte
	strobe  byte
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) Set(buttons [8]bool) {
	c.buttons = buttons
}

// SetButtonMask accepts the host's single-byte bitmask (bit 7..0 = A, B,
// Select, Start, Up, Down, Left, Right) and latches it for the next
// strobe/read sequence.
func (c *Controller) SetButtonMask(mask byte) {
	c.buttons[ButtonA] = mask&(1<<7) != 0
	c.buttons[ButtonB] = mask&(1<<6) != 0
	c.buttons[ButtonSelect] = mask&(1<<5) != 0
	c.buttons[ButtonStart] = mask&(1<<4) != 0
	c.buttons[ButtonUp] = mask&(1<<3) != 0
	c.buttons[ButtonDown] = mask&(1<<2) != 0
	c.buttons[ButtonLeft] = mask&(1<<1) != 0
	c.buttons[ButtonRight] = mask&(1<<0) != 0
}

func (c *Controller) read() byte {
	ret := byte(0)
	if c.index < 8 && c.buttons[c.index] {
		ret = 1
	}
	c.index++
	if c.strobe&1 == 1 {
		c.index = 0
	}
	return ret
}

// write writes strobe.
// https://bugzmanov.github.io/nes_ebook/chapter_7.html
// - strobe bit on - controller reports only status of the button A on every read
// - strobe bit off - controller cycles through all buttons
func (c *Controller) write(data byte) {
	c.strobe = data
	if c.strobe&1 == 1 {
		c.index = 0
	}
}
