package nes

// frame sequencer step targets, in CPU cycles.
const (
	frameStep1 = 7457
	frameStep2 = 14913
	frameStep3 = 22371
	frameStep4 = 29829
	frameStep5 = 37281

	cpuFrequencyHz = 1789773.0
	audioSampleHz  = 44100.0
)

// APU synthesizes audio from two pulse channels, a triangle channel, a
// noise channel, and a DMC sample player, mixed through the NES's
// non-linear mixer and a 3-stage output filter. Each channel is its own
// struct with a register-dispatch write method (apu_tables.go,
// envelope.go, sweep.go, pulse.go, triangle.go, noise.go, dmc.go,
// filter.go).
type APU struct {
	pulse1   *pulseChannel
	pulse2   *pulseChannel
	triangle *triangleChannel
	noise    *noiseChannel
	dmc      *dmcChannel

	cycle           uint64
	framePeriod     byte // 4 or 5
	frameValue      int
	frameIRQInhibit bool
	frameIRQPending bool

	filters   *filterChain
	sampleAcc float64
	out       chan float32
}

func NewAPU() *APU {
	return &APU{
		pulse1:      newPulseChannel(1),
		pulse2:      newPulseChannel(2),
		triangle:    &triangleChannel{},
		noise:       newNoiseChannel(),
		dmc:         newDMCChannel(),
		framePeriod: 4,
		filters:     newFilterChain(audioSampleHz),
	}
}

func (a *APU) SetAudioOut(c chan float32) { a.out = c }

// SetMemoryReader wires the DMC channel's sample fetch to CPU address
// space; Console calls this once during construction since Bus and APU
// are built together.
func (a *APU) SetMemoryReader(read func(uint16) byte) { a.dmc.read = read }

// SetStallCounter shares the driver's DMA stall counter with the DMC
// channel's sample-fetch stall.
func (a *APU) SetStallCounter(stall *int) { a.dmc.stall = stall }

func (a *APU) WriteRegister(address uint16, data byte) {
	switch address {
	case 0x4000:
		a.pulse1.writeControl(data)
	case 0x4001:
		a.pulse1.writeSweep(data)
	case 0x4002:
		a.pulse1.writeTimerLow(data)
	case 0x4003:
		a.pulse1.writeTimerHigh(data)
	case 0x4004:
		a.pulse2.writeControl(data)
	case 0x4005:
		a.pulse2.writeSweep(data)
	case 0x4006:
		a.pulse2.writeTimerLow(data)
	case 0x4007:
		a.pulse2.writeTimerHigh(data)
	case 0x4008:
		a.triangle.writeControl(data)
	case 0x400A:
		a.triangle.writeTimerLow(data)
	case 0x400B:
		a.triangle.writeTimerHigh(data)
	case 0x400C:
		a.noise.writeControl(data)
	case 0x400E:
		a.noise.writePeriod(data)
	case 0x400F:
		a.noise.writeLength(data)
	case 0x4010:
		a.dmc.writeControl(data)
	case 0x4011:
		a.dmc.writeDirectLoad(data)
	case 0x4012:
		a.dmc.writeSampleAddress(data)
	case 0x4013:
		a.dmc.writeSampleLength(data)
	case 0x4015:
		a.writeControl(data)
	case 0x4017:
		a.writeFrameCounter(data)
	}
}

func (a *APU) writeFrameCounter(data byte) {
	a.framePeriod = 4
	if data&0x80 != 0 {
		a.framePeriod = 5
	}
	a.frameIRQInhibit = data&0x40 != 0
	if a.frameIRQInhibit {
		a.frameIRQPending = false
	}
	a.frameValue = 0
	if a.framePeriod == 5 {
		a.stepEnvelopes()
		a.stepSweeps()
		a.stepLengths()
	}
}

// writeControl handles the $4015 channel-enable register.
func (a *APU) writeControl(data byte) {
	a.pulse1.enabled = data&0x01 != 0
	a.pulse2.enabled = data&0x02 != 0
	a.triangle.enabled = data&0x04 != 0
	a.noise.enabled = data&0x08 != 0
	dmcWasDisabled := !a.dmc.enabled
	a.dmc.enabled = data&0x10 != 0
	if !a.pulse1.enabled {
		a.pulse1.lengthValue = 0
	}
	if !a.pulse2.enabled {
		a.pulse2.lengthValue = 0
	}
	if !a.triangle.enabled {
		a.triangle.lengthValue = 0
	}
	if !a.noise.enabled {
		a.noise.lengthValue = 0
	}
	if !a.dmc.enabled {
		a.dmc.bytesRemaining = 0
	} else if dmcWasDisabled || a.dmc.bytesRemaining == 0 {
		a.dmc.restart()
	}
	a.dmc.irqPending = false
}

// ReadStatus handles the $4015 status read, clearing the frame IRQ flag
// as a side effect.
func (a *APU) ReadStatus() byte {
	var res byte
	if a.pulse1.lengthValue > 0 {
		res |= 1 << 0
	}
	if a.pulse2.lengthValue > 0 {
		res |= 1 << 1
	}
	if a.triangle.lengthValue > 0 {
		res |= 1 << 2
	}
	if a.noise.lengthValue > 0 {
		res |= 1 << 3
	}
	if a.dmc.bytesRemaining > 0 {
		res |= 1 << 4
	}
	if a.frameIRQPending {
		res |= 1 << 6
	}
	if a.dmc.irqPending {
		res |= 1 << 7
	}
	a.frameIRQPending = false
	return res
}

func (a *APU) FrameIRQ() bool { return a.frameIRQPending }
func (a *APU) DMCIRQ() bool   { return a.dmc.irqPending }

// IRQLine reports the APU's combined level-triggered IRQ output; the
// driver ORs this with the mapper's IRQ line before passing it to
// CPU.Step.
func (a *APU) IRQLine() bool { return a.frameIRQPending || a.dmc.irqPending }

// Step advances the APU by one CPU cycle: the triangle and DMC timers
// clock every cycle, the pulse and noise timers clock at half rate, and
// the frame sequencer (also CPU-cycle-driven) clocks envelopes, sweeps,
// and length counters at its four or five fixed points per frame.
func (a *APU) Step() {
	a.triangle.stepTimer()
	if a.cycle%2 == 0 {
		a.pulse1.stepTimer()
		a.pulse2.stepTimer()
		a.noise.stepTimer()
	}
	a.dmc.stepTimer()
	a.cycle++

	a.stepFrameSequencer()

	a.sampleAcc++
	if a.sampleAcc >= cpuFrequencyHz/audioSampleHz {
		a.sampleAcc -= cpuFrequencyHz / audioSampleHz
		a.emitSample()
	}
}

func (a *APU) stepFrameSequencer() {
	a.frameValue++
	switch a.framePeriod {
	case 4:
		switch a.frameValue {
		case frameStep1, frameStep3:
			a.stepEnvelopes()
		case frameStep2:
			a.stepEnvelopes()
			a.stepSweeps()
			a.stepLengths()
		case frameStep4:
			a.stepEnvelopes()
			a.stepSweeps()
			a.stepLengths()
			if !a.frameIRQInhibit {
				a.frameIRQPending = true
			}
			a.frameValue = 0
		}
	case 5:
		switch a.frameValue {
		case frameStep1, frameStep3:
			a.stepEnvelopes()
		case frameStep2:
			a.stepEnvelopes()
			a.stepSweeps()
			a.stepLengths()
		case frameStep5:
			a.stepEnvelopes()
			a.stepSweeps()
			a.stepLengths()
			a.frameValue = 0
		}
	}
}

func (a *APU) stepEnvelopes() {
	a.pulse1.envelope.step()
	a.pulse2.envelope.step()
	a.noise.envelope.step()
	a.triangle.stepLinear()
}

func (a *APU) stepSweeps() {
	a.pulse1.sweep.step(&a.pulse1.timerPeriod)
	a.pulse2.sweep.step(&a.pulse2.timerPeriod)
}

func (a *APU) stepLengths() {
	a.pulse1.stepLength()
	a.pulse2.stepLength()
	a.triangle.stepLength()
	a.noise.stepLength()
}

func (a *APU) emitSample() {
	if a.out == nil {
		return
	}
	p1 := a.pulse1.output()
	p2 := a.pulse2.output()
	t := a.triangle.output()
	n := a.noise.output()
	d := a.dmc.output()
	mixed := pulseTable[p1+p2] + tndTable[3*t+2*n+d]
	sample := float32(a.filters.apply(float64(mixed)))
	select {
	case a.out <- sample:
	default:
	}
}
