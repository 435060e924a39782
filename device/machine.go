// Package device implements the traffic light board's mode and state
// machine: three mutually exclusive operating modes, two per-light color
// states, autonomous timed transitions in automatic mode, and a blocking
// diagnostic routine. The machine is the sole owner of the light outputs;
// nothing else mutates them.
package device

import (
	"fmt"
	"io"

	"smart-traffic-control/protocol"
)

// Color is the physical state of one light head.
type Color int

const (
	ColorOff Color = iota
	ColorRed
	ColorYellow
	ColorGreen
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "RED"
	case ColorYellow:
		return "YELLOW"
	case ColorGreen:
		return "GREEN"
	default:
		return "OFF"
	}
}

// Mode is the board's top-level operating regime.
type Mode int

const (
	ModeManual Mode = iota
	ModeAuto
	ModeEmergency
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "AUTO"
	case ModeEmergency:
		return "EMERGENCY"
	default:
		return "MANUAL"
	}
}

// Cycle and routine timing, in milliseconds.
const (
	RedDurationMs    = 5000
	GreenDurationMs  = 5000
	YellowDurationMs = 2000
	BlinkIntervalMs  = 500
	testStepMs       = 300
	testBlinkCount   = 3
)

// Machine holds the board state. It is single-threaded: commands and timing
// checks are applied from one loop, never concurrently.
type Machine struct {
	clock Clock
	out   io.Writer

	mode   Mode
	lights [2]Color

	// Automatic cycle timer for light 1; light 2 is derived, never
	// independently timed.
	cycleStart uint32
	cycleDur   uint32

	// Emergency flash timer.
	blinkLast uint32
	blinkOn   bool
}

// New creates a Machine in its power-on state: automatic mode, light 1 red,
// light 2 green. Status lines are written to out.
func New(clock Clock, out io.Writer) *Machine {
	m := &Machine{clock: clock, out: out}
	m.enterAuto()
	return m
}

// Mode returns the active operating mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Light returns the color of light 1 or 2.
func (m *Machine) Light(n int) Color {
	return m.lights[n-1]
}

func (m *Machine) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format+"\n", args...)
}

func (m *Machine) enterAuto() {
	m.mode = ModeAuto
	m.lights[0] = ColorRed
	m.lights[1] = ColorGreen
	m.cycleStart = m.clock.Millis()
	m.cycleDur = RedDurationMs
}

func (m *Machine) enterEmergency() {
	m.mode = ModeEmergency
	m.lights[0] = ColorOff
	m.lights[1] = ColorOff
	m.blinkLast = m.clock.Millis()
	m.blinkOn = false
}

// HandleLine parses and applies one received line.
func (m *Machine) HandleLine(line string) {
	m.Apply(protocol.Parse(line))
}

// Apply executes one command. Bad input never halts the machine: unknown
// commands are reported and leave the state untouched.
func (m *Machine) Apply(cmd protocol.Command) {
	switch cmd.Kind {
	case protocol.KindNone:
		// Empty line, ignored.
	case protocol.KindAuto:
		m.enterAuto()
		m.printf("MODE AUTO")
	case protocol.KindManual:
		m.mode = ModeManual
		m.printf("MODE MANUAL")
	case protocol.KindEmergency:
		m.enterEmergency()
		m.printf("MODE EMERGENCY")
	case protocol.KindOff:
		m.mode = ModeManual
		m.lights[0] = ColorOff
		m.lights[1] = ColorOff
		m.printf("LIGHTS OFF")
	case protocol.KindSetLight:
		// Direct control implies manual mode; the other light is untouched.
		m.mode = ModeManual
		m.lights[cmd.Light-1] = colorOf(cmd.Color)
		m.printf("LIGHT%d %s", cmd.Light, m.lights[cmd.Light-1])
	case protocol.KindTest:
		m.runDiagnostic()
	case protocol.KindStatus:
		m.printStatus()
	case protocol.KindUnknown:
		m.printf("UNKNOWN COMMAND: %s", cmd.Raw)
	}
}

func colorOf(c protocol.Color) Color {
	switch c {
	case protocol.ColorRed:
		return ColorRed
	case protocol.ColorYellow:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// Tick performs the non-blocking timing checks. In automatic mode it advances
// the cycle when the current state's duration has elapsed; in emergency mode
// it toggles the red flash. Both comparisons use unsigned subtraction so they
// survive the millis wraparound.
func (m *Machine) Tick() {
	now := m.clock.Millis()
	switch m.mode {
	case ModeAuto:
		if now-m.cycleStart >= m.cycleDur {
			m.advanceCycle(now)
		}
	case ModeEmergency:
		if now-m.blinkLast >= BlinkIntervalMs {
			m.blinkLast = now
			m.blinkOn = !m.blinkOn
			c := ColorOff
			if m.blinkOn {
				c = ColorRed
			}
			m.lights[0] = c
			m.lights[1] = c
		}
	}
}

// advanceCycle moves light 1 through RED -> GREEN -> YELLOW -> RED and keeps
// light 2 in opposite phase: green through light 1's red and yellow clearance
// interval, red while light 1 is green. The two are never green together.
func (m *Machine) advanceCycle(now uint32) {
	switch m.lights[0] {
	case ColorRed:
		m.lights[0] = ColorGreen
		m.cycleDur = GreenDurationMs
	case ColorGreen:
		m.lights[0] = ColorYellow
		m.cycleDur = YellowDurationMs
	default:
		m.lights[0] = ColorRed
		m.cycleDur = RedDurationMs
	}
	if m.lights[0] == ColorGreen {
		m.lights[1] = ColorRed
	} else {
		m.lights[1] = ColorGreen
	}
	m.cycleStart = now
}

func (m *Machine) printStatus() {
	if m.mode == ModeAuto {
		remaining := m.cycleDur - (m.clock.Millis() - m.cycleStart)
		if remaining > m.cycleDur {
			remaining = 0
		}
		m.printf("STATUS MODE=%s L1=%s L2=%s REMAINING=%dms",
			m.mode, m.lights[0], m.lights[1], remaining)
		return
	}
	m.printf("STATUS MODE=%s L1=%s L2=%s", m.mode, m.lights[0], m.lights[1])
}

// runDiagnostic steps through every color on each light, all-off, and three
// synchronized full-bright/all-off blinks, then restores the saved mode and
// light states. The routine blocks the machine for its fixed duration;
// commands arriving meanwhile are dropped by the loop. An automatic cycle
// restarts its timer from completion, so the restored state gets a fresh full
// duration.
func (m *Machine) runDiagnostic() {
	savedMode := m.mode
	savedLights := m.lights
	savedDur := m.cycleDur

	m.printf("TEST START")
	for light := 1; light <= 2; light++ {
		for _, c := range []Color{ColorRed, ColorYellow, ColorGreen} {
			m.lights[light-1] = c
			m.lights[2-light] = ColorOff
			m.printf("TEST LIGHT%d %s", light, c)
			m.clock.SleepMillis(testStepMs)
		}
	}
	m.lights[0] = ColorOff
	m.lights[1] = ColorOff
	m.printf("TEST ALL OFF")
	m.clock.SleepMillis(testStepMs)
	for i := 0; i < testBlinkCount; i++ {
		m.printf("TEST BLINK ON")
		m.clock.SleepMillis(testStepMs)
		m.printf("TEST BLINK OFF")
		m.clock.SleepMillis(testStepMs)
	}

	m.mode = savedMode
	m.lights = savedLights
	now := m.clock.Millis()
	switch m.mode {
	case ModeAuto:
		m.cycleStart = now
		m.cycleDur = savedDur
	case ModeEmergency:
		m.blinkLast = now
	}
	m.printf("TEST DONE")
}
