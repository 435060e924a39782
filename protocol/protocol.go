// Package protocol defines the line-oriented command grammar spoken between
// the host controller and the traffic light board. Commands are
// case-insensitive, one per line, newline-terminated.
package protocol

import "strings"

// Kind discriminates the parsed command variants.
type Kind int

const (
	// KindNone is an empty or whitespace-only line; ignored silently.
	KindNone Kind = iota
	// KindAuto enters automatic cycling mode.
	KindAuto
	// KindManual enters manual control mode.
	KindManual
	// KindEmergency enters emergency flashing mode.
	KindEmergency
	// KindSetLight forces one light to a fixed color.
	KindSetLight
	// KindOff switches to manual mode with both lights off.
	KindOff
	// KindTest runs the diagnostic routine.
	KindTest
	// KindStatus requests a status report line.
	KindStatus
	// KindUnknown is any unrecognized input; carries the raw text.
	KindUnknown
)

// Color is a forced light color for KindSetLight commands.
type Color int

const (
	ColorRed Color = iota
	ColorYellow
	ColorGreen
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "RED"
	case ColorYellow:
		return "YELLOW"
	default:
		return "GREEN"
	}
}

// Command is one parsed protocol line.
type Command struct {
	Kind  Kind
	Light int   // 1 or 2, for KindSetLight
	Color Color // for KindSetLight
	Raw   string
}

// Parse converts one input line into a Command. Empty lines yield KindNone
// and anything outside the grammar yields KindUnknown with the trimmed text
// preserved for reporting.
func Parse(line string) Command {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Command{Kind: KindNone}
	}

	switch strings.ToUpper(raw) {
	case "A":
		return Command{Kind: KindAuto, Raw: raw}
	case "M":
		return Command{Kind: KindManual, Raw: raw}
	case "E":
		return Command{Kind: KindEmergency, Raw: raw}
	case "OFF":
		return Command{Kind: KindOff, Raw: raw}
	case "T":
		return Command{Kind: KindTest, Raw: raw}
	case "STATUS":
		return Command{Kind: KindStatus, Raw: raw}
	case "R1":
		return Command{Kind: KindSetLight, Light: 1, Color: ColorRed, Raw: raw}
	case "Y1":
		return Command{Kind: KindSetLight, Light: 1, Color: ColorYellow, Raw: raw}
	case "G1":
		return Command{Kind: KindSetLight, Light: 1, Color: ColorGreen, Raw: raw}
	case "R2":
		return Command{Kind: KindSetLight, Light: 2, Color: ColorRed, Raw: raw}
	case "Y2":
		return Command{Kind: KindSetLight, Light: 2, Color: ColorYellow, Raw: raw}
	case "G2":
		return Command{Kind: KindSetLight, Light: 2, Color: ColorGreen, Raw: raw}
	}
	return Command{Kind: KindUnknown, Raw: raw}
}

// String renders the canonical wire form of the command, without the
// terminating newline.
func (c Command) String() string {
	switch c.Kind {
	case KindAuto:
		return "A"
	case KindManual:
		return "M"
	case KindEmergency:
		return "E"
	case KindOff:
		return "OFF"
	case KindTest:
		return "T"
	case KindStatus:
		return "STATUS"
	case KindSetLight:
		prefix := "R"
		switch c.Color {
		case ColorYellow:
			prefix = "Y"
		case ColorGreen:
			prefix = "G"
		}
		if c.Light == 2 {
			return prefix + "2"
		}
		return prefix + "1"
	case KindUnknown:
		return c.Raw
	}
	return ""
}
