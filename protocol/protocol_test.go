package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{name: "auto", line: "A", want: Command{Kind: KindAuto, Raw: "A"}},
		{name: "manual", line: "M", want: Command{Kind: KindManual, Raw: "M"}},
		{name: "emergency", line: "E", want: Command{Kind: KindEmergency, Raw: "E"}},
		{name: "off", line: "OFF", want: Command{Kind: KindOff, Raw: "OFF"}},
		{name: "test", line: "T", want: Command{Kind: KindTest, Raw: "T"}},
		{name: "status", line: "STATUS", want: Command{Kind: KindStatus, Raw: "STATUS"}},
		{name: "red one", line: "R1", want: Command{Kind: KindSetLight, Light: 1, Color: ColorRed, Raw: "R1"}},
		{name: "yellow one", line: "Y1", want: Command{Kind: KindSetLight, Light: 1, Color: ColorYellow, Raw: "Y1"}},
		{name: "green one", line: "G1", want: Command{Kind: KindSetLight, Light: 1, Color: ColorGreen, Raw: "G1"}},
		{name: "red two", line: "R2", want: Command{Kind: KindSetLight, Light: 2, Color: ColorRed, Raw: "R2"}},
		{name: "yellow two", line: "Y2", want: Command{Kind: KindSetLight, Light: 2, Color: ColorYellow, Raw: "Y2"}},
		{name: "green two", line: "G2", want: Command{Kind: KindSetLight, Light: 2, Color: ColorGreen, Raw: "G2"}},
		{name: "case insensitive", line: "g2", want: Command{Kind: KindSetLight, Light: 2, Color: ColorGreen, Raw: "g2"}},
		{name: "mixed case word", line: "StAtUs", want: Command{Kind: KindStatus, Raw: "StAtUs"}},
		{name: "surrounding whitespace", line: "  off \r", want: Command{Kind: KindOff, Raw: "off"}},
		{name: "empty line ignored", line: "", want: Command{Kind: KindNone}},
		{name: "whitespace only ignored", line: "   \t", want: Command{Kind: KindNone}},
		{name: "unknown keeps raw text", line: "G3", want: Command{Kind: KindUnknown, Raw: "G3"}},
		{name: "garbage", line: "hello world", want: Command{Kind: KindUnknown, Raw: "hello world"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.line))
		})
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Kind: KindAuto}, "A"},
		{Command{Kind: KindManual}, "M"},
		{Command{Kind: KindEmergency}, "E"},
		{Command{Kind: KindOff}, "OFF"},
		{Command{Kind: KindTest}, "T"},
		{Command{Kind: KindStatus}, "STATUS"},
		{Command{Kind: KindSetLight, Light: 1, Color: ColorRed}, "R1"},
		{Command{Kind: KindSetLight, Light: 2, Color: ColorGreen}, "G2"},
		{Command{Kind: KindSetLight, Light: 2, Color: ColorYellow}, "Y2"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cmd.String())
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, wire := range []string{"A", "M", "E", "OFF", "T", "STATUS", "R1", "Y1", "G1", "R2", "Y2", "G2"} {
		assert.Equal(t, wire, Parse(wire).String())
	}
}
