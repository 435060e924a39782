// Package arduino is the host side of the command channel to the traffic
// light board. Delivery is fire-and-forget: commands are written as single
// lines and no reply is awaited or retried. The board's status lines flow
// back on the same port and are surfaced to the log only.
package arduino

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tarm/serial"

	"smart-traffic-control/protocol"
	"smart-traffic-control/types"
)

const (
	// DefaultPort is the usual board location on Linux.
	DefaultPort = "/dev/ttyUSB0"
	// DefaultBaudRate matches the board's sketch.
	DefaultBaudRate = 9600
)

// Porter is the minimal serial port surface the controller needs. The
// abstraction keeps tests off real hardware.
type Porter interface {
	io.ReadWriteCloser
}

// Open connects to the board's serial port. The caller must not proceed
// without a channel, so failures here are fatal to startup.
func Open(name string, baud int) (Porter, error) {
	c := &serial.Config{
		Name: name,
		Baud: baud,
	}
	s, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}
	return s, nil
}

// Controller emits textual commands to the board.
type Controller struct {
	port   Porter
	logger *types.Logger
}

// NewController wraps an open port.
func NewController(port Porter, logger *types.Logger) *Controller {
	return &Controller{port: port, logger: logger}
}

// send writes one newline-terminated command line. No reply is consulted.
func (c *Controller) send(cmd protocol.Command) error {
	if _, err := fmt.Fprintf(c.port, "%s\n", cmd); err != nil {
		return fmt.Errorf("failed to send command %q: %w", cmd.String(), err)
	}
	c.logger.DebugLog.Printf("sent command %s", cmd)
	return nil
}

// SetRed forces the given light (1 or 2) to red.
func (c *Controller) SetRed(light int) error {
	return c.send(protocol.Command{Kind: protocol.KindSetLight, Light: light, Color: protocol.ColorRed})
}

// SetYellow forces the given light to yellow.
func (c *Controller) SetYellow(light int) error {
	return c.send(protocol.Command{Kind: protocol.KindSetLight, Light: light, Color: protocol.ColorYellow})
}

// SetGreen forces the given light to green.
func (c *Controller) SetGreen(light int) error {
	return c.send(protocol.Command{Kind: protocol.KindSetLight, Light: light, Color: protocol.ColorGreen})
}

// SetAutoMode puts the board into automatic cycling.
func (c *Controller) SetAutoMode() error {
	return c.send(protocol.Command{Kind: protocol.KindAuto})
}

// SetManualMode puts the board under direct host control.
func (c *Controller) SetManualMode() error {
	return c.send(protocol.Command{Kind: protocol.KindManual})
}

// SetEmergencyMode puts the board into emergency flashing.
func (c *Controller) SetEmergencyMode() error {
	return c.send(protocol.Command{Kind: protocol.KindEmergency})
}

// AllOff switches to manual mode with both lights dark.
func (c *Controller) AllOff() error {
	return c.send(protocol.Command{Kind: protocol.KindOff})
}

// RunTest triggers the board's diagnostic routine.
func (c *Controller) RunTest() error {
	return c.send(protocol.Command{Kind: protocol.KindTest})
}

// RequestStatus asks the board to report its state on the status stream.
func (c *Controller) RequestStatus() error {
	return c.send(protocol.Command{Kind: protocol.KindStatus})
}

// SwitchTo grants the winning side green and the other side red, as exactly
// one command pair.
func (c *Controller) SwitchTo(winner types.Side) error {
	if err := c.SetGreen(winner.Light()); err != nil {
		return err
	}
	return c.SetRed(winner.Other().Light())
}

// MonitorResponses reads status lines from the board and logs them verbatim.
// The lines are informational only; nothing on the host parses them. Returns
// when the port closes.
func (c *Controller) MonitorResponses() {
	scanner := bufio.NewScanner(c.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.logger.InfoLog.Printf("board: %s", line)
	}
	if err := scanner.Err(); err != nil {
		c.logger.WarnLog.Printf("status stream closed: %s", err.Error())
	}
}
