// Command lightsim runs the traffic light board's state machine on the host,
// bound to a serial port or to stdio. It speaks the same line protocol as the
// real board, which makes it a drop-in stand-in for development without
// hardware.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/tarm/serial"

	"smart-traffic-control/device"
)

func main() {
	var (
		portName = flag.String("port", "", "serial port to serve the protocol on")
		baud     = flag.Int("baud", 9600, "serial baud rate")
		stdio    = flag.Bool("stdio", false, "read commands from stdin and write status to stdout")
	)
	flag.Parse()

	var in io.Reader
	var out io.Writer
	switch {
	case *stdio:
		in, out = os.Stdin, os.Stdout
	case *portName != "":
		s, err := serial.OpenPort(&serial.Config{Name: *portName, Baud: *baud})
		if err != nil {
			log.Fatalf("failed to open serial port %s: %v", *portName, err)
		}
		defer s.Close()
		in, out = s, s
	default:
		log.Fatal("either -port or -stdio is required")
	}

	m := device.New(device.NewWallClock(), out)
	if err := device.Run(context.Background(), m, in); err != nil && err != context.Canceled {
		log.Fatalf("device loop failed: %v", err)
	}
}
