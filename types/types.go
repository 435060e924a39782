package types

import (
	"image"
	"io"
	"log"
)

// Log levels
const (
	LogDebug = "DEBUG"
	LogInfo  = "INFO"
	LogWarn  = "WARN"
	LogError = "ERROR"
)

type Logger struct {
	DebugLog *log.Logger
	InfoLog  *log.Logger
	WarnLog  *log.Logger
	ErrorLog *log.Logger
}

// NewLogger creates a leveled logger writing to the given destination.
func NewLogger(out io.Writer) *Logger {
	return &Logger{
		DebugLog: log.New(out, "DEBUG ", log.LstdFlags),
		InfoLog:  log.New(out, "INFO  ", log.LstdFlags),
		WarnLog:  log.New(out, "WARN  ", log.LstdFlags),
		ErrorLog: log.New(out, "ERROR ", log.LstdFlags),
	}
}

// Side identifies one half of the monitored frame, split at the horizontal
// midpoint. Light 1 faces the left approach, light 2 the right.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Light returns the traffic light number (1 or 2) serving this side.
func (s Side) Light() int {
	if s == SideLeft {
		return 1
	}
	return 2
}

// Detection is one object reported by the detector for a single frame.
type Detection struct {
	Box        image.Rectangle
	Class      string
	Confidence float64
}
