// Package overlay draws the monitoring visualization onto captured frames:
// the center dividing line, per-detection boxes colored by side, raw and
// smoothed counts, and the active light banner.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"smart-traffic-control/types"
	"smart-traffic-control/vision"
)

var (
	white     = color.RGBA{255, 255, 255, 0}
	leftBlue  = color.RGBA{0, 0, 255, 0}
	rightGrn  = color.RGBA{0, 255, 0, 0}
	greenOn   = color.RGBA{0, 255, 0, 0}
	redOn     = color.RGBA{255, 0, 0, 0}
	banner    = color.RGBA{255, 255, 0, 0}
)

// Counts carries the per-side numbers shown on the frame.
type Counts struct {
	RawLeft       int
	RawRight      int
	SmoothedLeft  float64
	SmoothedRight float64
}

// Draw annotates the frame in place.
func Draw(frame *gocv.Mat, dets []types.Detection, counts Counts, active types.Side) {
	mid := frame.Cols() / 2
	gocv.Line(frame, image.Pt(mid, 0), image.Pt(mid, frame.Rows()), white, 2)

	for _, d := range dets {
		c := rightGrn
		if vision.SideOf(d, frame.Cols()) == types.SideLeft {
			c = leftBlue
		}
		gocv.Rectangle(frame, d.Box, c, 2)
		label := fmt.Sprintf("%s: %.2f", d.Class, d.Confidence)
		gocv.PutText(frame, label, image.Pt(d.Box.Min.X, d.Box.Min.Y-5),
			gocv.FontHersheySimplex, 0.5, c, 2)
	}

	leftState, rightState := "[RED]", "[GREEN]"
	leftColor, rightColor := redOn, greenOn
	if active == types.SideLeft {
		leftState, rightState = "[GREEN]", "[RED]"
		leftColor, rightColor = greenOn, redOn
	}

	gocv.PutText(frame,
		fmt.Sprintf("LEFT: %.1f (%d) %s", counts.SmoothedLeft, counts.RawLeft, leftState),
		image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, leftColor, 2)
	gocv.PutText(frame,
		fmt.Sprintf("RIGHT: %.1f (%d) %s", counts.SmoothedRight, counts.RawRight, rightState),
		image.Pt(mid+10, 30), gocv.FontHersheySimplex, 0.7, rightColor, 2)

	text := fmt.Sprintf("Light %d (%s) is GREEN", active.Light(), active)
	gocv.PutText(frame, text, image.Pt(10, frame.Rows()-20),
		gocv.FontHersheySimplex, 0.7, banner, 2)
}
