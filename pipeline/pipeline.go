// Package pipeline runs the host's frame-driven loop: acquire, detect,
// classify, smooth, decide, command. One iteration per frame, no parallel
// processing; the loop suspends only at frame acquisition and at the display
// poll at the end of each iteration.
package pipeline

import (
	"time"

	"gocv.io/x/gocv"

	"smart-traffic-control/arduino"
	"smart-traffic-control/control"
	"smart-traffic-control/overlay"
	"smart-traffic-control/types"
	"smart-traffic-control/vision"
)

// FrameSource yields preprocessed frames at its own cadence.
type FrameSource interface {
	Next(dst *gocv.Mat) error
	Width() int
}

// Detector turns one frame into detections. The pipeline treats it as an
// opaque function.
type Detector interface {
	Detect(frame gocv.Mat) ([]types.Detection, error)
}

// Options configures one pipeline run.
type Options struct {
	Mode    vision.ModeConfig
	Control control.Config
	// Display opens a window with the annotated frame and keyboard controls
	// ('q' quits, 'r' resets both lights to red).
	Display bool
	// FrameDelay is the constant pause at the end of each iteration.
	FrameDelay time.Duration
}

// Pipeline owns the host-side decision state. All of it is read-modify-
// written within a single iteration, so no locking exists anywhere here.
type Pipeline struct {
	source   FrameSource
	detector Detector
	ctrl     *arduino.Controller
	smoother *control.Smoother
	engine   *control.Engine
	opts     Options
	logger   *types.Logger
}

// New assembles a pipeline around an open command channel.
func New(source FrameSource, detector Detector, ctrl *arduino.Controller, opts Options, logger *types.Logger) *Pipeline {
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = 10 * time.Millisecond
	}
	return &Pipeline{
		source:   source,
		detector: detector,
		ctrl:     ctrl,
		smoother: control.NewSmoother(opts.Control.WindowSize),
		engine:   control.NewEngine(opts.Control),
		opts:     opts,
		logger:   logger,
	}
}

// Run processes frames until the display window is quit or the source fails.
// Dropped or failed commands are logged and not retried; the next qualifying
// evaluation re-affirms the state.
func (p *Pipeline) Run() error {
	var window *gocv.Window
	if p.opts.Display {
		window = gocv.NewWindow("Smart Traffic Control")
		defer window.Close()
	}

	frame := gocv.NewMat()
	defer frame.Close()

	for {
		if err := p.source.Next(&frame); err != nil {
			return err
		}

		dets, err := p.detector.Detect(frame)
		if err != nil {
			p.logger.ErrorLog.Printf("detection failed: %s", err.Error())
			time.Sleep(p.opts.FrameDelay)
			continue
		}

		rawLeft, rawRight := vision.CountBySide(dets, p.source.Width(), p.opts.Mode)
		p.smoother.Push(types.SideLeft, rawLeft)
		p.smoother.Push(types.SideRight, rawRight)
		left := p.smoother.Smoothed(types.SideLeft)
		right := p.smoother.Smoothed(types.SideRight)

		if d := p.engine.Evaluate(time.Now(), left, right); d != nil {
			p.logger.InfoLog.Printf("switching lights: %s side green (left=%.1f right=%.1f)",
				d.Winner, d.Left, d.Right)
			if err := p.ctrl.SwitchTo(d.Winner); err != nil {
				p.logger.ErrorLog.Printf("failed to send switch commands: %s", err.Error())
			}
		}

		if window != nil {
			overlay.Draw(&frame, dets, overlay.Counts{
				RawLeft:       rawLeft,
				RawRight:      rawRight,
				SmoothedLeft:  left,
				SmoothedRight: right,
			}, p.engine.State().ActiveSide)
			window.IMShow(frame)

			switch window.WaitKey(1) {
			case 'q':
				p.logger.InfoLog.Printf("quit requested")
				return nil
			case 'r':
				p.logger.InfoLog.Printf("reset: both lights red")
				if err := p.ctrl.SetRed(1); err != nil {
					p.logger.ErrorLog.Printf("reset failed: %s", err.Error())
				}
				if err := p.ctrl.SetRed(2); err != nil {
					p.logger.ErrorLog.Printf("reset failed: %s", err.Error())
				}
				p.engine.Reset(time.Now())
			}
		}

		time.Sleep(p.opts.FrameDelay)
	}
}
