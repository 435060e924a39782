package main

import (
	"flag"
	"os"
	"time"

	"smart-traffic-control/arduino"
	"smart-traffic-control/camera"
	"smart-traffic-control/control"
	"smart-traffic-control/detection"
	"smart-traffic-control/pipeline"
	"smart-traffic-control/types"
	"smart-traffic-control/vision"
)

func main() {
	var (
		portName = flag.String("port", envOr("ARDUINO_PORT", arduino.DefaultPort), "serial port of the traffic light board")
		baud     = flag.Int("baud", arduino.DefaultBaudRate, "serial baud rate")
		cameraID = flag.Int("camera", 0, "camera device index")
		weights  = flag.String("weights", "yolov4-tiny.weights", "darknet model weights")
		netCfg   = flag.String("config", "yolov4-tiny.cfg", "darknet model config")
		names    = flag.String("names", "coco.names", "class names file")
		realCars = flag.Bool("real-vehicles", false, "detect real vehicles instead of toy mode")
		headless = flag.Bool("headless", false, "run without the display window")
	)
	flag.Parse()

	logger := types.NewLogger(os.Stdout)

	mode := vision.ToyMode()
	ctrlCfg := control.ToyConfig()
	if *realCars {
		mode = vision.RealMode()
		ctrlCfg = control.RealConfig()
	}
	logger.InfoLog.Printf("detection mode: %s (confidence %.2f, threshold %.0f)",
		modeName(*realCars), mode.ConfidenceThreshold, ctrlCfg.SwitchThreshold)

	// The decision core never starts without a command channel.
	port, err := arduino.Open(*portName, *baud)
	if err != nil {
		logger.ErrorLog.Fatalf("%s", err.Error())
	}
	defer port.Close()

	ctrl := arduino.NewController(port, logger)
	go ctrl.MonitorResponses()

	cam, err := camera.Open(camera.Config{
		Index:      *cameraID,
		Width:      1280,
		Height:     720,
		FPS:        30,
		Preprocess: true,
		Brightness: 30,
		Contrast:   1.3,
	})
	if err != nil {
		logger.ErrorLog.Fatalf("%s", err.Error())
	}
	defer cam.Close()
	logger.InfoLog.Printf("camera resolution: %dx%d", cam.Width(), cam.Height())

	yolo, err := detection.NewYOLO(*weights, *netCfg, *names, mode.ConfidenceThreshold)
	if err != nil {
		logger.ErrorLog.Fatalf("%s", err.Error())
	}
	defer yolo.Close()

	// Take direct control of the lights before the first frame.
	if err := ctrl.SetManualMode(); err != nil {
		logger.ErrorLog.Fatalf("%s", err.Error())
	}
	time.Sleep(500 * time.Millisecond)

	p := pipeline.New(cam, yolo, ctrl, pipeline.Options{
		Mode:    mode,
		Control: ctrlCfg,
		Display: !*headless,
	}, logger)

	if err := p.Run(); err != nil {
		logger.ErrorLog.Printf("pipeline stopped: %s", err.Error())
	}

	// Leave the junction safe on the way out.
	logger.InfoLog.Printf("shutting down: both lights red")
	if err := ctrl.SetRed(1); err != nil {
		logger.ErrorLog.Printf("%s", err.Error())
	}
	if err := ctrl.SetRed(2); err != nil {
		logger.ErrorLog.Printf("%s", err.Error())
	}
	time.Sleep(500 * time.Millisecond)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func modeName(real bool) string {
	if real {
		return "REAL VEHICLES"
	}
	return "TOY"
}
