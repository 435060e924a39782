// Package detection runs YOLO inference through the OpenCV DNN module and
// converts network output into plain detections. The decision pipeline never
// imports this package; it consumes the resulting values only.
package detection

import (
	"fmt"
	"image"
	"os"
	"strings"

	"gocv.io/x/gocv"

	"smart-traffic-control/types"
)

const (
	// inferenceSize is the square network input resolution.
	inferenceSize = 640
	// nmsThreshold suppresses overlapping boxes of the same object.
	nmsThreshold = 0.4
)

// YOLO performs object detection with a darknet-format model.
type YOLO struct {
	net           gocv.Net
	classNames    []string
	confThreshold float32
}

// NewYOLO loads the network and class names. The confidence threshold comes
// from the active detection mode.
func NewYOLO(weightsPath, configPath, namesPath string, confThreshold float64) (*YOLO, error) {
	net := gocv.ReadNet(weightsPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s and %s", weightsPath, configPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	namesBytes, err := os.ReadFile(namesPath)
	if err != nil {
		net.Close()
		return nil, fmt.Errorf("could not read class names: %w", err)
	}

	var names []string
	for _, name := range strings.Split(string(namesBytes), "\n") {
		names = append(names, strings.TrimSpace(name))
	}

	return &YOLO{
		net:           net,
		classNames:    names,
		confThreshold: float32(confThreshold),
	}, nil
}

// Detect runs one frame through the network and returns the surviving
// detections with boxes in frame coordinates.
func (y *YOLO) Detect(frame gocv.Mat) ([]types.Detection, error) {
	blob := gocv.BlobFromImage(frame, 1.0/255.0,
		image.Pt(inferenceSize, inferenceSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	y.net.SetInput(blob, "")
	output := y.net.Forward("")
	defer output.Close()

	frameWidth := float32(frame.Cols())
	frameHeight := float32(frame.Rows())

	var boxes []image.Rectangle
	var classIDs []int
	var confidences []float32

	for i := 0; i < output.Rows(); i++ {
		row := output.RowRange(i, i+1)
		data := row.Clone()
		scores := data.ColRange(5, data.Cols())
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(scores)

		if float32(maxVal) >= y.confThreshold && maxLoc.X < len(y.classNames) {
			// Output coordinates are normalized center/size.
			centerX := data.GetFloatAt(0, 0) * frameWidth
			centerY := data.GetFloatAt(0, 1) * frameHeight
			width := data.GetFloatAt(0, 2) * frameWidth
			height := data.GetFloatAt(0, 3) * frameHeight

			left := int(centerX - width/2)
			top := int(centerY - height/2)
			boxes = append(boxes, image.Rect(left, top, left+int(width), top+int(height)))
			classIDs = append(classIDs, maxLoc.X)
			confidences = append(confidences, float32(maxVal))
		}

		scores.Close()
		data.Close()
		row.Close()
	}

	if len(boxes) == 0 {
		return nil, nil
	}

	keep := gocv.NMSBoxes(boxes, confidences, y.confThreshold, nmsThreshold)

	dets := make([]types.Detection, 0, len(keep))
	for _, idx := range keep {
		dets = append(dets, types.Detection{
			Box:        boxes[idx],
			Class:      y.classNames[classIDs[idx]],
			Confidence: float64(confidences[idx]),
		})
	}
	return dets, nil
}

// Close releases the network.
func (y *YOLO) Close() error {
	return y.net.Close()
}
