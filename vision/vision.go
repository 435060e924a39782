// Package vision classifies detections into the left and right halves of the
// camera frame. It knows nothing about the detector producing them.
package vision

import "smart-traffic-control/types"

const (
	// ToyConfidenceThreshold is permissive so small toy vehicles register.
	ToyConfidenceThreshold = 0.15
	// RealConfidenceThreshold filters out weak detections of real traffic.
	RealConfidenceThreshold = 0.5
)

// vehicleClasses is the allow-list applied in real-vehicle mode (COCO names).
var vehicleClasses = map[string]bool{
	"car":        true,
	"truck":      true,
	"bus":        true,
	"motorcycle": true,
}

// ModeConfig selects the detection filtering regime.
type ModeConfig struct {
	// ConfidenceThreshold drops detections below this confidence.
	ConfidenceThreshold float64
	// VehicleClassesOnly restricts counting to the vehicle allow-list. In toy
	// mode any object counts.
	VehicleClassesOnly bool
}

// ToyMode counts any object with low confidence.
func ToyMode() ModeConfig {
	return ModeConfig{ConfidenceThreshold: ToyConfidenceThreshold}
}

// RealMode counts only vehicles with a strict confidence threshold.
func RealMode() ModeConfig {
	return ModeConfig{
		ConfidenceThreshold: RealConfidenceThreshold,
		VehicleClassesOnly:  true,
	}
}

// IsVehicleClass reports whether the class name is on the vehicle allow-list.
func IsVehicleClass(class string) bool {
	return vehicleClasses[class]
}

// SideOf assigns a detection to a side by the horizontal midpoint of its
// bounding box relative to the frame's center line.
func SideOf(d types.Detection, frameWidth int) types.Side {
	centerX := (d.Box.Min.X + d.Box.Max.X) / 2
	if centerX < frameWidth/2 {
		return types.SideLeft
	}
	return types.SideRight
}

// CountBySide filters one frame's detections by the mode config and counts
// the survivors per side. Pure function of its inputs.
func CountBySide(dets []types.Detection, frameWidth int, cfg ModeConfig) (left, right int) {
	for _, d := range dets {
		if d.Confidence < cfg.ConfidenceThreshold {
			continue
		}
		if cfg.VehicleClassesOnly && !IsVehicleClass(d.Class) {
			continue
		}
		if SideOf(d, frameWidth) == types.SideLeft {
			left++
		} else {
			right++
		}
	}
	return left, right
}
