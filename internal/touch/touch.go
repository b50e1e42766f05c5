// Package touch provides the value types shared by the gesture recognition
// core: pointer samples, 2D points, and bounding boxes.
package touch

// Phase represents the lifecycle phase of a pointer sample.
type Phase int

const (
	// PhaseStart marks the first contact of a pointer.
	PhaseStart Phase = iota
	// PhaseMove marks an intermediate position update.
	PhaseMove
	// PhaseEnd marks the pointer lifting off.
	PhaseEnd
	// PhaseCancel marks an aborted contact (e.g. system interruption).
	PhaseCancel
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParsePhase maps a phase name back to its Phase value. Unknown names
// return PhaseMove and false.
func ParsePhase(name string) (Phase, bool) {
	switch name {
	case "start":
		return PhaseStart, true
	case "move":
		return PhaseMove, true
	case "end":
		return PhaseEnd, true
	case "cancel":
		return PhaseCancel, true
	default:
		return PhaseMove, false
	}
}

// PointerKind identifies the input device that produced a sample.
type PointerKind int

const (
	// PointerFinger is a finger touch.
	PointerFinger PointerKind = iota
	// PointerStylus is a passive stylus.
	PointerStylus
	// PointerPen is an active pen.
	PointerPen
)

// String returns the pointer kind name.
func (k PointerKind) String() string {
	switch k {
	case PointerFinger:
		return "finger"
	case PointerStylus:
		return "stylus"
	case PointerPen:
		return "pen"
	default:
		return "unknown"
	}
}

// Sample is one timestamped pointer observation. Samples are immutable:
// they are produced by the host input layer and never mutated afterwards.
// Timestamp is monotonic time in seconds; samples for a single contact
// must be delivered in non-decreasing timestamp order.
//
// Contact is the pointer ordinal within a multi-touch sequence. Hosts with
// a single pointer leave it zero; two-point recognizers (pinch, rotation)
// use it to pair the streams.
type Sample struct {
	Position  Point       `json:"position"`
	Timestamp float64     `json:"timestamp"`
	Phase     Phase       `json:"phase"`
	Pressure  float64     `json:"pressure"`
	Kind      PointerKind `json:"pointer_kind"`
	Contact   int         `json:"contact"`
}

// NewSample creates a Sample with default pressure (1.0) and finger kind.
func NewSample(x, y, timestamp float64, phase Phase) Sample {
	return Sample{
		Position:  Point{X: x, Y: y},
		Timestamp: timestamp,
		Phase:     phase,
		Pressure:  1.0,
		Kind:      PointerFinger,
	}
}
