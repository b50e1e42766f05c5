// Package recognizer provides the gesture recognizer state machine contract
// and its concrete implementations (tap, swipe, drag, pinch, rotation,
// long-press).
//
// Every recognizer is a single-owner state machine: samples are ingested in
// timestamp order, timeouts are checked cooperatively by the host loop, and
// terminal states stay in place until an explicit Reset. Recognizers hold no
// locks; callers serialize access.
package recognizer

import (
	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/touch"
)

// State represents the lifecycle state of a recognizer.
type State int

const (
	// StatePossible is the initial state before any sample arrives.
	StatePossible State = iota
	// StateBegan means the gesture's first contact was observed.
	StateBegan
	// StateChanged means the gesture is in progress and metrics are updating.
	StateChanged
	// StateRecognized is the terminal success state.
	StateRecognized
	// StateFailed is the terminal rejection state; see FailureReason.
	StateFailed
	// StateCancelled is the terminal state after a cancel sample.
	StateCancelled
)

// Terminal reports whether the state is final until an explicit reset.
func (s State) Terminal() bool {
	return s == StateRecognized || s == StateFailed || s == StateCancelled
}

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StatePossible:
		return "possible"
	case StateBegan:
		return "began"
	case StateChanged:
		return "changed"
	case StateRecognized:
		return "recognized"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FailureReason annotates a StateFailed terminal state. Reasons are reported
// through accessors, never as errors: malformed or rejected input degrades to
// a failed state instead of propagating.
type FailureReason int

const (
	// ReasonNone means the recognizer has not failed.
	ReasonNone FailureReason = iota
	// ReasonInvalidGesture means end-of-stroke validation failed.
	ReasonInvalidGesture
	// ReasonTimeout means the deadline elapsed before recognition.
	ReasonTimeout
	// ReasonInsufficientSamples means fewer samples arrived than the configured minimum.
	ReasonInsufficientSamples
	// ReasonVelocityTooLow means the stroke was too slow for the gesture.
	ReasonVelocityTooLow
	// ReasonPressureTooLow means contact pressure fell below the configured minimum.
	ReasonPressureTooLow
)

// String returns the reason name for logging.
func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInvalidGesture:
		return "invalid_gesture"
	case ReasonTimeout:
		return "timeout"
	case ReasonInsufficientSamples:
		return "insufficient_samples"
	case ReasonVelocityTooLow:
		return "velocity_too_low"
	case ReasonPressureTooLow:
		return "pressure_too_low"
	default:
		return "unknown"
	}
}

// Kind identifies the gesture class a recognizer detects.
type Kind string

const (
	// KindTap is a tap gesture.
	KindTap Kind = "tap"
	// KindSwipe is a directional swipe gesture.
	KindSwipe Kind = "swipe"
	// KindDrag is a drag (pan) gesture.
	KindDrag Kind = "drag"
	// KindPinch is a two-point pinch gesture.
	KindPinch Kind = "pinch"
	// KindRotation is a two-point rotation gesture.
	KindRotation Kind = "rotation"
	// KindLongPress is a press-and-hold gesture.
	KindLongPress Kind = "longpress"
)

// Recognizer is the contract every gesture recognizer implements.
//
// Ingest must be called with samples in non-decreasing timestamp order for a
// single contact; it returns the resulting state so callers can react without
// a back-reference. CheckTimeout models the cooperative timer: the host must
// call it periodically while a deadline is armed.
type Recognizer interface {
	ID() string
	Kind() Kind
	Priority() int
	State() State
	FailureReason() FailureReason
	Ingest(s touch.Sample) State
	CheckTimeout(now float64) State
	IsValidGesture() bool
	Reset()
	History() []touch.Sample
}

// Config holds the lifecycle thresholds shared by all recognizers.
type Config struct {
	// MaxDuration is the recognition deadline in seconds measured from the
	// start sample. Zero disables the timeout.
	MaxDuration float64
	// MaxHistory caps the retained sample history; the oldest sample is
	// dropped once the cap is exceeded.
	MaxHistory int
	// MinSamples is the minimum history length required for validation.
	MinSamples int
	// Priority orders recognizers in the engine's aggregate state.
	Priority int
}

// Default lifecycle thresholds.
const (
	DefaultMaxHistory = 256
	DefaultMinSamples = 2
)

func (c *Config) applyDefaults() {
	if c.MaxHistory <= 0 {
		c.MaxHistory = DefaultMaxHistory
	}
	if c.MinSamples <= 0 {
		c.MinSamples = DefaultMinSamples
	}
}

// gestureLogic is the hook surface a concrete recognizer supplies on top of
// the shared machine: metric recomputation and end-of-stroke validation.
type gestureLogic interface {
	// begin is called once on the transition out of StatePossible.
	begin(s touch.Sample)
	// update is called for every subsequent non-terminal sample, including
	// secondary-contact starts and the end sample before validation.
	update(s touch.Sample)
	// validate is the end-of-stroke rule. A false result carries the
	// failure reason; ReasonNone maps to ReasonInvalidGesture.
	validate() (bool, FailureReason)
	// clear resets derived metrics.
	clear()
}

// machine implements the lifecycle shared by every recognizer. Concrete
// recognizers embed it and plug in their gestureLogic.
type machine struct {
	id     string
	kind   Kind
	cfg    Config
	logic  gestureLogic
	state  State
	reason FailureReason

	history  []touch.Sample
	start    touch.Sample
	hasStart bool
	deadline float64
	armed    bool
}

func (m *machine) init(kind Kind, cfg Config, logic gestureLogic) {
	cfg.applyDefaults()
	m.id = uuid.NewString()
	m.kind = kind
	m.cfg = cfg
	m.logic = logic
	m.state = StatePossible
}

// ID returns the recognizer's unique identity.
func (m *machine) ID() string { return m.id }

// Kind returns the gesture class this recognizer detects.
func (m *machine) Kind() Kind { return m.kind }

// Priority returns the arbitration priority.
func (m *machine) Priority() int { return m.cfg.Priority }

// State returns the current lifecycle state.
func (m *machine) State() State { return m.state }

// FailureReason returns the reason for a failed terminal state, or
// ReasonNone while the recognizer has not failed.
func (m *machine) FailureReason() FailureReason { return m.reason }

// History returns the retained sample history, oldest first. The returned
// slice is owned by the recognizer and must not be mutated.
func (m *machine) History() []touch.Sample { return m.history }

// StartSample returns the sample that began the gesture and whether one
// has been observed.
func (m *machine) StartSample() (touch.Sample, bool) { return m.start, m.hasStart }

// Ingest feeds one sample through the state machine and returns the
// resulting state. Samples delivered in a terminal state are no-ops.
func (m *machine) Ingest(s touch.Sample) State {
	if m.state.Terminal() {
		return m.state
	}

	m.append(s)

	switch s.Phase {
	case touch.PhaseStart:
		if m.state == StatePossible {
			m.start = s
			m.hasStart = true
			m.state = StateBegan
			if m.cfg.MaxDuration > 0 {
				m.deadline = s.Timestamp + m.cfg.MaxDuration
				m.armed = true
			}
			m.logic.begin(s)
		} else {
			// Secondary contact joining an in-progress gesture.
			m.logic.update(s)
		}

	case touch.PhaseMove:
		if m.state == StateBegan || m.state == StateChanged {
			m.state = StateChanged
			m.logic.update(s)
		}

	case touch.PhaseEnd:
		m.logic.update(s)
		m.finish()

	case touch.PhaseCancel:
		m.state = StateCancelled
	}

	return m.state
}

// finish runs end-of-stroke validation and settles the terminal state.
func (m *machine) finish() {
	if len(m.history) < m.cfg.MinSamples {
		m.fail(ReasonInsufficientSamples)
		return
	}

	ok, reason := m.logic.validate()
	if ok {
		m.state = StateRecognized
		m.armed = false
		return
	}
	if reason == ReasonNone {
		reason = ReasonInvalidGesture
	}
	m.fail(reason)
}

func (m *machine) fail(reason FailureReason) {
	m.state = StateFailed
	m.reason = reason
	m.armed = false
}

// CheckTimeout fails the recognizer if the armed deadline has elapsed.
// It returns the current state either way.
func (m *machine) CheckTimeout(now float64) State {
	if m.armed && !m.state.Terminal() && now >= m.deadline {
		m.fail(ReasonTimeout)
	}
	return m.state
}

// IsValidGesture runs the validation rule without mutating state. It
// returns false while the history is shorter than the configured minimum.
func (m *machine) IsValidGesture() bool {
	if len(m.history) < m.cfg.MinSamples {
		return false
	}
	ok, _ := m.logic.validate()
	return ok
}

// Reset clears history, metrics, and the deadline, returning the
// recognizer to StatePossible. Callable from any state.
func (m *machine) Reset() {
	m.history = m.history[:0]
	m.state = StatePossible
	m.reason = ReasonNone
	m.hasStart = false
	m.start = touch.Sample{}
	m.armed = false
	m.deadline = 0
	m.logic.clear()
}

func (m *machine) append(s touch.Sample) {
	if len(m.history) >= m.cfg.MaxHistory {
		copy(m.history, m.history[1:])
		m.history = m.history[:len(m.history)-1]
	}
	m.history = append(m.history, s)
}
