package recognizer

import "github.com/ayusman/mudra/internal/touch"

// TapConfig holds thresholds for tap recognition.
type TapConfig struct {
	Config
	// TapCount is the number of taps required (1 = single tap).
	TapCount int
	// MinTapDuration is the minimum press duration of one tap in seconds.
	MinTapDuration float64
	// MaxTapDuration is the maximum press duration of one tap in seconds.
	MaxTapDuration float64
	// MaxTapGap is the maximum pause between consecutive taps in seconds.
	MaxTapGap float64
	// MaxDrift is the maximum distance any sample may stray from the
	// first contact position, in pixels.
	MaxDrift float64
}

// DefaultTapConfig returns thresholds for a single tap.
func DefaultTapConfig() TapConfig {
	return TapConfig{
		TapCount:       1,
		MaxTapDuration: 0.5,
		MaxTapGap:      0.3,
		MaxDrift:       10,
	}
}

// Tap recognizes single and multi-tap gestures. A tap is a short
// press-and-release with negligible movement; multi-taps additionally
// bound the pause between consecutive taps.
type Tap struct {
	machine
	cfg TapConfig

	taps  int
	drift float64
}

// NewTap creates a tap recognizer with the given configuration.
func NewTap(cfg TapConfig) *Tap {
	if cfg.TapCount <= 0 {
		cfg.TapCount = 1
	}
	t := &Tap{cfg: cfg}
	t.machine.init(KindTap, cfg.Config, t)
	return t
}

// Taps returns the number of completed press-and-release cycles observed.
func (t *Tap) Taps() int { return t.taps }

// Drift returns the largest distance any sample strayed from the first
// contact position.
func (t *Tap) Drift() float64 { return t.drift }

func (t *Tap) begin(s touch.Sample) {}

func (t *Tap) update(s touch.Sample) {
	if start, ok := t.StartSample(); ok {
		if d := s.Position.Distance(start.Position); d > t.drift {
			t.drift = d
		}
	}
	if s.Phase == touch.PhaseEnd {
		t.taps++
	}
}

func (t *Tap) validate() (bool, FailureReason) {
	starts, ends := splitTaps(t.History())
	if len(ends) == 0 || len(starts) == 0 {
		return false, ReasonInsufficientSamples
	}

	if len(ends) != t.cfg.TapCount {
		return false, ReasonInvalidGesture
	}

	pairs := len(starts)
	if len(ends) < pairs {
		pairs = len(ends)
	}
	for i := 0; i < pairs; i++ {
		duration := ends[i].Timestamp - starts[i].Timestamp
		if duration < t.cfg.MinTapDuration {
			return false, ReasonInvalidGesture
		}
		if t.cfg.MaxTapDuration > 0 && duration > t.cfg.MaxTapDuration {
			return false, ReasonInvalidGesture
		}
		if i > 0 && t.cfg.MaxTapGap > 0 {
			if starts[i].Timestamp-ends[i-1].Timestamp > t.cfg.MaxTapGap {
				return false, ReasonInvalidGesture
			}
		}
	}

	if t.cfg.MaxDrift > 0 && t.drift > t.cfg.MaxDrift {
		return false, ReasonInvalidGesture
	}

	return true, ReasonNone
}

func (t *Tap) clear() {
	t.taps = 0
	t.drift = 0
}

// splitTaps partitions a history into its start and end samples in order.
func splitTaps(history []touch.Sample) (starts, ends []touch.Sample) {
	for _, s := range history {
		switch s.Phase {
		case touch.PhaseStart:
			starts = append(starts, s)
		case touch.PhaseEnd:
			ends = append(ends, s)
		}
	}
	return starts, ends
}
