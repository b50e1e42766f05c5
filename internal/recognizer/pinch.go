package recognizer

import (
	"math"

	"github.com/ayusman/mudra/internal/touch"
)

// PinchConfig holds thresholds for pinch recognition.
type PinchConfig struct {
	Config
	// MinScaleChange is the minimum |scale - 1| required for a pinch.
	MinScaleChange float64
	// MinScale and MaxScale bound the accepted final scale ratio.
	MinScale float64
	MaxScale float64
}

// DefaultPinchConfig returns thresholds for a two-finger pinch.
func DefaultPinchConfig() PinchConfig {
	return PinchConfig{
		MinScaleChange: 0.1,
		MinScale:       0.5,
		MaxScale:       3.0,
	}
}

// Pinch recognizes two-point scale gestures. It pairs the two contact
// streams by their Contact ordinal, records the span between the contacts
// when both are first seen, and tracks the ratio of the current span to
// that initial span.
type Pinch struct {
	machine
	cfg PinchConfig

	contacts    map[int]touch.Point
	order       []int
	initialSpan float64
	currentSpan float64
}

// NewPinch creates a pinch recognizer with the given configuration.
func NewPinch(cfg PinchConfig) *Pinch {
	p := &Pinch{cfg: cfg, contacts: make(map[int]touch.Point)}
	p.machine.init(KindPinch, cfg.Config, p)
	return p
}

// Scale returns the ratio of the current two-point span to the initial
// span, or 1 before both contacts have been observed.
func (p *Pinch) Scale() float64 {
	if p.initialSpan <= 0 {
		return 1
	}
	return p.currentSpan / p.initialSpan
}

// Center returns the midpoint between the two contacts, or the zero point
// before both contacts have been observed.
func (p *Pinch) Center() touch.Point {
	a, b, ok := p.pair()
	if !ok {
		return touch.Point{}
	}
	return a.Midpoint(b)
}

func (p *Pinch) begin(s touch.Sample) {
	p.track(s)
}

func (p *Pinch) update(s touch.Sample) {
	p.track(s)

	a, b, ok := p.pair()
	if !ok {
		return
	}
	span := a.Distance(b)
	if p.initialSpan <= 0 {
		p.initialSpan = span
	}
	p.currentSpan = span
}

func (p *Pinch) track(s touch.Sample) {
	if _, seen := p.contacts[s.Contact]; !seen {
		p.order = append(p.order, s.Contact)
	}
	p.contacts[s.Contact] = s.Position
}

// pair returns the positions of the first two contacts observed.
func (p *Pinch) pair() (a, b touch.Point, ok bool) {
	if len(p.order) < 2 {
		return touch.Point{}, touch.Point{}, false
	}
	return p.contacts[p.order[0]], p.contacts[p.order[1]], true
}

func (p *Pinch) validate() (bool, FailureReason) {
	if p.initialSpan <= 0 {
		return false, ReasonInsufficientSamples
	}
	scale := p.Scale()
	if math.Abs(scale-1) < p.cfg.MinScaleChange {
		return false, ReasonInvalidGesture
	}
	if scale < p.cfg.MinScale || scale > p.cfg.MaxScale {
		return false, ReasonInvalidGesture
	}
	return true, ReasonNone
}

func (p *Pinch) clear() {
	p.contacts = make(map[int]touch.Point)
	p.order = p.order[:0]
	p.initialSpan = 0
	p.currentSpan = 0
}
