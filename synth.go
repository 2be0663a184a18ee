package raypick

import (
	"math"
	"time"
)

const numMouseButtons = 3

// PointerSample is the pointer state observed on one tick.
type PointerSample struct {
	// X and Y are the cursor position in surface pixels.
	X, Y float64
	// Inside reports whether the cursor is over the surface.
	Inside bool
	// Pressed is indexed by MouseButton.
	Pressed [numMouseButtons]bool
	// WheelX and WheelY are the scroll amounts accumulated this tick.
	WheelX, WheelY float64
	Modifiers      KeyModifiers
}

// PointerSynth turns per-tick pointer samples into raw events, in the order
// a browser would emit them: pointerleave, pointermove, then per button
// pointerdown/contextmenu or pointerup/click/dblclick, then wheel.
// It holds no references to a surface and can be driven directly in tests.
type PointerSynth struct {
	interval  time.Duration
	tolerance float64

	inside  bool
	hasLast bool
	lastX   float64
	lastY   float64
	pressed [numMouseButtons]bool

	clickCount int
	clickAt    time.Duration
	clickX     float64
	clickY     float64
}

// NewPointerSynth creates a synthesizer using cfg's double-click interval and
// tolerance.
func NewPointerSynth(cfg Config) *PointerSynth {
	return &PointerSynth{
		interval:  cfg.DoubleClickInterval,
		tolerance: cfg.DoubleClickTolerance,
	}
}

// Feed processes the sample taken at time now and appends the resulting raw
// events to dst.
func (p *PointerSynth) Feed(now time.Duration, s PointerSample, dst []*PointerEvent) []*PointerEvent {
	if !s.Inside {
		if p.inside {
			dst = append(dst, p.event(EventPointerLeave, p.lastX, p.lastY, MouseButtonLeft, s.Modifiers))
		}
		p.inside = false
		return dst
	}

	if !p.inside || !p.hasLast || s.X != p.lastX || s.Y != p.lastY {
		dst = append(dst, p.event(EventPointerMove, s.X, s.Y, MouseButtonLeft, s.Modifiers))
	}
	p.inside = true
	p.hasLast = true
	p.lastX, p.lastY = s.X, s.Y

	for b := MouseButton(0); b < numMouseButtons; b++ {
		was, is := p.pressed[b], s.Pressed[b]
		p.pressed[b] = is
		switch {
		case is && !was:
			dst = append(dst, p.event(EventPointerDown, s.X, s.Y, b, s.Modifiers))
			if b == MouseButtonRight {
				dst = append(dst, p.event(EventContextMenu, s.X, s.Y, b, s.Modifiers))
			}
		case !is && was:
			dst = append(dst, p.event(EventPointerUp, s.X, s.Y, b, s.Modifiers))
			if b == MouseButtonLeft {
				dst = p.click(now, s, dst)
			}
		}
	}

	if s.WheelX != 0 || s.WheelY != 0 {
		ev := p.event(EventWheel, s.X, s.Y, MouseButtonLeft, s.Modifiers)
		ev.WheelX, ev.WheelY = s.WheelX, s.WheelY
		dst = append(dst, ev)
	}
	return dst
}

// click emits a click and, on the second click within the double-click
// window, a dblclick.
func (p *PointerSynth) click(now time.Duration, s PointerSample, dst []*PointerEvent) []*PointerEvent {
	if p.clickCount > 0 && now-p.clickAt <= p.interval &&
		math.Hypot(s.X-p.clickX, s.Y-p.clickY) <= p.tolerance {
		p.clickCount++
	} else {
		p.clickCount = 1
	}
	p.clickAt = now
	p.clickX, p.clickY = s.X, s.Y

	ev := p.event(EventClick, s.X, s.Y, MouseButtonLeft, s.Modifiers)
	ev.Detail = p.clickCount
	dst = append(dst, ev)
	if p.clickCount == 2 {
		dbl := p.event(EventDoubleClick, s.X, s.Y, MouseButtonLeft, s.Modifiers)
		dbl.Detail = 2
		dst = append(dst, dbl)
	}
	return dst
}

func (p *PointerSynth) event(t EventType, x, y float64, b MouseButton, mods KeyModifiers) *PointerEvent {
	ev := NewPointerEvent(t, x, y)
	ev.Button = b
	ev.Modifiers = mods
	return ev
}
