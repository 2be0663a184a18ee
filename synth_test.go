package raypick

import (
	"testing"
	"time"
)

func eventNames(evs []*PointerEvent) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Type.String()
	}
	return out
}

func expectNames(t *testing.T, evs []*PointerEvent, want ...string) {
	t.Helper()
	got := eventNames(evs)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}

func inside(x, y float64) PointerSample {
	return PointerSample{X: x, Y: y, Inside: true}
}

func pressed(x, y float64, b MouseButton) PointerSample {
	s := inside(x, y)
	s.Pressed[b] = true
	return s
}

func TestSynthOutsideIsSilent(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	expectNames(t, p.Feed(0, PointerSample{}, nil))
}

func TestSynthMoveOnlyOnChange(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	expectNames(t, p.Feed(0, inside(10, 10), nil), "pointermove")
	expectNames(t, p.Feed(tick, inside(10, 10), nil))
	evs := p.Feed(2*tick, inside(11, 10), nil)
	expectNames(t, evs, "pointermove")
	if evs[0].OffsetX != 11 || evs[0].OffsetY != 10 {
		t.Errorf("move at (%v,%v), want (11,10)", evs[0].OffsetX, evs[0].OffsetY)
	}
}

func TestSynthLeaveAndReenter(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	p.Feed(0, inside(5, 6), nil)

	evs := p.Feed(tick, PointerSample{X: 50, Y: 50}, nil)
	expectNames(t, evs, "pointerleave")
	if evs[0].OffsetX != 5 || evs[0].OffsetY != 6 {
		t.Errorf("leave at (%v,%v), want last inside position (5,6)", evs[0].OffsetX, evs[0].OffsetY)
	}
	expectNames(t, p.Feed(2*tick, PointerSample{}, nil))

	// Re-entering at the same spot still reports a move.
	expectNames(t, p.Feed(3*tick, inside(5, 6), nil), "pointermove")
}

func TestSynthLeftClick(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	evs := p.Feed(0, pressed(20, 20, MouseButtonLeft), nil)
	expectNames(t, evs, "pointermove", "pointerdown")
	if evs[1].Button != MouseButtonLeft {
		t.Errorf("Button = %v, want left", evs[1].Button)
	}

	evs = p.Feed(tick, inside(20, 20), nil)
	expectNames(t, evs, "pointerup", "click")
	if evs[1].Detail != 1 {
		t.Errorf("Detail = %d, want 1", evs[1].Detail)
	}
}

func TestSynthRightClick(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	evs := p.Feed(0, pressed(20, 20, MouseButtonRight), nil)
	expectNames(t, evs, "pointermove", "pointerdown", "contextmenu")
	if evs[2].Button != MouseButtonRight {
		t.Errorf("contextmenu Button = %v, want right", evs[2].Button)
	}
	expectNames(t, p.Feed(tick, inside(20, 20), nil), "pointerup")
}

func TestSynthMiddleButton(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	p.Feed(0, inside(1, 1), nil)
	expectNames(t, p.Feed(tick, pressed(1, 1, MouseButtonMiddle), nil), "pointerdown")
	expectNames(t, p.Feed(2*tick, inside(1, 1), nil), "pointerup")
}

func TestSynthDoubleClick(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	p.Feed(0, pressed(20, 20, MouseButtonLeft), nil)
	p.Feed(tick, inside(20, 20), nil)
	p.Feed(2*tick, pressed(22, 21, MouseButtonLeft), nil)
	evs := p.Feed(3*tick, inside(22, 21), nil)
	expectNames(t, evs, "pointerup", "click", "dblclick")
	if evs[1].Detail != 2 || evs[2].Detail != 2 {
		t.Errorf("details = %d/%d, want 2/2", evs[1].Detail, evs[2].Detail)
	}

	// A third click keeps counting but does not fire another dblclick.
	p.Feed(4*tick, pressed(22, 21, MouseButtonLeft), nil)
	evs = p.Feed(5*tick, inside(22, 21), nil)
	expectNames(t, evs, "pointerup", "click")
	if evs[1].Detail != 3 {
		t.Errorf("Detail = %d, want 3", evs[1].Detail)
	}
}

func TestSynthDoubleClickWindow(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPointerSynth(cfg)
	p.Feed(0, pressed(20, 20, MouseButtonLeft), nil)
	p.Feed(tick, inside(20, 20), nil)

	late := tick + cfg.DoubleClickInterval + time.Millisecond
	p.Feed(late, pressed(20, 20, MouseButtonLeft), nil)
	evs := p.Feed(late+tick, inside(20, 20), nil)
	expectNames(t, evs, "pointerup", "click")
	if evs[1].Detail != 1 {
		t.Errorf("Detail = %d after a slow second click, want 1", evs[1].Detail)
	}

	// Too far away.
	far := 20 + cfg.DoubleClickTolerance + 1
	p.Feed(late+2*tick, pressed(far, 20, MouseButtonLeft), nil)
	evs = p.Feed(late+3*tick, inside(far, 20), nil)
	expectNames(t, evs, "pointerup", "click")
	if evs[1].Detail != 1 {
		t.Errorf("Detail = %d after a distant second click, want 1", evs[1].Detail)
	}
}

func TestSynthWheelAfterButtons(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	s := pressed(3, 4, MouseButtonLeft)
	s.WheelY = -2
	s.Modifiers = ModAlt
	evs := p.Feed(0, s, nil)
	expectNames(t, evs, "pointermove", "pointerdown", "wheel")
	if evs[2].WheelY != -2 {
		t.Errorf("WheelY = %v, want -2", evs[2].WheelY)
	}
	for i, e := range evs {
		if e.Modifiers != ModAlt {
			t.Errorf("events[%d].Modifiers = %v, want alt", i, e.Modifiers)
		}
	}
}

func TestSynthAppendsToDst(t *testing.T) {
	p := NewPointerSynth(DefaultConfig())
	dst := []*PointerEvent{NewPointerEvent(EventWheel, 0, 0)}
	dst = p.Feed(0, inside(1, 1), dst)
	expectNames(t, dst, "wheel", "pointermove")
}
