package raypick

import "time"

// SampleSurface is a Surface driven by per-tick pointer samples. Samples come
// from a device poller through Step, or from the Inject* queue, which takes
// priority: while injected samples are pending, live input is ignored.
type SampleSurface struct {
	*EventTarget

	synth *PointerSynth
	now   time.Duration
	last  PointerSample

	injectQueue []PointerSample
	runner      *TestRunner

	buf []*PointerEvent
}

// NewSampleSurface creates a surface whose click timing follows cfg.
func NewSampleSurface(cfg Config) *SampleSurface {
	return &SampleSurface{
		EventTarget: NewEventTarget(),
		synth:       NewPointerSynth(cfg),
	}
}

// Step advances the surface clock by dt and processes one tick. The next
// injected sample is used if any is queued, then live, then the previous
// state held without wheel movement.
func (s *SampleSurface) Step(dt time.Duration, live *PointerSample) {
	s.now += dt
	if s.runner != nil {
		s.runner.step(s)
	}
	if len(s.injectQueue) > 0 {
		sample := s.injectQueue[0]
		copy(s.injectQueue, s.injectQueue[1:])
		s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
		s.Feed(sample)
		return
	}
	if live != nil {
		s.Feed(*live)
		return
	}
	s.Feed(s.held())
}

// Feed runs sample through the synthesizer immediately and dispatches the
// resulting events.
func (s *SampleSurface) Feed(sample PointerSample) {
	s.last = sample
	s.buf = s.synth.Feed(s.now, sample, s.buf[:0])
	for i, ev := range s.buf {
		s.Dispatch(ev)
		s.buf[i] = nil
	}
}

// Injecting reports whether injected samples are still queued.
func (s *SampleSurface) Injecting() bool {
	return len(s.injectQueue) > 0
}

// SetTestRunner attaches a TestRunner. Its step runs at the start of each
// Step, before the inject queue is consumed.
func (s *SampleSurface) SetTestRunner(runner *TestRunner) {
	s.runner = runner
}

// held returns the most recent state without one-shot wheel movement.
func (s *SampleSurface) held() PointerSample {
	h := s.last
	h.WheelX, h.WheelY = 0, 0
	return h
}

// tail returns the state the queue will leave the pointer in.
func (s *SampleSurface) tail() PointerSample {
	if n := len(s.injectQueue); n > 0 {
		t := s.injectQueue[n-1]
		t.WheelX, t.WheelY = 0, 0
		return t
	}
	return s.held()
}

func (s *SampleSurface) push(sample PointerSample) {
	s.injectQueue = append(s.injectQueue, sample)
}

// InjectMove queues a move to (x, y). Buttons keep their queued state, so a
// move between InjectPress and InjectRelease is a drag.
func (s *SampleSurface) InjectMove(x, y float64) {
	t := s.tail()
	t.X, t.Y, t.Inside = x, y, true
	s.push(t)
}

// InjectPress queues a left-button press at (x, y).
func (s *SampleSurface) InjectPress(x, y float64) {
	s.injectButton(x, y, MouseButtonLeft, true)
}

// InjectRelease queues a left-button release at (x, y).
func (s *SampleSurface) InjectRelease(x, y float64) {
	s.injectButton(x, y, MouseButtonLeft, false)
}

func (s *SampleSurface) injectButton(x, y float64, b MouseButton, pressed bool) {
	t := s.tail()
	t.X, t.Y, t.Inside = x, y, true
	t.Pressed[b] = pressed
	s.push(t)
}

// InjectClick queues a left press followed by a release at the same point.
// Consumes two ticks.
func (s *SampleSurface) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectRightClick queues a right press and release, producing a
// contextmenu event. Consumes two ticks.
func (s *SampleSurface) InjectRightClick(x, y float64) {
	s.injectButton(x, y, MouseButtonRight, true)
	s.injectButton(x, y, MouseButtonRight, false)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). Minimum frames is 2.
func (s *SampleSurface) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues a scroll of (dx, dy) at (x, y).
func (s *SampleSurface) InjectWheel(x, y, dx, dy float64) {
	t := s.tail()
	t.X, t.Y, t.Inside = x, y, true
	t.WheelX, t.WheelY = dx, dy
	s.push(t)
}

// InjectLeave queues the pointer leaving the surface.
func (s *SampleSurface) InjectLeave() {
	t := s.tail()
	t.Inside = false
	s.push(t)
}
