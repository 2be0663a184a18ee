// Package ebitensurface feeds Ebitengine mouse, touch and wheel input into a
// raypick event manager.
package ebitensurface

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/raypick"
)

// Surface polls Ebitengine input once per tick. Connect it with
// Scene.Connect or EventManager.Connect, and call Update from the game's
// Update. Injected input (see raypick.SampleSurface) takes priority over the
// real device while queued.
type Surface struct {
	*raypick.SampleSurface

	width, height int

	touchID    ebiten.TouchID
	touching   bool
	touchX     float64
	touchY     float64
	touchUntil bool // release the touch on this tick
}

// New creates a surface with the double-click timing from cfg.
func New(cfg raypick.Config) *Surface {
	return &Surface{SampleSurface: raypick.NewSampleSurface(cfg)}
}

// SetSize sets the logical screen size used to decide whether the cursor is
// inside the surface. Call it from Layout.
func (s *Surface) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Update polls the device and dispatches the resulting events.
func (s *Surface) Update() {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	dt := time.Second / time.Duration(tps)
	if s.Injecting() {
		s.Step(dt, nil)
		return
	}
	sample := s.poll()
	s.Step(dt, &sample)
}

// poll reads the current device state. The first active touch acts as the
// left mouse button.
func (s *Surface) poll() raypick.PointerSample {
	mx, my := ebiten.CursorPosition()
	sample := raypick.PointerSample{
		X:         float64(mx),
		Y:         float64(my),
		Modifiers: readModifiers(),
	}
	sample.Pressed[raypick.MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	sample.Pressed[raypick.MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	sample.Pressed[raypick.MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	sample.WheelX, sample.WheelY = ebiten.Wheel()

	if s.pollTouch() {
		sample.X, sample.Y = s.touchX, s.touchY
		sample.Pressed[raypick.MouseButtonLeft] = !s.touchUntil
	}

	sample.Inside = sample.X >= 0 && sample.Y >= 0 &&
		(s.width == 0 || sample.X < float64(s.width)) &&
		(s.height == 0 || sample.Y < float64(s.height))
	return sample
}

// pollTouch tracks a single primary touch. Reports whether it drives this
// tick's sample.
func (s *Surface) pollTouch() bool {
	if s.touchUntil {
		s.touching = false
		s.touchUntil = false
	}
	if !s.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return false
		}
		s.touchID = ids[0]
		s.touching = true
	}
	if inpututil.IsTouchJustReleased(s.touchID) {
		x, y := inpututil.TouchPositionInPreviousTick(s.touchID)
		s.touchX, s.touchY = float64(x), float64(y)
		s.touchUntil = true
		return true
	}
	x, y := ebiten.TouchPosition(s.touchID)
	s.touchX, s.touchY = float64(x), float64(y)
	return true
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() raypick.KeyModifiers {
	var mods raypick.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= raypick.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= raypick.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= raypick.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= raypick.ModMeta
	}
	return mods
}
