package raypick

import "math"

// PointerData holds the data fields of a raw surface event. Synthesized
// events carry a copy of it.
type PointerData struct {
	Type EventType
	// OffsetX and OffsetY are the pointer position in surface pixels,
	// origin top-left.
	OffsetX, OffsetY float64
	Button           MouseButton
	PointerID        int
	Modifiers        KeyModifiers
	// WheelX and WheelY are the scroll amounts of a wheel event.
	WheelX, WheelY float64
	// Detail is the click count for click-family events.
	Detail int
}

// PointerEvent is a raw event as delivered by an input surface.
type PointerEvent struct {
	PointerData

	passive            bool
	defaultPrevented   bool
	propagationStopped bool
}

// NewPointerEvent creates a raw event of type t at surface position (x, y).
func NewPointerEvent(t EventType, x, y float64) *PointerEvent {
	return &PointerEvent{PointerData: PointerData{Type: t, OffsetX: x, OffsetY: y}}
}

// PreventDefault marks the event as handled by the application. Ignored while
// the event is being delivered to a passive listener.
func (e *PointerEvent) PreventDefault() {
	if e.passive {
		return
	}
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *PointerEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation records a stop request. EventTarget still delivers to its
// remaining listeners; hosts that forward events further should check
// PropagationStopped.
func (e *PointerEvent) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *PointerEvent) PropagationStopped() bool {
	return e.propagationStopped
}

// Event is the synthesized event handed to node handlers. One Event is built
// per input event and reused, mutated in place, across every pass and
// handler of that cycle. When the cycle ends its node references are cleared.
type Event struct {
	// PointerData is a copy of the raw event's data.
	PointerData
	// Intersection is the hit currently being delivered. Zero for
	// non-bubbling passes that are not tied to a hit.
	Intersection

	// Intersections is the bubble path of the primary pass, nearest first.
	Intersections []EventIntersection
	// Pointer is the pointer position in normalized device coordinates.
	Pointer Vec2
	// Ray is the picking ray.
	Ray Ray
	// Camera is the camera the ray was cast from, or nil.
	Camera Camera
	// UnprojectedPoint is Pointer unprojected at NDC depth 0.
	UnprojectedPoint Vec3
	// Delta is the pixel distance between the last pointerdown and this
	// event, for click, dblclick, contextmenu and pointerup; zero otherwise.
	Delta float64

	// Target is the struck node. For non-bubbling events it equals
	// CurrentTarget.
	Target *Node
	// CurrentTarget is the node whose handler is running.
	CurrentTarget *Node
	// EventObject is the node the event was dispatched on; same as CurrentTarget.
	EventObject *Node

	// Stopped is set by StopPropagation and reset at the start of each pass.
	Stopped bool

	// Native is the raw surface event.
	Native *PointerEvent
}

// StopPropagation stops the current pass from reaching further nodes and
// forwards to the raw event.
func (e *Event) StopPropagation() {
	e.Stopped = true
	if e.Native != nil {
		e.Native.StopPropagation()
	}
}

// PreventDefault forwards to the raw event.
func (e *Event) PreventDefault() {
	if e.Native != nil {
		e.Native.PreventDefault()
	}
}

// setSelf points every target field at n, as for non-bubbling events.
func (e *Event) setSelf(n *Node) {
	e.Object = n
	e.Target = n
	e.CurrentTarget = n
	e.EventObject = n
}

// release clears node references once the cycle is over.
func (e *Event) release() {
	e.Object = nil
	e.Target = nil
	e.CurrentTarget = nil
	e.EventObject = nil
}

// buildEvent creates the cycle's event from the raw input and the engine
// state. A pointerdown records the down position for later deltas.
func buildEvent(raw *PointerEvent, st *engineState, path []EventIntersection) *Event {
	var delta float64
	if raw.Type.clickFamily() {
		dx := raw.OffsetX - st.pointerDown.X
		dy := raw.OffsetY - st.pointerDown.Y
		delta = math.Sqrt(dx*dx + dy*dy)
	}
	if raw.Type == EventPointerDown {
		st.pointerDown = Vec2{raw.OffsetX, raw.OffsetY}
	}

	ev := &Event{
		PointerData:   raw.PointerData,
		Intersections: path,
		Pointer:       st.pointer,
		Ray:           st.raycaster.Ray(),
		Delta:         delta,
		Native:        raw,
	}
	if cam := st.raycaster.Camera(); cam != nil {
		ev.Camera = cam
		ev.UnprojectedPoint = cam.Unproject(Vec3{st.pointer.X, st.pointer.Y, 0})
	}
	return ev
}
