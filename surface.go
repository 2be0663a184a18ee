package raypick

// Surface is an input source the EventManager can attach to. Implementations
// usually embed *EventTarget and feed it raw events.
type Surface interface {
	AddEventListener(t EventType, fn func(*PointerEvent), passive bool) ListenerHandle
}

type listener struct {
	id      uint32
	fn      func(*PointerEvent)
	passive bool
}

// EventTarget is an in-memory listener registry keyed by event type.
type EventTarget struct {
	listeners [numEventTypes][]listener
	nextID    uint32
}

// NewEventTarget returns an empty EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{}
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id     uint32
	target *EventTarget
	event  EventType
}

// Remove unregisters the listener. Safe to call more than once.
func (h ListenerHandle) Remove() {
	if h.target == nil || h.event >= numEventTypes {
		return
	}
	s := h.target.listeners[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.target.listeners[h.event] = s[:len(s)-1]
			return
		}
	}
}

// AddEventListener registers fn for events of type t. A passive listener
// cannot cancel the event: PreventDefault is ignored while it runs.
func (et *EventTarget) AddEventListener(t EventType, fn func(*PointerEvent), passive bool) ListenerHandle {
	if fn == nil || t >= numEventTypes {
		return ListenerHandle{}
	}
	et.nextID++
	id := et.nextID
	et.listeners[t] = append(et.listeners[t], listener{id: id, fn: fn, passive: passive})
	return ListenerHandle{id: id, target: et, event: t}
}

// ListenerCount returns the number of listeners registered for t.
func (et *EventTarget) ListenerCount(t EventType) int {
	if t >= numEventTypes {
		return 0
	}
	return len(et.listeners[t])
}

// Dispatch delivers e to every listener registered for its type, in
// registration order. Listeners added or removed during delivery take effect
// on the next Dispatch. Reports false if a non-passive listener called
// PreventDefault.
func (et *EventTarget) Dispatch(e *PointerEvent) bool {
	if e == nil || e.Type >= numEventTypes {
		return true
	}
	ls := et.listeners[e.Type]
	if len(ls) == 0 {
		return !e.defaultPrevented
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		e.passive = l.passive
		l.fn(e)
	}
	e.passive = false
	return !e.defaultPrevented
}
