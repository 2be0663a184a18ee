package raypick

// EventType identifies a raw event delivered by an input surface. The names
// match the DOM pointer-event names they model.
type EventType uint8

const (
	EventClick        EventType = iota // "click": press then release
	EventContextMenu                   // "contextmenu": secondary button press
	EventDoubleClick                   // "dblclick": two clicks within the double-click window
	EventWheel                         // "wheel": scroll wheel movement
	EventPointerDown                   // "pointerdown": a button was pressed
	EventPointerUp                     // "pointerup": a button was released
	EventPointerMove                   // "pointermove": the pointer moved over the surface
	EventPointerLeave                  // "pointerleave": the pointer left the surface
	numEventTypes
)

var eventTypeNames = [numEventTypes]string{
	EventClick:        "click",
	EventContextMenu:  "contextmenu",
	EventDoubleClick:  "dblclick",
	EventWheel:        "wheel",
	EventPointerDown:  "pointerdown",
	EventPointerUp:    "pointerup",
	EventPointerMove:  "pointermove",
	EventPointerLeave: "pointerleave",
}

// String returns the DOM event name.
func (t EventType) String() string {
	if t < numEventTypes {
		return eventTypeNames[t]
	}
	return "unknown"
}

// ParseEventType maps a DOM event name to its EventType.
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// pointerEventTypes are the surface events routed through the full raycast
// cycle. EventPointerLeave is registered separately by Connect.
var pointerEventTypes = [...]EventType{
	EventClick,
	EventContextMenu,
	EventDoubleClick,
	EventWheel,
	EventPointerDown,
	EventPointerUp,
	EventPointerMove,
}

// passive reports whether listeners for t are registered as passive.
func (t EventType) passive() bool {
	switch t {
	case EventWheel, EventPointerMove, EventPointerLeave:
		return true
	}
	return false
}

// clickFamily reports whether t carries a drag distance.
func (t EventType) clickFamily() bool {
	switch t {
	case EventClick, EventContextMenu, EventDoubleClick, EventPointerUp:
		return true
	}
	return false
}

// missable reports whether t triggers the pointer-missed pass.
func (t EventType) missable() bool {
	switch t {
	case EventClick, EventContextMenu, EventDoubleClick:
		return true
	}
	return false
}

// HandlerKind identifies a typed handler slot on a Node.
type HandlerKind uint8

const (
	HandlerClick         HandlerKind = iota // onClick
	HandlerContextMenu                      // onContextmenu
	HandlerDoubleClick                      // onDblclick
	HandlerWheel                            // onWheel
	HandlerPointerDown                      // onPointerdown
	HandlerPointerUp                        // onPointerup
	HandlerPointerMove                      // onPointermove
	HandlerPointerEnter                     // onPointerenter (non-bubbling)
	HandlerPointerLeave                     // onPointerleave (non-bubbling)
	HandlerPointerOver                      // onPointerover (bubbling)
	HandlerPointerOut                       // onPointerout (bubbling)
	HandlerPointerMissed                    // onPointermissed (non-bubbling)
	numHandlerKinds
)

var handlerPropNames = [numHandlerKinds]string{
	HandlerClick:         "onClick",
	HandlerContextMenu:   "onContextmenu",
	HandlerDoubleClick:   "onDblclick",
	HandlerWheel:         "onWheel",
	HandlerPointerDown:   "onPointerdown",
	HandlerPointerUp:     "onPointerup",
	HandlerPointerMove:   "onPointermove",
	HandlerPointerEnter:  "onPointerenter",
	HandlerPointerLeave:  "onPointerleave",
	HandlerPointerOver:   "onPointerover",
	HandlerPointerOut:    "onPointerout",
	HandlerPointerMissed: "onPointermissed",
}

// PropName returns the canonical prop name for k, e.g. "onPointerenter".
func (k HandlerKind) PropName() string {
	if k < numHandlerKinds {
		return handlerPropNames[k]
	}
	return ""
}

// String returns the prop name.
func (k HandlerKind) String() string { return k.PropName() }

// primaryHandler maps a surface event to the handler slot invoked by the
// bubbling primary pass.
func (t EventType) primaryHandler() (HandlerKind, bool) {
	switch t {
	case EventClick:
		return HandlerClick, true
	case EventContextMenu:
		return HandlerContextMenu, true
	case EventDoubleClick:
		return HandlerDoubleClick, true
	case EventWheel:
		return HandlerWheel, true
	case EventPointerDown:
		return HandlerPointerDown, true
	case EventPointerUp:
		return HandlerPointerUp, true
	case EventPointerMove:
		return HandlerPointerMove, true
	}
	return 0, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys held during an event.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
