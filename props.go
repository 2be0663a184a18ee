package raypick

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// BlockingProp is the prop that makes a node occlude rays for event purposes.
const BlockingProp = "blocking"

// deprecatedProps maps legacy camel-case prop names to their canonical form.
var deprecatedProps = map[string]string{
	"onPointerEnter":  "onPointerenter",
	"onPointerLeave":  "onPointerleave",
	"onPointerMove":   "onPointermove",
	"onPointerMissed": "onPointermissed",
	"onPointerDown":   "onPointerdown",
	"onPointerUp":     "onPointerup",
	"onPointerOver":   "onPointerover",
	"onPointerOut":    "onPointerout",
	"onDoubleClick":   "onDblclick",
	"onContextMenu":   "onContextmenu",
}

var propKinds = func() map[string]HandlerKind {
	m := make(map[string]HandlerKind, numHandlerKinds)
	for k := HandlerKind(0); k < numHandlerKinds; k++ {
		m[k.PropName()] = k
	}
	return m
}()

var unsupportedModifiers = [...]string{"Capture", "Passive", "Once"}

// stripModifiers removes any trailing Capture/Passive/Once suffixes.
func stripModifiers(name string) (string, bool) {
	stripped := false
	for {
		cut := false
		for _, mod := range unsupportedModifiers {
			if base, ok := strings.CutSuffix(name, mod); ok && base != "" {
				name = base
				cut = true
				stripped = true
			}
		}
		if !cut {
			return name, stripped
		}
	}
}

// ResolveProp maps a prop name to its handler slot. Deprecated aliases are
// normalized; modifiers reports whether unsupported suffixes were dropped.
func ResolveProp(name string) (kind HandlerKind, modifiers bool, ok bool) {
	base, modifiers := stripModifiers(name)
	if canon, dep := deprecatedProps[base]; dep {
		base = canon
	}
	kind, ok = propKinds[base]
	if !ok {
		return 0, false, false
	}
	return kind, modifiers, true
}

// PatchProp applies a prop change from the owning renderer. It reports false
// when name is not an event prop or the blocking prop, leaving it to the
// caller. Accepted handler values are Handler, func(*Event), []Handler,
// []func(*Event) (called in order) and nil (detach).
func (m *EventManager) PatchProp(n *Node, name string, prev, next any) bool {
	if n == nil {
		return false
	}
	if m.cfg.Debug {
		debugCheckDisposed(n, "PatchProp")
	}

	if name == BlockingProp {
		m.SetBlocking(n, truthy(next))
		return true
	}

	kind, modifiers, ok := ResolveProp(name)
	if !ok {
		return false
	}
	if modifiers && m.cfg.WarnModifiers && !m.warnedModifiers {
		m.warnedModifiers = true
		m.log.Warn("event prop contains unsupported modifiers; they are ignored (no further warnings will be logged for event modifiers)",
			zap.String("prop", name))
	}

	fn, ok := toHandler(next)
	if !ok {
		m.log.Warn("unsupported event handler value",
			zap.String("prop", name),
			zap.String("node", n.Name),
			zap.String("type", fmt.Sprintf("%T", next)))
		return true
	}
	m.On(n, kind, fn)
	return true
}

// On attaches fn to slot kind of n, replacing any previous handler. A nil fn
// detaches.
func (m *EventManager) On(n *Node, kind HandlerKind, fn Handler) {
	if kind >= numHandlerKinds {
		return
	}
	n.setHandler(kind, fn)
	m.st.pool.markDirty()
}

// SetBlocking toggles whether n occludes rays for event purposes.
func (m *EventManager) SetBlocking(n *Node, blocking bool) {
	if blocking {
		m.st.blocking.add(n)
	} else {
		delete(m.st.blocking, n)
	}
	n.setBlocking(blocking)
	m.st.pool.markDirty()
}

// toHandler converts a prop value into a Handler. Sequences fan out in order.
func toHandler(v any) (Handler, bool) {
	switch fn := v.(type) {
	case nil:
		return nil, true
	case Handler:
		return fn, true
	case func(*Event):
		return fn, true
	case []Handler:
		return fanOut(fn), true
	case []func(*Event):
		hs := make([]Handler, len(fn))
		for i, f := range fn {
			hs[i] = f
		}
		return fanOut(hs), true
	}
	return nil, false
}

func fanOut(hs []Handler) Handler {
	live := make([]Handler, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			live = append(live, h)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(e *Event) {
		for _, h := range live {
			h(e)
		}
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	}
	return true
}
