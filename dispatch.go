package raypick

import (
	"slices"

	"go.uber.org/zap"
)

// handleIntersections dispatches one cycle for raw against the given
// distance-ordered intersections. Passes run in a fixed order: missed,
// leave, out, enter, over, then the raw event's own handler. Prior state is
// persisted on exit even if a pass panics.
func (m *EventManager) handleIntersections(raw *PointerEvent, intersections []Intersection) {
	st := &m.st
	frame := trackHits(intersections, st.priorHits, st.blocking)
	ev := buildEvent(raw, st, frame.eventIntersections)

	st.depth++
	if st.depth == 1 {
		clear(st.removed)
	}
	defer func() {
		st.depth--
		if len(st.removed) > 0 {
			frame.forget(st.removed)
		}
		st.priorIntersections = frame.filtered
		st.priorInitialHits = frame.initialHits
		st.priorHits = frame.hits
		st.priorHitOrder = frame.order
		// The event is cycle-scoped; handlers that keep it see no nodes.
		ev.release()
	}()

	if m.cfg.Debug {
		m.stats.filtered = len(frame.filtered)
		m.stats.entered = len(frame.entered)
		m.stats.left = len(frame.left)
		m.stats.blocked = frame.blocked
	}

	if raw.Type.missable() {
		m.dispatchMissed(ev, frame.hits)
	}
	if len(frame.left) > 0 {
		visited := m.callSelfIf(HandlerPointerLeave, ev, st.priorIntersections, frame.left)
		// Nodes that left without being on a prior intersection path, e.g.
		// after reparenting, still get exactly one leave.
		for _, n := range st.priorHitOrder {
			if frame.left.has(n) && !visited.has(n) {
				ev.Intersection = Intersection{}
				ev.setSelf(n)
				m.invoke(HandlerPointerLeave, n, ev)
			}
		}
	}
	m.bubbleFresh(HandlerPointerOut, ev, st.priorIntersections, frame.initialHits)
	if len(frame.entered) > 0 {
		m.callSelfIf(HandlerPointerEnter, ev, intersections, frame.entered)
	}
	m.bubbleFresh(HandlerPointerOver, ev, frame.filtered, st.priorInitialHits)
	if kind, ok := raw.Type.primaryHandler(); ok {
		m.dispatchPrimary(kind, ev)
	}
}

// dispatchMissed calls the missed handler of every pooled node outside hits.
// The pass does not bubble and cannot be stopped.
func (m *EventManager) dispatchMissed(ev *Event, hits nodeSet) {
	ev.Stopped = false
	pool := slices.Clone(m.st.pool.nodes)
	for _, n := range pool {
		if hits.has(n) {
			continue
		}
		ev.Target = n
		ev.CurrentTarget = n
		ev.EventObject = n
		m.invoke(HandlerPointerMissed, n, ev)
	}
}

// callSelfIf walks each intersection and its ancestors once, calling the kind
// handler on every node in cond as a self event. The pass does not bubble
// and cannot be stopped. Returns the visited nodes.
func (m *EventManager) callSelfIf(kind HandlerKind, ev *Event, intersections []Intersection, cond nodeSet) nodeSet {
	visited := make(nodeSet)
	ev.Stopped = false
	for _, in := range intersections {
		ev.Intersection = in
		for obj := in.Object; obj != nil && !visited.has(obj); obj = obj.Parent {
			visited.add(obj)
			if cond.has(obj) {
				ev.setSelf(obj)
				m.invoke(kind, obj, ev)
			}
		}
	}
	return visited
}

// bubbleFresh delivers kind for each intersection whose node is not in
// skip, then bubbles it up the ancestors. Each node receives the event at
// most once per pass; StopPropagation ends the pass.
func (m *EventManager) bubbleFresh(kind HandlerKind, ev *Event, intersections []Intersection, skip nodeSet) {
	dup := make(nodeSet)
	ev.Stopped = false
	for _, in := range intersections {
		if ev.Stopped {
			break
		}
		obj := in.Object
		if skip.has(obj) || dup.has(obj) {
			continue
		}
		ev.Intersection = in
		ev.Target = obj
		for ; obj != nil && !ev.Stopped && !dup.has(obj); obj = obj.Parent {
			ev.EventObject = obj
			ev.CurrentTarget = obj
			m.invoke(kind, obj, ev)
			dup.add(obj)
		}
	}
}

// dispatchPrimary walks the bubble path calling the raw event's own handler
// once per event object until stopped.
func (m *EventManager) dispatchPrimary(kind HandlerKind, ev *Event) {
	dup := make(nodeSet)
	ev.Stopped = false
	for _, ei := range ev.Intersections {
		if ev.Stopped {
			break
		}
		if dup.has(ei.EventObject) {
			continue
		}
		dup.add(ei.EventObject)
		ev.Intersection = ei.Intersection
		ev.EventObject = ei.EventObject
		ev.CurrentTarget = ei.EventObject
		ev.Target = ei.Object
		m.invoke(kind, ei.EventObject, ev)
	}
}

// invoke forwards the delivery to the entity store and calls n's handler for
// kind. A panicking handler is logged and the cycle continues.
func (m *EventManager) invoke(kind HandlerKind, n *Node, ev *Event) {
	fn := n.handlers[kind]
	if forwardsToStore(kind, n, fn != nil) {
		m.emitInteractionEvent(kind, n, ev)
	}
	if fn == nil {
		return
	}
	if m.cfg.Debug {
		m.stats.handlerCalls++
	}
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("event handler panicked",
				zap.String("handler", kind.PropName()),
				zap.String("event", ev.Type.String()),
				zap.String("node", n.Name),
				zap.Uint32("nodeID", n.ID),
				zap.Any("panic", r))
		}
	}()
	fn(ev)
}

// --- ECS bridge ---

// forwardsToStore reports whether a delivery reaches the entity store. Only
// nodes with handlers forward, and the missed pass, which visits every pooled
// node, only forwards to nodes that handle it.
func forwardsToStore(kind HandlerKind, n *Node, handled bool) bool {
	if kind == HandlerPointerMissed {
		return handled
	}
	return n.eventCount > 0
}

func (m *EventManager) emitInteractionEvent(kind HandlerKind, n *Node, ev *Event) {
	if m.store == nil || n.EntityID == 0 {
		return
	}
	m.store.EmitEvent(InteractionEvent{
		Kind:      kind,
		EntityID:  n.EntityID,
		Distance:  ev.Distance,
		Point:     ev.Point,
		PointerX:  ev.OffsetX,
		PointerY:  ev.OffsetY,
		Delta:     ev.Delta,
		Button:    ev.Button,
		Modifiers: ev.Modifiers,
	})
}
