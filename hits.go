package raypick

// nodeSet is an unordered set of nodes.
type nodeSet map[*Node]struct{}

func (s nodeSet) has(n *Node) bool {
	_, ok := s[n]
	return ok
}

func (s nodeSet) add(n *Node) {
	s[n] = struct{}{}
}

// EventIntersection pairs an intersection with one of the event-capable
// nodes on its bubble path (the struck node or an ancestor).
type EventIntersection struct {
	Intersection
	// EventObject is the node that receives the event for this entry.
	EventObject *Node
}

// hitFrame is the hit state computed for one dispatch cycle.
type hitFrame struct {
	// filtered holds the intersections that were processed: deduplicated by
	// node and truncated after the first blocking one.
	filtered []Intersection
	// eventIntersections is the bubble path of the primary pass.
	eventIntersections []EventIntersection
	// hits is the ancestor closure of filtered; order lists it in bubble order.
	hits  nodeSet
	order []*Node
	// initialHits holds the struck nodes themselves, before the ancestor walk.
	initialHits nodeSet
	// entered = hits - priorHits, left = priorHits - hits.
	entered nodeSet
	left    nodeSet
	// blocked reports whether a blocking node cut the scan short.
	blocked bool
}

// trackHits walks distance-ordered intersections and their ancestors. For
// graph gparent => parentA, parentB; parentA => childA and intersections
// [childA, parentB], the bubble order is [childA, parentA, gparent, parentB]
// and eventIntersections (by EventObject) is
// [childA, parentA, gparent, parentB, gparent].
func trackHits(intersections []Intersection, priorHits, blocking nodeSet) hitFrame {
	f := hitFrame{
		hits:        make(nodeSet),
		initialHits: make(nodeSet),
		entered:     make(nodeSet),
		left:        make(nodeSet, len(priorHits)),
	}
	for n := range priorHits {
		f.left.add(n)
	}

	for _, in := range intersections {
		obj := in.Object
		f.initialHits.add(obj)
		if f.hits.has(obj) {
			continue
		}
		f.filtered = append(f.filtered, in)

		for ; obj != nil; obj = obj.Parent {
			if blocking.has(obj) {
				f.blocked = true
			}
			if obj.eventCount > 0 {
				f.eventIntersections = append(f.eventIntersections, EventIntersection{
					Intersection: in,
					EventObject:  obj,
				})
			}
			if !f.hits.has(obj) {
				f.hits.add(obj)
				f.order = append(f.order, obj)
				if f.left.has(obj) {
					delete(f.left, obj)
				} else {
					f.entered.add(obj)
				}
			}
		}

		// Blocking nodes are solid: nothing behind this intersection counts.
		if f.blocked {
			break
		}
	}
	return f
}

// forget drops gone from the frame's persistent state. Used when a handler
// removes nodes while the cycle that struck them is still running.
func (f *hitFrame) forget(gone nodeSet) {
	kept := make([]Intersection, 0, len(f.filtered))
	for _, in := range f.filtered {
		if !gone.has(in.Object) {
			kept = append(kept, in)
		}
	}
	f.filtered = kept
	order := make([]*Node, 0, len(f.order))
	for _, n := range f.order {
		if !gone.has(n) {
			order = append(order, n)
		}
	}
	f.order = order
	for n := range gone {
		delete(f.hits, n)
		delete(f.initialHits, n)
	}
}
