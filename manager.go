package raypick

import (
	"time"

	"go.uber.org/zap"
)

// Host is the scene owner an EventManager picks against.
type Host interface {
	// Root returns the scene root, or nil.
	Root() *Node
	// Camera returns the active camera, or nil. Raycasting is skipped while
	// no camera is set.
	Camera() Camera
	// Size returns the surface size in pixels, used for NDC conversion.
	Size() (width, height float64)
}

// EntityStore is the interface for optional ECS integration. When set on an
// EventManager, deliveries to nodes with a non-zero EntityID and at least one
// handler are forwarded to the store. Pointermissed is forwarded only to
// nodes with a missed handler.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Kind     HandlerKind
	EntityID uint32
	// Distance and Point describe the hit being delivered; zero for
	// deliveries that are not tied to a hit.
	Distance float64
	Point    Vec3
	// PointerX and PointerY are the surface pixel coordinates.
	PointerX  float64
	PointerY  float64
	Delta     float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// engineState is the mutable state shared by every cycle of one manager.
type engineState struct {
	raycaster *Raycaster
	// pointer is the last pointer position in NDC.
	pointer     Vec2
	pointerDown Vec2

	pool nodePool

	priorIntersections []Intersection
	priorInitialHits   nodeSet
	priorHits          nodeSet
	priorHitOrder      []*Node

	blocking nodeSet

	lastMove *PointerEvent

	// removed holds nodes dropped by Remove from inside a handler; the
	// enclosing cycle leaves them out of the state it persists. depth counts
	// nested cycles and removed resets when a top-level cycle starts.
	removed nodeSet
	depth   int
}

// EventManager raycasts raw pointer events into a scene and dispatches
// synthesized events to node handlers. It is single-threaded: all methods,
// and the handlers they call, must run on the goroutine delivering input.
type EventManager struct {
	host  Host
	cfg   Config
	log   *zap.Logger
	store EntityStore
	st    engineState

	warnedModifiers bool
	stats           debugStats
}

// NewEventManager creates a manager for host.
func NewEventManager(host Host, cfg Config) *EventManager {
	m := &EventManager{
		host: host,
		cfg:  cfg,
		st: engineState{
			raycaster:        NewRaycaster(cfg.RayNear, cfg.RayFar),
			pool:             newNodePool(),
			priorInitialHits: make(nodeSet),
			priorHits:        make(nodeSet),
			blocking:         make(nodeSet),
			removed:          make(nodeSet),
			lastMove:         NewPointerEvent(EventPointerMove, 0, 0),
		},
	}
	m.SetLogger(nil)
	return m
}

// SetLogger sets the warning channel. A nil logger discards output.
func (m *EventManager) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	m.log = l.Named("raypick")
}

// SetEntityStore sets the optional ECS bridge.
func (m *EventManager) SetEntityStore(store EntityStore) {
	m.store = store
}

// Config returns the manager's configuration.
func (m *EventManager) Config() Config {
	return m.cfg
}

// Raycaster exposes the picking raycaster, e.g. to adjust Near and Far.
func (m *EventManager) Raycaster() *Raycaster {
	return m.st.raycaster
}

// Hovered reports whether n is in the current hit set.
func (m *EventManager) Hovered(n *Node) bool {
	return m.st.priorHits.has(n)
}

// Connection is a live attachment to a Surface.
type Connection struct {
	handles []ListenerHandle
}

// Disconnect removes every listener registered by Connect. Safe to call
// more than once.
func (c *Connection) Disconnect() {
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
}

// Connect registers the manager on every pointer event type of s, plus a
// pointerleave listener that treats leaving the surface as hitting nothing.
func (m *EventManager) Connect(s Surface) *Connection {
	c := &Connection{}
	for _, t := range pointerEventTypes {
		c.handles = append(c.handles, s.AddEventListener(t, m.HandleEvent, t.passive()))
	}
	c.handles = append(c.handles,
		s.AddEventListener(EventPointerLeave, m.handleLeave, EventPointerLeave.passive()))
	return c
}

// Insert notifies the manager that n was added to the scene. Nodes in the
// subtree already flagged as blocking are registered.
func (m *EventManager) Insert(n *Node) {
	m.st.pool.markDirty()
	if n == nil {
		return
	}
	n.Walk(func(c *Node) bool {
		if c.blocking {
			m.st.blocking.add(c)
		}
		return true
	})
	if m.cfg.Debug {
		m.debugCheckTreeDepth(n)
		if n.Parent != nil {
			m.debugCheckChildCount(n.Parent)
		}
	}
}

// Remove notifies the manager that n and its subtree are about to leave the
// scene. Call it while n is still attached so out events bubble through its
// ancestors. The last pointermove is re-dispatched without the removed
// subtree, so hovered nodes receive their leave and out calls before they
// are forgotten.
func (m *EventManager) Remove(n *Node) {
	if n == nil {
		return
	}
	removed := subtree(n)
	m.st.pool.drop(removed)

	kept := make([]Intersection, 0, len(m.st.priorIntersections))
	for _, in := range m.st.priorIntersections {
		if _, gone := removed[in.Object]; !gone {
			kept = append(kept, in)
		}
	}

	m.setUp(m.st.lastMove)
	m.handleIntersections(m.st.lastMove, kept)
	m.st.raycaster.TearDown()

	inCycle := m.st.depth > 0
	for r := range removed {
		delete(m.st.priorHits, r)
		delete(m.st.priorInitialHits, r)
		delete(m.st.blocking, r)
		if inCycle {
			m.st.removed.add(r)
		}
	}
	m.st.pool.markDirty()
}

// HandleEvent runs one full cycle for a raw pointer event: raycast the pool,
// track hits and dispatch every pass.
func (m *EventManager) HandleEvent(raw *PointerEvent) {
	if raw == nil {
		return
	}
	var t0 time.Time
	if m.cfg.Debug {
		t0 = time.Now()
		m.stats = debugStats{}
	}

	m.stash(raw)
	m.setUp(raw)
	var root *Node
	if m.host != nil {
		root = m.host.Root()
	}
	pool := m.st.pool.get(root)
	intersections := m.st.raycaster.IntersectNodes(pool)
	m.handleIntersections(raw, intersections)
	m.st.raycaster.TearDown()

	if m.cfg.Debug {
		m.stats.event = raw.Type
		m.stats.poolSize = len(pool)
		m.stats.intersections = len(intersections)
		m.stats.total = time.Since(t0)
		m.debugLog(m.stats)
	}
}

// handleLeave runs a cycle with no intersections.
func (m *EventManager) handleLeave(raw *PointerEvent) {
	if raw == nil {
		return
	}
	var t0 time.Time
	if m.cfg.Debug {
		t0 = time.Now()
		m.stats = debugStats{}
	}

	m.setUp(raw)
	m.handleIntersections(raw, nil)
	m.st.raycaster.TearDown()

	if m.cfg.Debug {
		m.stats.event = raw.Type
		m.stats.poolSize = len(m.st.pool.nodes)
		m.stats.total = time.Since(t0)
		m.debugLog(m.stats)
	}
}

func (m *EventManager) stash(raw *PointerEvent) {
	if raw.Type == EventPointerMove {
		m.st.lastMove = raw
	}
}

// setUp converts the raw position to NDC and aims the raycaster. Without a
// camera or a surface size the raycaster stays torn down.
func (m *EventManager) setUp(raw *PointerEvent) {
	if m.host == nil {
		return
	}
	w, h := m.host.Size()
	if w > 0 && h > 0 {
		m.st.pointer = Vec2{
			X: (raw.OffsetX/w)*2 - 1,
			Y: -(raw.OffsetY/h)*2 + 1,
		}
	}
	if cam := m.host.Camera(); cam != nil {
		m.st.raycaster.SetFromCamera(m.st.pointer, cam)
	}
}
