package raypick

// Scene is a ready-made owner for an EventManager: it holds the root node,
// the active camera and the surface size, and forwards tree changes to the
// manager.
type Scene struct {
	root   *Node
	camera Camera
	width  float64
	height float64

	events *EventManager
}

// NewScene creates a scene with a pre-created root group and an event
// manager configured by cfg.
func NewScene(width, height float64, cfg Config) *Scene {
	s := &Scene{
		root:   NewGroup("root"),
		width:  width,
		height: height,
	}
	s.events = NewEventManager(s, cfg)
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the active camera, or nil.
func (s *Scene) Camera() Camera {
	return s.camera
}

// SetCamera sets the active camera. A perspective camera's aspect is synced
// to the surface size.
func (s *Scene) SetCamera(cam Camera) {
	s.camera = cam
	s.syncAspect()
}

// Size returns the surface size in pixels.
func (s *Scene) Size() (width, height float64) {
	return s.width, s.height
}

// SetSize updates the surface size, typically on window resize.
func (s *Scene) SetSize(width, height float64) {
	s.width, s.height = width, height
	s.syncAspect()
}

func (s *Scene) syncAspect() {
	if pc, ok := s.camera.(*PerspectiveCamera); ok && pc != nil && s.height > 0 {
		pc.SetAspect(s.width / s.height)
	}
}

// Events returns the scene's event manager.
func (s *Scene) Events() *EventManager {
	return s.events
}

// Connect attaches the scene's event manager to an input surface.
func (s *Scene) Connect(surface Surface) *Connection {
	return s.events.Connect(surface)
}

// Add appends child to parent (the root when parent is nil) and notifies the
// event manager.
func (s *Scene) Add(parent, child *Node) {
	if parent == nil {
		parent = s.root
	}
	parent.AddChild(child)
	s.events.Insert(child)
}

// Remove detaches n from the scene. Hovered nodes in the subtree receive
// their leave and out events first.
func (s *Scene) Remove(n *Node) {
	if n == nil || n == s.root {
		return
	}
	s.events.Remove(n)
	n.RemoveFromParent()
}

// SetProp patches an event prop on n. Reports false for props the event
// manager does not recognize.
func (s *Scene) SetProp(n *Node, name string, value any) bool {
	var prev any
	if kind, _, ok := ResolveProp(name); ok {
		if h := n.Handler(kind); h != nil {
			prev = h
		}
	} else if name == BlockingProp {
		prev = n.Blocking()
	}
	return s.events.PatchProp(n, name, prev, value)
}

// Update advances camera animations by dt seconds.
func (s *Scene) Update(dt float32) {
	if u, ok := s.camera.(interface{ Update(float32) }); ok {
		u.Update(dt)
	}
}
