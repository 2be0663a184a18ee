package raypick

// Handler receives a synthesized pointer event. The *Event is owned by the
// dispatch cycle and must not be retained after the handler returns; copy
// the fields you need.
type Handler func(*Event)

// --- ID counter ---

// nodeIDCounter is a plain counter; dispatch is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene-graph element the engine raycasts against and dispatches
// to. Parent is a non-owning back-reference used only for upward walks;
// children are owned by their parent.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Writes to these fields directly must be followed by
	// MarkDirty; the Set* helpers do that for you.
	Position Vec3
	Rotation Vec3 // Euler XYZ, radians
	Scale    Vec3

	worldMatrix    Mat4
	invWorldMatrix Mat4
	transformDirty bool

	// Shape is the geometry tested by the raycaster, in local space.
	// Nodes without a shape are never struck directly but still receive
	// bubbled events from struck descendants.
	Shape Shape

	// Metadata
	UserData any
	EntityID uint32

	handlers   [numHandlerKinds]Handler
	blocking   bool
	eventCount int

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = Vec3{1, 1, 1}
	n.transformDirty = true
}

// NewGroup creates a node with no geometry. Groups are transparent to rays
// and exist to carry transforms and bubbled handlers.
func NewGroup(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewMesh creates a node whose shape is tested by the raycaster.
func NewMesh(name string, shape Shape) *Node {
	n := &Node{Name: name, Shape: shape}
	nodeDefaults(n)
	return n
}

// --- Handlers ---

// Handler returns the handler attached to slot k, or nil.
func (n *Node) Handler(k HandlerKind) Handler {
	if k >= numHandlerKinds {
		return nil
	}
	return n.handlers[k]
}

// HasHandlers reports whether the node carries the event marker: at least
// one attached handler, or the blocking flag.
func (n *Node) HasHandlers() bool {
	return n.eventCount > 0
}

// Blocking reports whether the node occludes rays for event purposes.
func (n *Node) Blocking() bool {
	return n.blocking
}

// setHandler installs fn in slot k and refreshes the event marker.
func (n *Node) setHandler(k HandlerKind, fn Handler) {
	n.handlers[k] = fn
	n.refreshEventCount()
}

func (n *Node) setBlocking(b bool) {
	n.blocking = b
	n.refreshEventCount()
}

func (n *Node) refreshEventCount() {
	count := 0
	for _, h := range n.handlers {
		if h != nil {
			count++
		}
	}
	if n.blocking {
		count++
	}
	n.eventCount = count
}

// hasAnyHandler reports whether any typed slot is populated. Unlike
// HasHandlers, the blocking flag does not count.
func (n *Node) hasAnyHandler() bool {
	for _, h := range n.handlers {
		if h != nil {
			return true
		}
	}
	return false
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("raypick: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("raypick: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("raypick: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("raypick: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("raypick: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("raypick: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// FindChild returns the first descendant (depth-first, pre-order) with the
// given name, or nil.
func (n *Node) FindChild(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c != n && c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Handlers are released.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Shape = nil
	n.UserData = nil
	n.handlers = [numHandlerKinds]Handler{}
	n.blocking = false
	n.eventCount = 0
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// subtree returns n and all of its descendants.
func subtree(n *Node) map[*Node]struct{} {
	set := make(map[*Node]struct{})
	stack := []*Node{n}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		set[c] = struct{}{}
		stack = append(stack, c.children...)
	}
	return set
}
