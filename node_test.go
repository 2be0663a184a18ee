package raypick

import "testing"

// --- Constructor defaults ---

func TestNewGroupDefaults(t *testing.T) {
	n := NewGroup("test")
	assertNodeDefaults(t, n, "test")
	if n.Shape != nil {
		t.Error("group should have no shape")
	}
}

func TestNewMeshDefaults(t *testing.T) {
	n := NewMesh("mesh", Sphere{Radius: 1})
	assertNodeDefaults(t, n, "mesh")
	if _, ok := n.Shape.(Sphere); !ok {
		t.Errorf("Shape = %T, want Sphere", n.Shape)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Scale != (Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Scale)
	}
	if n.HasHandlers() {
		t.Error("new node should carry no handlers")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

// --- Unique IDs ---

func TestUniqueIDs(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewMesh("c", nil)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- Handlers ---

func TestEventCountTracksHandlersAndBlocking(t *testing.T) {
	n := NewGroup("n")
	n.setHandler(HandlerClick, func(*Event) {})
	n.setHandler(HandlerPointerOver, func(*Event) {})
	if n.eventCount != 2 {
		t.Errorf("eventCount = %d, want 2", n.eventCount)
	}
	n.setBlocking(true)
	if n.eventCount != 3 {
		t.Errorf("eventCount = %d, want 3", n.eventCount)
	}
	n.setHandler(HandlerClick, nil)
	n.setHandler(HandlerPointerOver, nil)
	if !n.HasHandlers() {
		t.Error("blocking node should still carry the event marker")
	}
	if n.hasAnyHandler() {
		t.Error("hasAnyHandler should ignore blocking")
	}
	n.setBlocking(false)
	if n.HasHandlers() {
		t.Error("node should carry no marker")
	}
}

func TestHandlerOutOfRange(t *testing.T) {
	n := NewGroup("n")
	if n.Handler(numHandlerKinds) != nil {
		t.Error("out-of-range slot should be nil")
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewGroup("p1")
	p2 := NewGroup("p2")
	child := NewGroup("child")

	p1.AddChild(child)
	if p1.NumChildren() != 1 {
		t.Fatal("p1 should have 1 child")
	}

	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 {
		t.Error("p2 should have 1 child")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	grandchild := NewGroup("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	grandchild.AddChild(parent) // should panic
}

func TestAddChildSelfPanic(t *testing.T) {
	n := NewGroup("self")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for self-add, got none")
		}
	}()
	n.AddChild(n)
}

func TestAddChildNilPanic(t *testing.T) {
	n := NewGroup("n")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child, got none")
		}
	}()
	n.AddChild(nil)
}

// --- AddChildAt ---

func TestAddChildAt(t *testing.T) {
	parent := NewGroup("parent")
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	parent.AddChild(a)
	parent.AddChild(c)

	parent.AddChildAt(b, 1) // insert between a and c

	if parent.NumChildren() != 3 {
		t.Fatalf("NumChildren = %d, want 3", parent.NumChildren())
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Error("children order should be [a, b, c]")
	}
}

func TestAddChildAtBeginning(t *testing.T) {
	parent := NewGroup("parent")
	a := NewGroup("a")
	b := NewGroup("b")
	parent.AddChild(a)
	parent.AddChildAt(b, 0)

	if parent.ChildAt(0) != b || parent.ChildAt(1) != a {
		t.Error("children order should be [b, a]")
	}
}

func TestAddChildAtOutOfRangePanic(t *testing.T) {
	parent := NewGroup("parent")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for out-of-range index, got none")
		}
	}()
	parent.AddChildAt(NewGroup("a"), 2)
}

// --- RemoveChild ---

func TestRemoveChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)
	parent.RemoveChild(child)

	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
	if child.Parent != nil {
		t.Error("child.Parent should be nil")
	}
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	p1 := NewGroup("p1")
	p2 := NewGroup("p2")
	child := NewGroup("child")
	p1.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for wrong parent, got none")
		}
	}()
	p2.RemoveChild(child)
}

// --- RemoveFromParent ---

func TestRemoveFromParent(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)
	child.RemoveFromParent()

	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
	if child.Parent != nil {
		t.Error("child.Parent should be nil")
	}
}

func TestRemoveFromParentNoOp(t *testing.T) {
	n := NewGroup("orphan")
	n.RemoveFromParent() // should not panic
}

// --- Walk / FindChild ---

func TestWalkPreOrder(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewGroup("b")
	a1 := NewGroup("a1")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	want := []string{"root", "a", "a1", "b"}
	if len(names) != len(want) {
		t.Fatalf("walk = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("walk[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if root.FindChild("a1") != a1 {
		t.Error("FindChild(a1) failed")
	}
	if root.FindChild("root") != nil {
		t.Error("FindChild should not return the receiver")
	}
}

func TestSubtree(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	a1 := NewGroup("a1")
	b := NewGroup("b")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	set := subtree(a)
	if len(set) != 2 {
		t.Fatalf("subtree size = %d, want 2", len(set))
	}
	if _, ok := set[a1]; !ok {
		t.Error("subtree should contain a1")
	}
	if _, ok := set[b]; ok {
		t.Error("subtree should not contain b")
	}
}

// --- Dispose ---

func TestDispose(t *testing.T) {
	parent := NewGroup("parent")
	child := NewMesh("child", Sphere{Radius: 1})
	grandchild := NewGroup("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)
	child.setHandler(HandlerClick, func(*Event) {})

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
	if child.ID != 0 {
		t.Error("disposed node ID should be 0")
	}
	if child.Shape != nil || child.HasHandlers() {
		t.Error("disposed node should release its shape and handlers")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	n := NewGroup("n")
	n.Dispose()
	n.Dispose() // should not panic
}

// --- Dirty propagation ---

func TestDirtyPropagationOnAddChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	grandchild := NewGroup("grandchild")
	child.AddChild(grandchild)

	child.WorldMatrix()
	grandchild.WorldMatrix()
	if child.transformDirty || grandchild.transformDirty {
		t.Fatal("expected clean transforms after WorldMatrix")
	}

	parent.AddChild(child)
	if !child.transformDirty || !grandchild.transformDirty {
		t.Error("AddChild should mark the subtree dirty")
	}
}

func TestDirtyPropagationOnRemoveChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)
	child.WorldMatrix()

	parent.RemoveChild(child)
	if !child.transformDirty {
		t.Error("RemoveChild should mark the child dirty")
	}
}
