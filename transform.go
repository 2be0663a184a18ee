package raypick

// computeLocalTransform computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Scale -> RotateX -> RotateY -> RotateZ -> Translate(Position)
func computeLocalTransform(n *Node) Mat4 {
	return Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the node's local-to-world matrix, recomputing it (and
// any dirty ancestors) on demand.
func (n *Node) WorldMatrix() Mat4 {
	if n.transformDirty {
		n.refreshWorldTransform()
	}
	return n.worldMatrix
}

// inverseWorldMatrix returns the cached world-to-local matrix.
func (n *Node) inverseWorldMatrix() Mat4 {
	if n.transformDirty {
		n.refreshWorldTransform()
	}
	return n.invWorldMatrix
}

func (n *Node) refreshWorldTransform() {
	local := computeLocalTransform(n)
	if n.Parent != nil {
		n.worldMatrix = n.Parent.WorldMatrix().Mul(local)
	} else {
		n.worldMatrix = local
	}
	n.invWorldMatrix, _ = n.worldMatrix.Invert()
	n.transformDirty = false
}

// SetPosition sets the local position and marks the subtree dirty.
func (n *Node) SetPosition(p Vec3) {
	n.Position = p
	markSubtreeDirty(n)
}

// SetRotation sets the local Euler rotation (radians) and marks the subtree dirty.
func (n *Node) SetRotation(r Vec3) {
	n.Rotation = r
	markSubtreeDirty(n)
}

// SetScale sets the local scale and marks the subtree dirty.
func (n *Node) SetScale(s Vec3) {
	n.Scale = s
	markSubtreeDirty(n)
}

// MarkDirty flags the node's world transform (and its descendants') for
// recomputation. Call after writing Position, Rotation or Scale directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 {
	m := n.WorldMatrix()
	return Vec3{m[12], m[13], m[14]}
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec3) Vec3 {
	return n.inverseWorldMatrix().MulPoint(p)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return n.WorldMatrix().MulPoint(p)
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
