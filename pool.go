package raypick

// nodePool caches the event-capable nodes of a scene in children-first
// (post-order) order. The order matters to the missed pass, which must see
// descendants before their ancestors.
type nodePool struct {
	dirty bool
	nodes []*Node
}

func newNodePool() nodePool {
	return nodePool{dirty: true}
}

// markDirty schedules a rebuild on next access.
func (p *nodePool) markDirty() {
	p.dirty = true
}

// get returns the cached pool, rebuilding it from root first if dirty.
// A nil root yields an empty pool.
func (p *nodePool) get(root *Node) []*Node {
	if p.dirty {
		p.dirty = false
		p.nodes = p.nodes[:0]
		if root != nil {
			p.nodes, _ = collectEventNodes(root, false, p.nodes)
		}
	}
	return p.nodes
}

// drop removes the given nodes from the cached pool without a rebuild.
func (p *nodePool) drop(set map[*Node]struct{}) {
	kept := p.nodes[:0]
	for _, n := range p.nodes {
		if _, ok := set[n]; !ok {
			kept = append(kept, n)
		}
	}
	for i := len(kept); i < len(p.nodes); i++ {
		p.nodes[i] = nil
	}
	p.nodes = kept
}

// collectEventNodes appends n's subtree to buf in post-order, keeping nodes
// that are event-capable: the node, an ancestor (inherited), or a descendant
// carries a handler or the blocking flag. Reports whether n's subtree
// carries one.
func collectEventNodes(n *Node, inherited bool, buf []*Node) ([]*Node, bool) {
	self := n.hasAnyHandler() || n.blocking
	inherited = inherited || self

	// Children are appended before n so descendants precede ancestors.
	descendants := false
	for _, child := range n.children {
		var has bool
		buf, has = collectEventNodes(child, inherited, buf)
		descendants = descendants || has
	}

	if inherited || descendants {
		buf = append(buf, n)
	}
	return buf, self || descendants
}
