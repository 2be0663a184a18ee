package raypick

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates the three components of a node's Vec3 field together.
// Create one via TweenPosition, TweenRotation or TweenScale and call
// Update(dt) each tick. The group writes values and marks the node's
// transform dirty, so the next raycast sees the new pose. If the target node
// is disposed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	fields [3]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func newVec3Tween(node *Node, field *Vec3, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.tweens[0] = gween.New(float32(field.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(field.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(field.Z), float32(to.Z), duration, fn)
	g.fields = [3]*float64{&field.X, &field.Y, &field.Z}
	return g
}

// TweenPosition creates a TweenGroup that animates node.Position to the
// target over duration seconds using the easing function.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Tween(node, &node.Position, to, duration, fn)
}

// TweenRotation creates a TweenGroup that animates node.Rotation (Euler XYZ,
// radians).
func TweenRotation(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Tween(node, &node.Rotation, to, duration, fn)
}

// TweenScale creates a TweenGroup that animates node.Scale.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Tween(node, &node.Scale, to, duration, fn)
}
