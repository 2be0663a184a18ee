package raypick

import (
	"math"
	"slices"
)

// Intersection is a single ray hit against a node's shape, in world space.
type Intersection struct {
	// Object is the node whose shape was struck.
	Object *Node
	// Distance is the world-space distance from the ray origin.
	Distance float64
	// Point is the world-space hit point.
	Point Vec3
	// Normal is the world-space surface normal at Point.
	Normal Vec3
	// Face is the struck triangle index, or -1 for analytic shapes.
	Face int
}

// Raycaster casts a picking ray from a camera and tests it against a pool of
// nodes. A Raycaster is "set up" between SetFromCamera and TearDown; it
// refuses to intersect otherwise.
type Raycaster struct {
	// Near and Far bound the accepted hit distance.
	Near, Far float64

	ray    Ray
	camera Camera

	hitBuf []ShapeHit
}

// NewRaycaster returns a raycaster accepting hits in [near, far].
func NewRaycaster(near, far float64) *Raycaster {
	return &Raycaster{Near: near, Far: far}
}

// SetFromCamera aims the ray through the NDC point. A nil camera leaves the
// raycaster torn down.
func (rc *Raycaster) SetFromCamera(ndc Vec2, cam Camera) {
	if cam == nil {
		rc.TearDown()
		return
	}
	rc.camera = cam
	rc.ray = cam.Ray(ndc)
}

// IsSetUp reports whether the raycaster has a camera.
func (rc *Raycaster) IsSetUp() bool {
	return rc.camera != nil
}

// TearDown clears the camera.
func (rc *Raycaster) TearDown() {
	rc.camera = nil
}

// Ray returns the current picking ray.
func (rc *Raycaster) Ray() Ray {
	return rc.ray
}

// Camera returns the camera the ray was cast from, or nil.
func (rc *Raycaster) Camera() Camera {
	return rc.camera
}

// IntersectNodes tests the ray against each node's own shape (children are
// not visited) and returns the hits sorted by ascending distance. Nodes
// without a shape are skipped. Returns nil when not set up.
func (rc *Raycaster) IntersectNodes(pool []*Node) []Intersection {
	if !rc.IsSetUp() {
		return nil
	}
	return intersectNodes(rc.ray, pool, rc.Near, rc.Far, &rc.hitBuf)
}

func intersectNodes(ray Ray, pool []*Node, near, far float64, buf *[]ShapeHit) []Intersection {
	var out []Intersection
	if math.IsNaN(far) || far == 0 {
		far = math.Inf(1)
	}
	for _, n := range pool {
		if n.Shape == nil {
			continue
		}
		world := n.WorldMatrix()
		local := ray.Transform(n.inverseWorldMatrix())

		hits := n.Shape.IntersectRay(local, (*buf)[:0])
		*buf = hits
		for _, h := range hits {
			p := world.MulPoint(h.Point)
			d := p.Sub(ray.Origin).Length()
			if d < near || d > far {
				continue
			}
			out = append(out, Intersection{
				Object:   n,
				Distance: d,
				Point:    p,
				Normal:   worldNormal(n, h.Normal),
				Face:     h.Face,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b Intersection) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return out
}

// worldNormal maps a local normal to world space using the inverse
// transpose of the node's world matrix.
func worldNormal(n *Node, local Vec3) Vec3 {
	inv := n.inverseWorldMatrix()
	return Vec3{
		X: inv[0]*local.X + inv[1]*local.Y + inv[2]*local.Z,
		Y: inv[4]*local.X + inv[5]*local.Y + inv[6]*local.Z,
		Z: inv[8]*local.X + inv[9]*local.Y + inv[10]*local.Z,
	}.Normalize()
}
