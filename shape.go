package raypick

import "math"

// rayEpsilon rejects hits at (or numerically behind) the ray origin.
const rayEpsilon = 1e-9

// ShapeHit is a single ray/shape intersection in the shape's local space.
type ShapeHit struct {
	T      float64 // ray parameter of the hit
	Point  Vec3    // local-space hit point
	Normal Vec3    // local-space surface normal (unit length)
	Face   int     // triangle index for Triangles, -1 for analytic shapes
}

// Shape is geometry a node exposes to the raycaster. IntersectRay appends
// every hit of r (in local space) with T > 0 to dst and returns it.
type Shape interface {
	IntersectRay(r Ray, dst []ShapeHit) []ShapeHit
}

// --- Sphere ---

// Sphere is a sphere in local coordinates.
type Sphere struct {
	Center Vec3
	Radius float64
}

// IntersectRay reports the entry point of r into the sphere. A ray starting
// inside the sphere reports its exit point.
func (s Sphere) IntersectRay(r Ray, dst []ShapeHit) []ShapeHit {
	oc := r.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return dst
	}
	halfB := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return dst
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first.
	t := (-halfB - sqrtD) / a
	if t <= rayEpsilon {
		t = (-halfB + sqrtD) / a
		if t <= rayEpsilon {
			return dst
		}
	}

	p := r.At(t)
	normal := p.Sub(s.Center)
	if s.Radius != 0 {
		normal = normal.Scale(1 / s.Radius)
	}
	return append(dst, ShapeHit{T: t, Point: p, Normal: normal, Face: -1})
}

// --- Box ---

// Box is an axis-aligned box in local coordinates.
type Box struct {
	Min, Max Vec3
}

// NewBox returns a box of the given size centered on the local origin.
func NewBox(width, height, depth float64) Box {
	h := Vec3{width / 2, height / 2, depth / 2}
	return Box{Min: h.Scale(-1), Max: h}
}

// IntersectRay reports the entry point of r into the box using the slab
// method. A ray starting inside the box reports its exit point.
func (b Box) IntersectRay(r Ray, dst []ShapeHit) []ShapeHit {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	nearAxis, farAxis := -1, -1

	mins := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	maxs := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}

	for axis := 0; axis < 3; axis++ {
		// Handle parallel rays (direction near zero)
		if math.Abs(dir[axis]) < 1e-12 {
			if origin[axis] < mins[axis] || origin[axis] > maxs[axis] {
				return dst
			}
			continue
		}
		inv := 1 / dir[axis]
		t1 := (mins[axis] - origin[axis]) * inv
		t2 := (maxs[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
			nearAxis = axis
		}
		if t2 < tFar {
			tFar = t2
			farAxis = axis
		}
		if tNear > tFar {
			return dst
		}
	}

	t, axis, exiting := tNear, nearAxis, false
	if t <= rayEpsilon {
		t, axis, exiting = tFar, farAxis, true
		if t <= rayEpsilon {
			return dst
		}
	}
	if axis < 0 {
		return dst
	}

	p := r.At(t)
	var normal Vec3
	sign := -1.0
	if dir[axis] < 0 {
		sign = 1.0
	}
	if exiting {
		sign = -sign
	}
	switch axis {
	case 0:
		normal.X = sign
	case 1:
		normal.Y = sign
	case 2:
		normal.Z = sign
	}
	return append(dst, ShapeHit{T: t, Point: p, Normal: normal, Face: -1})
}

// --- Triangles ---

// Triangles is an indexed triangle soup in local coordinates. Every three
// entries of Indices form one triangle. Both faces are hit-testable.
type Triangles struct {
	Vertices []Vec3
	Indices  []int
}

// IntersectRay reports one hit per struck triangle (Möller–Trumbore).
func (m Triangles) IntersectRay(r Ray, dst []ShapeHit) []ShapeHit {
	const eps = 1e-12
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if i0 < 0 || i1 < 0 || i2 < 0 ||
			i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		h := r.Direction.Cross(edge2)
		a := edge1.Dot(h)
		if a > -eps && a < eps {
			continue // parallel to the triangle plane
		}
		f := 1 / a
		s := r.Origin.Sub(v0)
		u := f * s.Dot(h)
		if u < 0 || u > 1 {
			continue
		}
		q := s.Cross(edge1)
		v := f * r.Direction.Dot(q)
		if v < 0 || u+v > 1 {
			continue
		}
		t := f * edge2.Dot(q)
		if t <= rayEpsilon {
			continue
		}
		dst = append(dst, ShapeHit{
			T:      t,
			Point:  r.At(t),
			Normal: edge1.Cross(edge2).Normalize(),
			Face:   i / 3,
		})
	}
	return dst
}

// NewQuad returns a width×height rectangle in the local XY plane, centered
// on the origin and facing +Z.
func NewQuad(width, height float64) Triangles {
	hw, hh := width/2, height/2
	return Triangles{
		Vertices: []Vec3{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}},
		Indices:  []int{0, 1, 2, 0, 2, 3},
	}
}
