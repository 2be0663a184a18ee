package raypick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D vector. Used for pointer positions in screen pixels and in
// normalized device coordinates.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for positions, directions, and Euler rotations.
// Arithmetic is delegated to mgl64; the named fields keep scene code and YAML
// loading readable.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) gl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromGL(g mgl64.Vec3) Vec3 { return Vec3{g[0], g[1], g[2]} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return fromGL(v.gl().Add(o.gl())) }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return fromGL(v.gl().Sub(o.gl())) }

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 { return fromGL(v.gl().Mul(s)) }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.gl().Dot(o.gl()) }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 { return fromGL(v.gl().Cross(o.gl())) }

// Length returns the magnitude of v.
func (v Vec3) Length() float64 { return v.gl().Len() }

// Normalize returns a unit vector in the direction of v, or the zero vector
// if v has zero length.
func (v Vec3) Normalize() Vec3 {
	if v.Length() == 0 {
		return Vec3{}
	}
	return fromGL(v.gl().Normalize())
}

// Ray is a half-line with an origin and a direction. The direction is not
// required to be unit length; Ray.At scales by it as given.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns the ray mapped through m. The direction is transformed
// without translation and is not renormalized, so parameters along the
// returned ray correspond to parameters along r.
func (r Ray) Transform(m Mat4) Ray {
	return Ray{Origin: m.MulPoint(r.Origin), Direction: m.MulDir(r.Direction)}
}

// Mat4 is a 4x4 matrix in column-major order: element (row, col) lives at
// index col*4+row. It shares its layout with mgl64.Mat4.
type Mat4 mgl64.Mat4

// Identity4 is the identity matrix.
var Identity4 = Mat4(mgl64.Ident4())

// singularDet is the determinant magnitude below which Invert gives up.
const singularDet = 1e-12

func (m Mat4) gl() mgl64.Mat4 { return mgl64.Mat4(m) }

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	return Mat4(m.gl().Mul4(o.gl()))
}

// MulPoint transforms p as a point (w = 1) and applies the perspective divide.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	r := m.gl().Mul4x1(p.gl().Vec4(1))
	if w := r[3]; w != 1 && w != 0 {
		return fromGL(r.Vec3().Mul(1 / w))
	}
	return fromGL(r.Vec3())
}

// MulDir transforms d as a direction (w = 0).
func (m Mat4) MulDir(d Vec3) Vec3 {
	return fromGL(mgl64.TransformNormal(d.gl(), m.gl()))
}

// Invert returns the inverse of m. The second result is false when m is
// singular, in which case the identity matrix is returned.
func (m Mat4) Invert() (Mat4, bool) {
	if math.Abs(m.gl().Det()) < singularDet {
		return Identity4, false
	}
	return Mat4(m.gl().Inv()), true
}

// Compose builds the matrix Translate(t) * RotateXYZ(r) * Scale(s). Rotation
// is in radians, applied X then Y then Z in the intrinsic frame.
func Compose(t, r, s Vec3) Mat4 {
	m := mgl64.Translate3D(t.X, t.Y, t.Z).
		Mul4(mgl64.HomogRotate3DX(r.X)).
		Mul4(mgl64.HomogRotate3DY(r.Y)).
		Mul4(mgl64.HomogRotate3DZ(r.Z)).
		Mul4(mgl64.Scale3D(s.X, s.Y, s.Z))
	return Mat4(m)
}

// LookAt returns a view matrix for an eye at eye looking toward center.
// Returns the translation-only view when eye and center coincide.
func LookAt(eye, center, up Vec3) Mat4 {
	dir := center.Sub(eye)
	if dir.Length() < singularDet {
		return Mat4(mgl64.Translate3D(-eye.X, -eye.Y, -eye.Z))
	}
	// up parallel to the view direction leaves the basis undefined; pick
	// any perpendicular hint instead.
	for _, hint := range []Vec3{up, {1, 0, 0}, {0, 0, 1}} {
		if hint.Cross(dir).Length() >= singularDet {
			up = hint
			break
		}
	}
	return Mat4(mgl64.LookAtV(eye.gl(), center.gl(), up.gl()))
}

// Perspective returns an OpenGL-style projection matrix (NDC z in [-1, 1]).
// fovY is in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	return Mat4(mgl64.Perspective(fovY, aspect, near, far))
}

// Orthographic returns an OpenGL-style orthographic projection matrix.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	return Mat4(mgl64.Ortho(left, right, bottom, top, near, far))
}
