package raypick

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera maps normalized device coordinates to world space. NDC x and y are
// in [-1, 1] with +y up; z is in [-1, 1] from the near to the far plane.
type Camera interface {
	// Ray returns the world-space picking ray through the NDC point.
	Ray(ndc Vec2) Ray
	// Unproject maps an NDC point back to world space.
	Unproject(ndc Vec3) Vec3
}

// moveAnim holds active move-to tweens for the camera position.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// cameraPose is the position/orientation state shared by all cameras.
type cameraPose struct {
	// Position is the eye position in world space.
	Position Vec3
	// Target is the world-space point the camera looks at.
	Target Vec3
	// Up is the world-space up hint.
	Up Vec3

	view    Mat4
	invProj Mat4 // inverse(projection * view)
	dirty   bool

	move *moveAnim
}

func newCameraPose() cameraPose {
	return cameraPose{
		Position: Vec3{0, 0, 5},
		Up:       Vec3{0, 1, 0},
		dirty:    true,
	}
}

// MarkDirty forces a recomputation of the view and projection matrices.
// Call after modifying exported fields directly.
func (c *cameraPose) MarkDirty() {
	c.dirty = true
}

// LookAt points the camera at target.
func (c *cameraPose) LookAt(target Vec3) {
	c.Target = target
	c.dirty = true
}

// MoveTo animates the camera position to pos over duration seconds. The
// target is kept fixed. Advance the animation with Update.
func (c *cameraPose) MoveTo(pos Vec3, duration float32, easeFn ease.TweenFunc) {
	c.move = &moveAnim{
		tweens: [3]*gween.Tween{
			gween.New(float32(c.Position.X), float32(pos.X), duration, easeFn),
			gween.New(float32(c.Position.Y), float32(pos.Y), duration, easeFn),
			gween.New(float32(c.Position.Z), float32(pos.Z), duration, easeFn),
		},
	}
}

// Moving reports whether a MoveTo animation is in progress.
func (c *cameraPose) Moving() bool {
	return c.move != nil
}

// Update advances any MoveTo animation by dt seconds.
func (c *cameraPose) Update(dt float32) {
	if c.move == nil {
		return
	}
	fields := [3]*float64{&c.Position.X, &c.Position.Y, &c.Position.Z}
	allDone := true
	for i, tw := range c.move.tweens {
		if c.move.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		*fields[i] = float64(val)
		c.move.done[i] = done
		if !done {
			allDone = false
		}
	}
	if allDone {
		c.move = nil
	}
	c.dirty = true
}

// refresh recomputes the cached matrices for the given projection.
func (c *cameraPose) refresh(proj Mat4) {
	c.view = LookAt(c.Position, c.Target, c.Up)
	c.invProj, _ = proj.Mul(c.view).Invert()
	c.dirty = false
}

// --- Perspective ---

// PerspectiveCamera is a pinhole camera with a vertical field of view.
type PerspectiveCamera struct {
	cameraPose

	// FovY is the vertical field of view in degrees.
	FovY float64
	// Aspect is viewport width divided by height.
	Aspect float64
	// Near and Far are the clip plane distances.
	Near, Far float64
}

// NewPerspectiveCamera creates a perspective camera at (0, 0, 5) looking at
// the origin.
func NewPerspectiveCamera(fovY, aspect, near, far float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		cameraPose: newCameraPose(),
		FovY:       fovY,
		Aspect:     aspect,
		Near:       near,
		Far:        far,
	}
}

// ProjectionMatrix returns the camera's projection matrix.
func (c *PerspectiveCamera) ProjectionMatrix() Mat4 {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *PerspectiveCamera) ViewMatrix() Mat4 {
	c.computeMatrices()
	return c.view
}

func (c *PerspectiveCamera) computeMatrices() {
	if c.dirty {
		c.refresh(c.ProjectionMatrix())
	}
}

// Unproject maps an NDC point to world space.
func (c *PerspectiveCamera) Unproject(ndc Vec3) Vec3 {
	c.computeMatrices()
	return c.invProj.MulPoint(ndc)
}

// Ray returns a ray from the eye through the NDC point.
func (c *PerspectiveCamera) Ray(ndc Vec2) Ray {
	c.computeMatrices()
	p := c.invProj.MulPoint(Vec3{ndc.X, ndc.Y, 0.5})
	return Ray{Origin: c.Position, Direction: p.Sub(c.Position).Normalize()}
}

// SetAspect updates the aspect ratio, typically on surface resize.
func (c *PerspectiveCamera) SetAspect(aspect float64) {
	if c.Aspect == aspect {
		return
	}
	c.Aspect = aspect
	c.dirty = true
}

// --- Orthographic ---

// OrthographicCamera projects along parallel rays.
type OrthographicCamera struct {
	cameraPose

	// Left, Right, Top and Bottom are the view-volume planes in camera space.
	Left, Right, Top, Bottom float64
	// Near and Far are the clip plane distances.
	Near, Far float64
}

// NewOrthographicCamera creates an orthographic camera at (0, 0, 5) looking
// at the origin.
func NewOrthographicCamera(left, right, top, bottom, near, far float64) *OrthographicCamera {
	return &OrthographicCamera{
		cameraPose: newCameraPose(),
		Left:       left,
		Right:      right,
		Top:        top,
		Bottom:     bottom,
		Near:       near,
		Far:        far,
	}
}

// ProjectionMatrix returns the camera's projection matrix.
func (c *OrthographicCamera) ProjectionMatrix() Mat4 {
	return Orthographic(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *OrthographicCamera) ViewMatrix() Mat4 {
	c.computeMatrices()
	return c.view
}

func (c *OrthographicCamera) computeMatrices() {
	if c.dirty {
		c.refresh(c.ProjectionMatrix())
	}
}

// Unproject maps an NDC point to world space.
func (c *OrthographicCamera) Unproject(ndc Vec3) Vec3 {
	c.computeMatrices()
	return c.invProj.MulPoint(ndc)
}

// Ray returns a ray starting on the near plane under the NDC point, pointing
// along the view direction.
func (c *OrthographicCamera) Ray(ndc Vec2) Ray {
	c.computeMatrices()
	origin := c.invProj.MulPoint(Vec3{ndc.X, ndc.Y, -1})
	dir := c.Target.Sub(c.Position).Normalize()
	if dir == (Vec3{}) {
		dir = Vec3{0, 0, -1}
	}
	return Ray{Origin: origin, Direction: dir}
}
