package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/geodx/pkg/math3d"
)

// Defaults for the planet viewer.
const (
	DefaultFOV      = 0.87
	DefaultDistance = 2000.0
)

// ErrInvalidFOV is returned for a field of view outside (0, π).
var ErrInvalidFOV = errors.New("camera field of view must be in (0, π)")

// Camera is a rigid transform from camera space to world space plus a
// horizontal field of view. The camera looks along its local +Z; local +Y
// is screen up.
type Camera struct {
	Transform math3d.Affine
	FOV       float64 // Horizontal field of view in radians
}

// NewCamera creates a camera at (0, 0, -distance) with identity rotation,
// looking at the origin.
func NewCamera(fov, distance float64) *Camera {
	return &Camera{
		Transform: math3d.Translate(math3d.V3(0, 0, -distance)),
		FOV:       fov,
	}
}

// Validate checks the projection parameters.
func (c *Camera) Validate() error {
	if !(c.FOV > 0 && c.FOV < math.Pi) {
		return fmt.Errorf("%w: %v", ErrInvalidFOV, c.FOV)
	}
	return nil
}

// ViewTransform maps world space into camera space.
func (c *Camera) ViewTransform() math3d.Affine {
	return c.Transform.RigidInverse()
}

// ProjectionDistance is the eye-to-screen distance in pixels for a
// viewport width: half the width over tan(fov/2).
func ProjectionDistance(fov float64, width int) float64 {
	return 0.5 * float64(width) / math.Tan(fov/2)
}

// Position returns the camera origin in world space.
func (c *Camera) Position() math3d.Vec3 {
	return c.Transform.Translation()
}

// Forward returns the world-space viewing direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Transform.Column(2)
}

// Right returns the world-space screen-right direction.
func (c *Camera) Right() math3d.Vec3 {
	return c.Transform.Column(0)
}

// Up returns the world-space screen-up direction.
func (c *Camera) Up() math3d.Vec3 {
	return c.Transform.Column(1)
}

// local returns the translation expressed in the camera's own axes.
func (c *Camera) local() math3d.Vec3 {
	return c.Transform.Linear().RigidInverse().ApplyDir(c.Transform.Translation())
}

// Distance returns how far the camera sits behind the origin along its
// own Z axis.
func (c *Camera) Distance() float64 {
	return -c.local().Z
}

// SetDistance moves the camera along its own Z axis so that it sits d
// behind the origin. The lateral offset is preserved.
func (c *Camera) SetDistance(d float64) {
	l := c.local()
	l.Z = -d
	c.Transform.SetTranslation(c.Transform.Linear().Apply(l))
}

// Rotate pre-multiplies the camera transform by r, orbiting the camera
// around the world origin.
func (c *Camera) Rotate(r math3d.Affine) {
	c.Transform = r.Mul(c.Transform)
}
