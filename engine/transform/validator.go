package transform

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultMaxLocation bounds each location component. It keeps positions inside the range
	// a 16.16 fixed-point model matrix can represent.
	DefaultMaxLocation float32 = 32000

	// DefaultMaxScale bounds each scale component.
	DefaultMaxScale float32 = 1000
)

type validatorImpl struct {
	maxLocation float32
	maxScale    float32
}

// Validator decides whether a location/scale pair is safe to compose into a model matrix.
type Validator interface {
	// IsSafe reports whether every component of loc and scale is finite and within range.
	//
	// Parameters:
	//   - loc: the world location
	//   - scale: the per-axis scale
	//
	// Returns:
	//   - bool: true if both vectors may be used for matrix composition
	IsSafe(loc, scale mgl32.Vec3) bool

	// Sanitize applies the fail-safe degrade to an unsafe transform: the location is reset
	// to the origin, an out-of-range scale to unit scale and a non-finite rotation to identity.
	// Safe transforms are left untouched.
	//
	// Parameters:
	//   - t: the transform to check and repair in place
	//
	// Returns:
	//   - bool: true if the transform was safe, false if it was reset
	Sanitize(t *Transform) bool

	// MaxLocation returns the largest accepted absolute location component.
	MaxLocation() float32

	// MaxScale returns the largest accepted absolute scale component.
	MaxScale() float32
}

var _ Validator = &validatorImpl{}

// NewValidator creates a Validator with the provided options applied over the defaults.
//
// Parameters:
//   - options: functional options for the accepted numeric range
//
// Returns:
//   - Validator: the configured validator
func NewValidator(options ...ValidatorBuilderOption) Validator {
	v := &validatorImpl{
		maxLocation: DefaultMaxLocation,
		maxScale:    DefaultMaxScale,
	}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// DefaultValidator returns a Validator using DefaultMaxLocation and DefaultMaxScale.
func DefaultValidator() Validator {
	return NewValidator()
}

func (v *validatorImpl) IsSafe(loc, scale mgl32.Vec3) bool {
	return withinRange(loc, v.maxLocation) && withinRange(scale, v.maxScale)
}

func (v *validatorImpl) Sanitize(t *Transform) bool {
	rotationSafe := finiteQuat(t.Rotation)
	if rotationSafe && v.IsSafe(t.Location, t.Scale) {
		return true
	}
	t.Location = mgl32.Vec3{}
	if !withinRange(t.Scale, v.maxScale) {
		t.Scale = mgl32.Vec3{1, 1, 1}
	}
	if !rotationSafe {
		t.Rotation = mgl32.QuatIdent()
	}
	return false
}

func (v *validatorImpl) MaxLocation() float32 {
	return v.maxLocation
}

func (v *validatorImpl) MaxScale() float32 {
	return v.maxScale
}

// finiteQuat reports whether every quaternion component is finite. Normalize passes NaN through.
func finiteQuat(q mgl32.Quat) bool {
	return common.IsFinite(q.W) && common.IsFiniteVec3(q.V)
}

// withinRange reports whether every component is finite with magnitude at most limit.
func withinRange(vec mgl32.Vec3, limit float32) bool {
	if !common.IsFiniteVec3(vec) {
		return false
	}
	for _, c := range vec {
		if c > limit || c < -limit {
			return false
		}
	}
	return true
}
