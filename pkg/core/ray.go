package core

import "math"

// DefaultRayEpsilon is the near bound used to avoid self-intersection
const DefaultRayEpsilon = 1e-4

// Ray represents a ray with an origin, direction and a valid parameter interval.
// TMax is mutable: intersection queries shrink it as closer hits are found, so
// repeated queries against multiple primitives keep only the nearest hit.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray with the default interval [epsilon, +inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: DefaultRayEpsilon, TMax: math.Inf(1)}
}

// NewRayInterval creates a ray with an explicit valid interval
func NewRayInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// SetFarT shrinks the far bound of the ray's valid interval
func (r *Ray) SetFarT(t float64) {
	r.TMax = t
}
