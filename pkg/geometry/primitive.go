package geometry

import (
	"github.com/glassray/glassray/pkg/core"
)

// MeshIntersection is the per-hit differential geometry record.
// It is transient: produced by Intersect, consumed by ReconstructShadingInfo
// and the pdf queries within the same shading computation.
type MeshIntersection struct {
	Ng       core.Vec3 // oracle-reported geometric normal (winding-derived, unnormalized)
	Point    core.Vec3 // world-space hit point, recomputed as origin + direction*t
	U, V     float64   // barycentric coordinates within the triangle
	Triangle int32     // triangle id (index into the mesh's triangle array)
	Geom     int32     // secondary id reported by the oracle
	BackSide bool      // true when the ray struck the winding-derived back face
}

// ShadingInfo is the reconstructed shading data at a hit point
type ShadingInfo struct {
	Point           core.Vec3
	GeometricNormal core.Vec3 // outward normal, opposite the oracle's raw winding normal
	ShadingNormal   core.Vec3 // interpolated vertex normal when smoothing is on
	UV              core.Vec2
}

// LightSample carries the inputs and outputs of one light sampling call.
// For inbound sampling, Point is the reference (shading) point on input;
// for outbound sampling, Point receives the sampled emission point.
// Sampler is caller-owned random state; the mesh only draws from it.
type LightSample struct {
	Point     core.Vec3
	Direction core.Vec3
	Distance  float64
	PDF       float64
	Sampler   core.Sampler
}

// Primitive is the capability set of renderable geometry: intersection,
// shading reconstruction, and area-light sampling, bracketed by the
// prepare/cleanup lifecycle.
type Primitive interface {
	PrepareForRender()
	CleanupAfterRender()

	Intersect(ray *core.Ray, isect *MeshIntersection) bool
	Occluded(ray core.Ray) bool
	Bounds() core.AABB

	ReconstructShadingInfo(isect *MeshIntersection) ShadingInfo
	TangentSpace(isect *MeshIntersection) (core.Vec3, core.Vec3, bool)

	Area() float64
	MakeSamplable()
	IsSamplable() bool
	SampleInboundDirection(sample *LightSample) bool
	SampleOutboundDirection(sample *LightSample) bool
	InboundPdf(isect *MeshIntersection, point, direction core.Vec3) float64
}
