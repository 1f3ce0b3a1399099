package material

import (
	"github.com/glassray/glassray/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter generates a scattered ray by sampling the material's lobes
	Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool)

	// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions.
	// Delta (specular) materials return zero: no externally supplied direction
	// can match the delta exactly, so transport goes through Scatter only.
	EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *SurfaceInteraction) core.Vec3

	// PDF calculates the probability density for specific incoming/outgoing directions.
	// Returns (pdf, isDelta); isDelta tells integrators to skip direct-lighting
	// evaluation against this material and use an MIS weight of 1 for its lobe.
	PDF(incomingDir, outgoingDir, normal core.Vec3) (pdf float64, isDelta bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(rayIn core.Ray) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Incoming    core.Ray  // The incoming ray
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Contribution weight of the chosen lobe
	PDF         float64   // Probability density (0 for specular materials)
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// SurfaceInteraction contains the shading data a material needs at a hit point
type SurfaceInteraction struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Shading normal, oriented toward the incoming ray
	UV        core.Vec2 // Texture coordinate at the hit
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}
