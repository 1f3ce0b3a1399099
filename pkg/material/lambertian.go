package material

import (
	"math"

	"github.com/glassray/glassray/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (solid or textured)
}

// NewLambertian creates a lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a lambertian material with a texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	scattered := core.NewRay(hit.Point, scatterDirection)

	cosTheta := scatterDirection.Dot(hit.Normal)
	pdf := core.CosineHemispherePdf(cosTheta)

	albedo := l.Albedo.Evaluate(hit.UV, hit.Point)

	return ScatterResult{
		Incoming:    rayIn,
		Scattered:   scattered,
		Attenuation: albedo.Multiply(1.0 / math.Pi),
		PDF:         pdf,
	}, true
}

// EvaluateBRDF returns the constant lambertian BRDF: albedo / π
func (l *Lambertian) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *SurfaceInteraction) core.Vec3 {
	cosTheta := outgoingDir.Dot(hit.Normal)
	if cosTheta <= 0 {
		return core.Vec3{} // Below surface
	}

	albedo := l.Albedo.Evaluate(hit.UV, hit.Point)
	return albedo.Multiply(1.0 / math.Pi)
}

// PDF returns the cosine-weighted hemisphere pdf: cos(θ) / π
func (l *Lambertian) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	cosTheta := outgoingDir.Dot(normal)
	if cosTheta <= 0 {
		return 0.0, false
	}
	return cosTheta / math.Pi, false // Not a delta function
}
