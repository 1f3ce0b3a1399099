package material

import (
	"math"

	"github.com/glassray/glassray/pkg/core"
)

// DielectricReflectance computes the exact unpolarized Fresnel reflectance at
// a dielectric interface. eta is the relative index of refraction across the
// interface (incident medium over transmitted medium), cosThetaI the cosine of
// the incidence angle. Past the critical angle (total internal reflection) the
// reflectance is 1 and the returned cosThetaT is 0.
func DielectricReflectance(eta, cosThetaI float64) (reflectance, cosThetaT float64) {
	sinThetaTSq := eta * eta * (1.0 - cosThetaI*cosThetaI)
	if sinThetaTSq > 1.0 {
		return 1.0, 0.0
	}
	cosThetaT = math.Sqrt(math.Max(1.0-sinThetaTSq, 0.0))

	rs := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rp := (eta*cosThetaT - cosThetaI) / (eta*cosThetaT + cosThetaI)

	return (rs*rs + rp*rp) * 0.5, cosThetaT
}

// ThinSheetReflectance is the effective reflectance of a thin dielectric
// sheet: the geometric series of internal bounces between its two parallel
// interfaces summed in closed form, ignoring interference and absorption.
// With single-interface reflectance r the series collapses to 2r/(1+r).
func ThinSheetReflectance(eta, cosThetaI float64) (reflectance, cosThetaT float64) {
	r, cosThetaT := DielectricReflectance(eta, cosThetaI)
	return 2.0 * r / (1.0 + r), cosThetaT
}

// Reflect mirrors a direction about a surface normal: v - 2*dot(v,n)*n
func Reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends a unit direction across an interface according to Snell's law.
// etaRatio is the incident IOR over the transmitted IOR. Callers must have
// checked for total internal reflection first.
func Refract(uv, n core.Vec3, etaRatio float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaRatio)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}
