package material

import (
	"github.com/glassray/glassray/pkg/core"
)

// ThinSheet is a perfectly specular BSDF modeling a thin dielectric sheet
// (a soap film or glass pane) of spatially varying thickness, optionally
// tinted by volumetric absorption. Both interfaces of the sheet are folded
// into a single scattering event: the effective reflectance sums the internal
// bounce series in closed form, and transmission exits the far side
// undeviated (the exit refraction exactly undoes the entry refraction for
// parallel interfaces).
type ThinSheet struct {
	ior       float64      // relative index of refraction of the sheet (> 0)
	thickness ScalarSource // sheet thickness looked up per shading point (>= 0)
	sigmaA    core.Vec3    // absorption coefficient per unit length (component-wise >= 0)
}

// NewThinSheet creates a thin-sheet BSDF with uniform thickness
func NewThinSheet(ior, thickness float64, sigmaA core.Vec3) *ThinSheet {
	return NewTexturedThinSheet(ior, NewSolidScalar(thickness), sigmaA)
}

// NewTexturedThinSheet creates a thin-sheet BSDF with a thickness field
func NewTexturedThinSheet(ior float64, thickness ScalarSource, sigmaA core.Vec3) *ThinSheet {
	if ior <= 0 {
		panic("thin sheet ior must be positive")
	}
	return &ThinSheet{ior: ior, thickness: thickness, sigmaA: sigmaA}
}

// IOR exposes the relative index of refraction so neighboring media can
// compose correctly across sheet boundaries
func (ts *ThinSheet) IOR() float64 {
	return ts.ior
}

// Scatter implements the Material interface. The lobe is chosen
// stochastically with probability equal to its contribution weight, so the
// returned attenuation is 1 for reflection and the Beer-Lambert factor for
// transmission (the ratio of contribution to selection probability).
func (ts *ThinSheet) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	unitDir := rayIn.Direction.Normalize()
	if unitDir.HasNaN() || hit.Normal.IsZero() {
		return ScatterResult{}, false
	}

	cosThetaI := -unitDir.Dot(hit.Normal)
	if cosThetaI < 0 {
		cosThetaI = -cosThetaI
	}

	// Entering from the outside medium into the denser sheet
	reflectance, cosThetaT := ThinSheetReflectance(1.0/ts.ior, cosThetaI)

	var direction core.Vec3
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	if sampler.Get1D() < reflectance {
		direction = Reflect(unitDir, hit.Normal)
	} else {
		// Transmission through both parallel interfaces is undeviated
		direction = unitDir

		if !ts.sigmaA.IsZero() {
			thickness := ts.thickness.Evaluate(hit.UV, hit.Point)
			if thickness > 0 {
				// Slant path through the film along the refracted angle
				pathLength := thickness / cosThetaT
				attenuation = ts.sigmaA.Multiply(-pathLength).Exp()
			}
		}
	}

	if direction.HasNaN() {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Incoming:    rayIn,
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
		PDF:         0, // delta distribution
	}, true
}

// EvaluateBRDF returns zero for every externally supplied direction: all
// scattering mass is concentrated on the directions chosen by Scatter
func (ts *ThinSheet) EvaluateBRDF(incomingDir, outgoingDir core.Vec3, hit *SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// PDF returns (0, true): a delta distribution that direct queries can never match
func (ts *ThinSheet) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0.0, true
}
