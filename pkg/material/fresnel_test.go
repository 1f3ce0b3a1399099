package material

import (
	"math"
	"testing"

	"github.com/glassray/glassray/pkg/core"
)

func TestDielectricReflectance_MatchedMedia(t *testing.T) {
	// eta = 1 means no interface: nothing reflects at any angle
	for _, cosThetaI := range []float64{1.0, 0.7, 0.3, 0.01} {
		r, cosThetaT := DielectricReflectance(1.0, cosThetaI)
		if r != 0 {
			t.Errorf("cosThetaI=%v: reflectance %g, expected 0", cosThetaI, r)
		}
		if math.Abs(cosThetaT-cosThetaI) > 1e-12 {
			t.Errorf("cosThetaI=%v: cosThetaT %g, expected unchanged", cosThetaI, cosThetaT)
		}
	}
}

func TestDielectricReflectance_NormalIncidence(t *testing.T) {
	// Air to glass (n=1.5): ((1-n)/(1+n))^2 = 0.04
	r, cosThetaT := DielectricReflectance(1.0/1.5, 1.0)
	if math.Abs(r-0.04) > 1e-12 {
		t.Errorf("Normal-incidence reflectance %g, expected 0.04", r)
	}
	if math.Abs(cosThetaT-1.0) > 1e-12 {
		t.Errorf("cosThetaT %g, expected 1", cosThetaT)
	}
}

func TestDielectricReflectance_GrazingIncidence(t *testing.T) {
	r, _ := DielectricReflectance(1.0/1.5, 1e-6)
	if r < 0.999 {
		t.Errorf("Grazing reflectance %g, expected ~1", r)
	}
}

func TestDielectricReflectance_MonotonicInAngle(t *testing.T) {
	// Reflectance never decreases as incidence gets shallower
	prev := -1.0
	for cosThetaI := 1.0; cosThetaI > 0.01; cosThetaI -= 0.01 {
		r, _ := DielectricReflectance(1.0/1.5, cosThetaI)
		if r < prev-1e-12 {
			t.Fatalf("Reflectance decreased to %g at cosThetaI=%g", r, cosThetaI)
		}
		if r < 0 || r > 1 {
			t.Fatalf("Reflectance %g out of [0, 1]", r)
		}
		prev = r
	}
}

func TestDielectricReflectance_TotalInternalReflection(t *testing.T) {
	// Glass to air past the critical angle (~41.8 degrees)
	r, cosThetaT := DielectricReflectance(1.5, 0.5)
	if r != 1.0 {
		t.Errorf("TIR reflectance %g, expected exactly 1", r)
	}
	if cosThetaT != 0 {
		t.Errorf("TIR cosThetaT %g, expected 0", cosThetaT)
	}

	// Just inside the critical angle there is still transmission
	r, cosThetaT = DielectricReflectance(1.5, 0.8)
	if r >= 1.0 || cosThetaT <= 0 {
		t.Errorf("Sub-critical angle: reflectance %g, cosThetaT %g", r, cosThetaT)
	}
}

func TestThinSheetReflectance(t *testing.T) {
	// Sheet reflectance folds the internal bounce series: 2r/(1+r)
	single, _ := DielectricReflectance(1.0/1.5, 1.0)
	sheet, _ := ThinSheetReflectance(1.0/1.5, 1.0)
	expected := 2.0 * single / (1.0 + single)
	if math.Abs(sheet-expected) > 1e-12 {
		t.Errorf("Sheet reflectance %g, expected %g", sheet, expected)
	}
	if sheet <= single {
		t.Error("Sheet reflectance must exceed the single-interface value")
	}

	// Matched media: still zero
	if sheet, _ := ThinSheetReflectance(1.0, 0.7); sheet != 0 {
		t.Errorf("Matched-media sheet reflectance %g, expected 0", sheet)
	}

	// TIR saturates at 1, not beyond
	if sheet, _ := ThinSheetReflectance(1.5, 0.5); sheet != 1.0 {
		t.Errorf("TIR sheet reflectance %g, expected 1", sheet)
	}
}

func TestReflect(t *testing.T) {
	v := core.NewVec3(1, -1, 0).Normalize()
	n := core.NewVec3(0, 1, 0)
	reflected := Reflect(v, n)
	expected := core.NewVec3(1, 1, 0).Normalize()
	if reflected.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Reflect %v, expected %v", reflected, expected)
	}
}

func TestRefract_StraightThroughAtNormalIncidence(t *testing.T) {
	uv := core.NewVec3(0, 0, -1)
	n := core.NewVec3(0, 0, 1)
	refracted := Refract(uv, n, 1.0/1.5)
	if refracted.Subtract(uv).Length() > 1e-12 {
		t.Errorf("Normal-incidence refraction %v, expected %v", refracted, uv)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	// 45 degrees into glass: sin(thetaT) = sin(45)/1.5
	uv := core.NewVec3(1, 0, -1).Normalize()
	n := core.NewVec3(0, 0, 1)
	refracted := Refract(uv, n, 1.0/1.5)

	sinThetaT := math.Abs(refracted.X)
	expected := (math.Sqrt2 / 2.0) / 1.5
	if math.Abs(sinThetaT-expected) > 1e-12 {
		t.Errorf("sin(thetaT) = %g, expected %g", sinThetaT, expected)
	}
	if math.Abs(refracted.Length()-1.0) > 1e-12 {
		t.Errorf("Refracted direction %v not normalized", refracted)
	}
}
