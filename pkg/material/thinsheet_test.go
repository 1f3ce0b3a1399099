package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/glassray/glassray/pkg/core"
)

func sheetHit(normal core.Vec3) SurfaceInteraction {
	return SurfaceInteraction{
		Point:  core.NewVec3(0, 0, 0),
		Normal: normal,
		UV:     core.NewVec2(0.5, 0.5),
	}
}

func TestThinSheet_MatchedMediaTransmitsUndeviated(t *testing.T) {
	sheet := NewThinSheet(1.0, 0.1, core.Vec3{})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := sheetHit(core.NewVec3(0, 0, 1))

	for i := 0; i < 1000; i++ {
		result, ok := sheet.Scatter(rayIn, hit, sampler)
		if !ok {
			t.Fatal("Expected scattering")
		}
		if result.Scattered.Direction.Subtract(rayIn.Direction).Length() > 1e-12 {
			t.Fatalf("Matched media must transmit undeviated, got %v", result.Scattered.Direction)
		}
		if result.Attenuation.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-12 {
			t.Fatalf("Absorption-free transmission weight %v, expected 1", result.Attenuation)
		}
		if !result.IsSpecular() {
			t.Fatal("Thin sheet scattering must be specular")
		}
	}
}

func TestThinSheet_ReflectionFractionMatchesFresnel(t *testing.T) {
	const ior = 1.5
	sheet := NewThinSheet(ior, 0, core.Vec3{})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := sheetHit(core.NewVec3(0, 0, 1))

	const draws = 100000
	reflected := 0
	for i := 0; i < draws; i++ {
		result, ok := sheet.Scatter(rayIn, hit, sampler)
		if !ok {
			t.Fatal("Expected scattering")
		}
		switch {
		case result.Scattered.Direction.Z > 0.999:
			reflected++
		case result.Scattered.Direction.Z < -0.999:
			// transmitted
		default:
			t.Fatalf("Direction %v is neither mirror nor straight-through", result.Scattered.Direction)
		}
	}

	expected, _ := ThinSheetReflectance(1.0/ior, 1.0)
	fraction := float64(reflected) / float64(draws)
	if math.Abs(fraction-expected) > 0.005 {
		t.Errorf("Reflected %.2f%% of samples, expected %.2f%%", fraction*100, expected*100)
	}
}

func TestThinSheet_TotalInternalReflection(t *testing.T) {
	// Sheet less dense than the surroundings: past the critical angle every
	// sample reflects
	sheet := NewThinSheet(0.6, 0.1, core.Vec3{})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	halfSqrt3 := math.Sqrt(3) / 2
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(halfSqrt3, 0, -0.5))
	hit := sheetHit(core.NewVec3(0, 0, 1))
	expected := core.NewVec3(halfSqrt3, 0, 0.5)

	for i := 0; i < 1000; i++ {
		result, ok := sheet.Scatter(rayIn, hit, sampler)
		if !ok {
			t.Fatal("Expected scattering")
		}
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
			t.Fatalf("Past the critical angle every sample must mirror, got %v",
				result.Scattered.Direction)
		}
		if result.Attenuation.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-12 {
			t.Fatal("Reflection must carry unit weight")
		}
	}
}

func TestThinSheet_BeerLambertAbsorption(t *testing.T) {
	sigmaA := core.NewVec3(1, 2, 3)
	const thickness = 0.5
	// Matched media so every sample transmits and cosThetaT equals cosThetaI
	sheet := NewThinSheet(1.0, thickness, sigmaA)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := sheetHit(core.NewVec3(0, 0, 1))

	result, ok := sheet.Scatter(rayIn, hit, sampler)
	if !ok {
		t.Fatal("Expected scattering")
	}
	expected := sigmaA.Multiply(-thickness).Exp()
	if result.Attenuation.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Attenuation %v, expected %v", result.Attenuation, expected)
	}
}

func TestThinSheet_AbsorptionFollowsSlantPath(t *testing.T) {
	sigmaA := core.NewVec3(0.7, 0.7, 0.7)
	const thickness = 0.5
	sheet := NewThinSheet(1.0, thickness, sigmaA)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// 60 degrees off normal: the path through the film doubles
	halfSqrt3 := math.Sqrt(3) / 2
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(halfSqrt3, 0, -0.5))
	hit := sheetHit(core.NewVec3(0, 0, 1))

	result, ok := sheet.Scatter(rayIn, hit, sampler)
	if !ok {
		t.Fatal("Expected scattering")
	}
	expected := sigmaA.Multiply(-thickness / 0.5).Exp()
	if result.Attenuation.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Slant-path attenuation %v, expected %v", result.Attenuation, expected)
	}
}

func TestThinSheet_ZeroThicknessSkipsAbsorption(t *testing.T) {
	sheet := NewThinSheet(1.0, 0, core.NewVec3(5, 5, 5))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	result, ok := sheet.Scatter(rayIn, sheetHit(core.NewVec3(0, 0, 1)), sampler)
	if !ok {
		t.Fatal("Expected scattering")
	}
	if result.Attenuation.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-12 {
		t.Errorf("Zero-thickness attenuation %v, expected 1", result.Attenuation)
	}
}

func TestThinSheet_TexturedThickness(t *testing.T) {
	// Thickness field driven by a grayscale map: white pixel = full thickness
	pixels := []core.Vec3{core.NewVec3(1, 1, 1)}
	field := NewScalarImage(NewImageTexture(1, 1, pixels), 0.25)
	sigmaA := core.NewVec3(2, 2, 2)
	sheet := NewTexturedThinSheet(1.0, field, sigmaA)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	result, ok := sheet.Scatter(rayIn, sheetHit(core.NewVec3(0, 0, 1)), sampler)
	if !ok {
		t.Fatal("Expected scattering")
	}
	expected := sigmaA.Multiply(-0.25).Exp()
	if result.Attenuation.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Textured attenuation %v, expected %v", result.Attenuation, expected)
	}
}

func TestThinSheet_BothSidesBehaveIdentically(t *testing.T) {
	// Hitting the sheet from behind gives the same reflectance statistics:
	// the interaction only depends on |cos(thetaI)|
	const ior = 1.5
	sheet := NewThinSheet(ior, 0, core.Vec3{})
	hit := sheetHit(core.NewVec3(0, 0, 1))

	count := func(dir core.Vec3, seed int64) int {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		rayIn := core.NewRay(dir.Negate(), dir)
		reflected := 0
		for i := 0; i < 50000; i++ {
			result, ok := sheet.Scatter(rayIn, hit, sampler)
			if !ok {
				t.Fatal("Expected scattering")
			}
			if result.Scattered.Direction.Dot(dir) < 0 {
				reflected++
			}
		}
		return reflected
	}

	front := count(core.NewVec3(0, 0, -1), 42)
	back := count(core.NewVec3(0, 0, 1), 43)
	if math.Abs(float64(front-back))/50000 > 0.01 {
		t.Errorf("Front/back reflection counts differ: %d vs %d", front, back)
	}
}

func TestThinSheet_DegenerateInputsFail(t *testing.T) {
	sheet := NewThinSheet(1.5, 0.1, core.Vec3{})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	nan := math.NaN()
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(nan, nan, nan))
	if _, ok := sheet.Scatter(rayIn, sheetHit(core.NewVec3(0, 0, 1)), sampler); ok {
		t.Error("NaN direction should fail to scatter")
	}

	rayIn = core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	if _, ok := sheet.Scatter(rayIn, sheetHit(core.Vec3{}), sampler); ok {
		t.Error("Zero normal should fail to scatter")
	}
}

func TestThinSheet_DeltaQueries(t *testing.T) {
	sheet := NewThinSheet(1.5, 0.1, core.Vec3{})

	hit := sheetHit(core.NewVec3(0, 0, 1))
	brdf := sheet.EvaluateBRDF(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), &hit)
	if !brdf.IsZero() {
		t.Errorf("Delta BSDF evaluation %v, expected zero", brdf)
	}

	pdf, isDelta := sheet.PDF(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	if pdf != 0 || !isDelta {
		t.Errorf("PDF = (%g, %v), expected (0, true)", pdf, isDelta)
	}
}

func TestThinSheet_IORAccessor(t *testing.T) {
	if got := NewThinSheet(1.33, 0.1, core.Vec3{}).IOR(); got != 1.33 {
		t.Errorf("IOR() = %g, expected 1.33", got)
	}
}

func TestNewTexturedThinSheet_RejectsNonPositiveIOR(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for non-positive ior")
		}
	}()
	NewThinSheet(0, 0.1, core.Vec3{})
}
