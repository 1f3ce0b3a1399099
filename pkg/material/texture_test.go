package material

import (
	"math"
	"testing"

	"github.com/glassray/glassray/pkg/core"
)

func TestSolidSources(t *testing.T) {
	color := NewSolidColor(core.NewVec3(0.2, 0.4, 0.6))
	if got := color.Evaluate(core.NewVec2(0.9, 0.1), core.NewVec3(5, 5, 5)); got != core.NewVec3(0.2, 0.4, 0.6) {
		t.Errorf("SolidColor = %v", got)
	}

	scalar := NewSolidScalar(0.75)
	if got := scalar.Evaluate(core.NewVec2(0, 0), core.Vec3{}); got != 0.75 {
		t.Errorf("SolidScalar = %v", got)
	}
}

func TestImageTexture_CornersAndWrap(t *testing.T) {
	// 2x2 checker, row-major with row 0 at the image top
	pixels := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1),
	}
	tex := NewImageTexture(2, 2, pixels)

	// V=0 is the bottom row
	if got := tex.Evaluate(core.NewVec2(0.1, 0.1), core.Vec3{}); got != core.NewVec3(0, 0, 1) {
		t.Errorf("Bottom-left = %v, expected blue", got)
	}
	if got := tex.Evaluate(core.NewVec2(0.9, 0.9), core.Vec3{}); got != core.NewVec3(0, 1, 0) {
		t.Errorf("Top-right = %v, expected green", got)
	}

	// UVs outside [0, 1] wrap
	inside := tex.Evaluate(core.NewVec2(0.1, 0.1), core.Vec3{})
	wrapped := tex.Evaluate(core.NewVec2(1.1, -0.9), core.Vec3{})
	if inside != wrapped {
		t.Errorf("Wrapped lookup %v differs from in-range lookup %v", wrapped, inside)
	}
}

func TestScalarImage_Luminance(t *testing.T) {
	pixels := []core.Vec3{core.NewVec3(1, 1, 1)}
	field := NewScalarImage(NewImageTexture(1, 1, pixels), 2.0)

	got := field.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
	if math.Abs(got-2.0) > 1e-12 {
		t.Errorf("White pixel at scale 2 = %v, expected 2", got)
	}
}
