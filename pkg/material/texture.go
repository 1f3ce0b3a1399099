package material

import (
	"github.com/glassray/glassray/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScalarSource provides spatially-varying scalar fields, e.g. sheet thickness
type ScalarSource interface {
	Evaluate(uv core.Vec2, point core.Vec3) float64
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// SolidScalar provides a uniform scalar value
type SolidScalar struct {
	Value float64
}

// NewSolidScalar creates a new uniform scalar source
func NewSolidScalar(value float64) *SolidScalar {
	return &SolidScalar{Value: value}
}

// Evaluate returns the scalar regardless of UV or position
func (s *SolidScalar) Evaluate(uv core.Vec2, point core.Vec3) float64 {
	return s.Value
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	// Wrap UV coordinates to [0, 1]
	u := uv.X - float64(int(uv.X))
	v := uv.Y - float64(int(uv.Y))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return t.Pixels[y*t.Width+x]
}

// ScalarImage adapts a ColorSource into a scalar field via luminance,
// letting grayscale thickness maps drive the thin-sheet BSDF
type ScalarImage struct {
	Source ColorSource
	Scale  float64
}

// NewScalarImage creates a luminance-based scalar source with the given scale
func NewScalarImage(source ColorSource, scale float64) *ScalarImage {
	return &ScalarImage{Source: source, Scale: scale}
}

// Evaluate returns the scaled luminance of the underlying color source
func (s *ScalarImage) Evaluate(uv core.Vec2, point core.Vec3) float64 {
	return s.Source.Evaluate(uv, point).Luminance() * s.Scale
}
