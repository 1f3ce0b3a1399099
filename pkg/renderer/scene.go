package renderer

import (
	"github.com/glassray/glassray/pkg/core"
	"github.com/glassray/glassray/pkg/geometry"
	"github.com/glassray/glassray/pkg/material"
)

// Scene holds the meshes to render. Lights is the subset of meshes with
// emissive materials, sampled for direct lighting; each must have had
// MakeSamplable called during scene preparation.
type Scene struct {
	Meshes []*geometry.TriangleMesh
	Lights []*geometry.TriangleMesh

	// Background returns the radiance of an escaped ray
	Background func(ray core.Ray) core.Vec3
}

// PrepareForRender runs the single-threaded setup barrier on all meshes
func (s *Scene) PrepareForRender() {
	for _, m := range s.Meshes {
		m.PrepareForRender()
	}
	for _, l := range s.Lights {
		l.MakeSamplable()
	}
}

// CleanupAfterRender releases all render-time resources
func (s *Scene) CleanupAfterRender() {
	for _, m := range s.Meshes {
		m.CleanupAfterRender()
	}
}

// Intersect finds the nearest hit among all meshes. The ray's far bound
// shrinks as closer hits are found, so later meshes only report closer hits.
func (s *Scene) Intersect(ray *core.Ray, isect *geometry.MeshIntersection) (*geometry.TriangleMesh, bool) {
	var hitMesh *geometry.TriangleMesh
	for _, m := range s.Meshes {
		if m.Intersect(ray, isect) {
			hitMesh = m
		}
	}
	return hitMesh, hitMesh != nil
}

// Occluded reports whether the ray is blocked by any mesh
func (s *Scene) Occluded(ray core.Ray) bool {
	for _, m := range s.Meshes {
		if m.Occluded(ray) {
			return true
		}
	}
	return false
}

// GradientBackground returns a vertical sky gradient
func GradientBackground(top, bottom core.Vec3) func(core.Ray) core.Vec3 {
	return func(ray core.Ray) core.Vec3 {
		t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
		return bottom.Multiply(1.0 - t).Add(top.Multiply(t))
	}
}

// emissionOf returns the material's emission, or zero for non-emitters
func emissionOf(mat material.Material, ray core.Ray) core.Vec3 {
	if emitter, ok := mat.(material.Emitter); ok {
		return emitter.Emit(ray)
	}
	return core.Vec3{}
}
