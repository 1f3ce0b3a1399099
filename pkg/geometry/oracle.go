package geometry

import (
	"github.com/glassray/glassray/pkg/core"
)

// Triangle holds the three vertex indices of one mesh triangle.
// Its position in the mesh's triangle array is its stable 32-bit id.
type Triangle struct {
	V0, V1, V2 int
}

// TriangleHit is the raw intersection report from an acceleration structure.
// Ng is the winding-derived geometric normal (e1 × e2), left unnormalized;
// U and V are barycentric coordinates of the hit within the triangle.
type TriangleHit struct {
	T        float64
	Ng       core.Vec3
	U, V     float64
	Triangle int32
	Geom     int32
}

// Accel answers ray queries against a built triangle set.
// Implementations must be safe for concurrent use once built.
type Accel interface {
	// Intersect reports the nearest hit within the ray's valid interval
	Intersect(ray core.Ray) (TriangleHit, bool)
	// Occluded reports whether anything blocks the ray within its interval.
	// It may exit early on any hit and never allocates a hit record.
	Occluded(ray core.Ray) bool
}

// Oracle builds acceleration structures over indexed triangle sets
type Oracle interface {
	Build(positions []core.Vec3, triangles []Triangle, geomID int32) Accel
}
