package geometry

import (
	"sort"

	"github.com/glassray/glassray/pkg/core"
)

// BVHOracle builds median-split bounding volume hierarchies over triangle sets.
// It is the default Oracle implementation for TriangleMesh.
type BVHOracle struct{}

// NewBVHOracle creates the default oracle
func NewBVHOracle() *BVHOracle {
	return &BVHOracle{}
}

// Build constructs a BVH over the given indexed triangles.
// Triangle indices must be valid for the positions slice.
func (o *BVHOracle) Build(positions []core.Vec3, triangles []Triangle, geomID int32) Accel {
	tris := make([]bvhTri, len(triangles))
	for i, tri := range triangles {
		if tri.V0 < 0 || tri.V1 < 0 || tri.V2 < 0 ||
			tri.V0 >= len(positions) || tri.V1 >= len(positions) || tri.V2 >= len(positions) {
			panic("triangle index out of bounds")
		}
		p0 := positions[tri.V0]
		p1 := positions[tri.V1]
		p2 := positions[tri.V2]
		tris[i] = bvhTri{
			p0:   p0,
			p1:   p1,
			p2:   p2,
			bbox: core.NewAABBFromPoints(p0, p1, p2),
			id:   int32(i),
		}
	}

	var root *bvhNode
	if len(tris) > 0 {
		root = buildBVHNode(tris)
	}
	return &bvhAccel{root: root, geom: geomID}
}

// bvhTri carries the dereferenced triangle data the traversal needs
type bvhTri struct {
	p0, p1, p2 core.Vec3
	bbox       core.AABB
	id         int32
}

type bvhNode struct {
	bbox  core.AABB
	left  *bvhNode
	right *bvhNode
	tris  []bvhTri // non-nil only for leaves
}

type bvhAccel struct {
	root *bvhNode
	geom int32
}

// Leaf threshold: linear search beats traversal overhead for small groups
const leafThreshold = 8

func buildBVHNode(tris []bvhTri) *bvhNode {
	bbox := tris[0].bbox
	for i := 1; i < len(tris); i++ {
		bbox = bbox.Union(tris[i].bbox)
	}

	if len(tris) <= leafThreshold {
		return &bvhNode{bbox: bbox, tris: tris}
	}

	// Median split along the longest axis of the node bounds
	axis := bbox.LongestAxis()
	sort.Slice(tris, func(i, j int) bool {
		ci := tris[i].bbox.Center()
		cj := tris[j].bbox.Center()
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})

	mid := len(tris) / 2
	return &bvhNode{
		bbox:  bbox,
		left:  buildBVHNode(tris[:mid]),
		right: buildBVHNode(tris[mid:]),
	}
}

// Intersect reports the nearest triangle hit within the ray's interval
func (b *bvhAccel) Intersect(ray core.Ray) (TriangleHit, bool) {
	if b.root == nil {
		return TriangleHit{}, false
	}
	hit := TriangleHit{T: ray.TMax, Geom: b.geom}
	found := b.root.intersect(ray, &hit)
	return hit, found
}

func (n *bvhNode) intersect(ray core.Ray, nearest *TriangleHit) bool {
	// nearest.T carries the shrinking far bound through the traversal
	if !n.bbox.Hit(ray, ray.TMin, nearest.T) {
		return false
	}

	if n.tris != nil {
		found := false
		for i := range n.tris {
			if t, u, v, ok := intersectTriangle(&n.tris[i], ray, nearest.T); ok {
				tri := &n.tris[i]
				nearest.T = t
				nearest.U = u
				nearest.V = v
				nearest.Ng = tri.p1.Subtract(tri.p0).Cross(tri.p2.Subtract(tri.p0))
				nearest.Triangle = tri.id
				found = true
			}
		}
		return found
	}

	hitLeft := n.left.intersect(ray, nearest)
	hitRight := n.right.intersect(ray, nearest)
	return hitLeft || hitRight
}

// Occluded reports whether any triangle blocks the ray within its interval
func (b *bvhAccel) Occluded(ray core.Ray) bool {
	if b.root == nil {
		return false
	}
	return b.root.occluded(ray)
}

func (n *bvhNode) occluded(ray core.Ray) bool {
	if !n.bbox.Hit(ray, ray.TMin, ray.TMax) {
		return false
	}
	if n.tris != nil {
		for i := range n.tris {
			if _, _, _, ok := intersectTriangle(&n.tris[i], ray, ray.TMax); ok {
				return true
			}
		}
		return false
	}
	return n.left.occluded(ray) || n.right.occluded(ray)
}

// intersectTriangle runs the Möller-Trumbore test against one triangle,
// accepting hits in (ray.TMin, tMax)
func intersectTriangle(tri *bvhTri, ray core.Ray, tMax float64) (t, u, v float64, ok bool) {
	const epsilon = 1e-12

	edge1 := tri.p1.Subtract(tri.p0)
	edge2 := tri.p2.Subtract(tri.p0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray parallel to the triangle plane
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(tri.p0)
	u = f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = f * edge2.Dot(q)
	if t < ray.TMin || t > tMax {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
