package geometry

import (
	"fmt"
	"math"

	"github.com/glassray/glassray/pkg/core"
	"github.com/glassray/glassray/pkg/material"
)

// Vertex is one mesh vertex: position, shading normal, texture coordinate
type Vertex struct {
	Position core.Vec3
	Normal   core.Vec3
	UV       core.Vec2
}

// NewVertex creates a new vertex
func NewVertex(position, normal core.Vec3, uv core.Vec2) Vertex {
	return Vertex{Position: position, Normal: normal, UV: uv}
}

// lifecycleState tracks whether render-time caches are valid
type lifecycleState int

const (
	stateUnprepared lifecycleState = iota
	statePrepared
)

// TriangleMesh is a triangulated surface primitive. It owns its geometry,
// delegates ray queries to an acceleration oracle, reconstructs shading
// data from barycentric hits, and supports area-proportional sampling for
// light transport.
//
// Lifecycle: PrepareForRender and CleanupAfterRender are single-threaded
// setup/teardown barriers. Between them the mesh is logically immutable and
// all query operations are safe for concurrent use from many workers.
type TriangleMesh struct {
	name     string
	path     string
	dirty    bool
	smoothed bool

	verts []Vertex
	tris  []Triangle

	transform core.Mat4
	material  material.Material
	oracle    Oracle

	// Render-time state, valid only while prepared
	state      lifecycleState
	tfVerts    []Vertex
	accel      Accel
	triSampler *core.Distribution1D
	totalArea  float64
	bounds     core.AABB
}

// NewTriangleMesh creates a mesh from vertices and triangle indices.
// Triangle indices must be valid for the vertex array.
func NewTriangleMesh(verts []Vertex, tris []Triangle, mat material.Material, name string, smoothed bool) *TriangleMesh {
	for _, t := range tris {
		if t.V0 < 0 || t.V1 < 0 || t.V2 < 0 ||
			t.V0 >= len(verts) || t.V1 >= len(verts) || t.V2 >= len(verts) {
			panic(fmt.Sprintf("mesh %q: triangle index out of bounds", name))
		}
	}

	return &TriangleMesh{
		name:      name,
		path:      name + ".wo3",
		dirty:     true,
		smoothed:  smoothed,
		verts:     verts,
		tris:      tris,
		transform: core.IdentityMat4(),
		material:  mat,
		oracle:    NewBVHOracle(),
	}
}

// SetTransform sets the object-to-world transform. Only valid while unprepared.
func (m *TriangleMesh) SetTransform(transform core.Mat4) {
	m.assertUnprepared("SetTransform")
	m.transform = transform
}

// SetOracle overrides the acceleration oracle. Only valid while unprepared.
func (m *TriangleMesh) SetOracle(oracle Oracle) {
	m.assertUnprepared("SetOracle")
	m.oracle = oracle
}

// PrepareForRender computes object-space bounds, builds the world-space
// transformed-vertex cache, hands the geometry to the oracle, and caches the
// total world-space surface area. Must be called single-threaded before any
// query operation.
func (m *TriangleMesh) PrepareForRender() {
	m.assertUnprepared("PrepareForRender")

	m.ComputeBounds()

	normalTform := m.transform.NormalMatrix()
	m.tfVerts = make([]Vertex, len(m.verts))
	positions := make([]core.Vec3, len(m.verts))
	for i, v := range m.verts {
		m.tfVerts[i] = Vertex{
			Position: m.transform.MulPoint(v.Position),
			Normal:   normalTform.MulVector(v.Normal).Normalize(),
			UV:       v.UV,
		}
		positions[i] = m.tfVerts[i].Position
	}

	m.accel = m.oracle.Build(positions, m.tris, 0)

	m.totalArea = 0
	for _, t := range m.tris {
		m.totalArea += core.TriangleArea(
			m.tfVerts[t.V0].Position,
			m.tfVerts[t.V1].Position,
			m.tfVerts[t.V2].Position,
		)
	}

	m.state = statePrepared
}

// CleanupAfterRender releases the acceleration structure and the
// transformed-vertex cache. Queries are invalid afterward.
func (m *TriangleMesh) CleanupAfterRender() {
	m.accel = nil
	m.tfVerts = nil
	m.triSampler = nil
	m.state = stateUnprepared
}

// Intersect tests the ray against the mesh. On a hit closer than the ray's
// current far bound it shrinks ray.TMax and fills the intersection record;
// otherwise it returns false and leaves both untouched.
func (m *TriangleMesh) Intersect(ray *core.Ray, isect *MeshIntersection) bool {
	m.assertPrepared("Intersect")

	hit, ok := m.accel.Intersect(*ray)
	if !ok || hit.T >= ray.TMax {
		return false
	}

	ray.SetFarT(hit.T)

	isect.Ng = hit.Ng
	// Recompute the hit point from the ray equation rather than trusting an
	// oracle-reported position, to reduce numerical drift
	isect.Point = ray.At(hit.T)
	isect.U = hit.U
	isect.V = hit.V
	isect.Triangle = hit.Triangle
	isect.Geom = hit.Geom
	isect.BackSide = hit.Ng.Dot(ray.Direction) > 0

	return true
}

// Occluded is the binary visibility query used for shadow rays
func (m *TriangleMesh) Occluded(ray core.Ray) bool {
	m.assertPrepared("Occluded")
	return m.accel.Occluded(ray)
}

// ReconstructShadingInfo derives shading geometry from a hit record.
// The geometric normal is the oracle's raw winding normal with the sign
// flipped and renormalized: the outward convention is opposite the engine's.
func (m *TriangleMesh) ReconstructShadingInfo(isect *MeshIntersection) ShadingInfo {
	m.assertPrepared("ReconstructShadingInfo")

	info := ShadingInfo{
		Point:           isect.Point,
		GeometricNormal: isect.Ng.Normalize().Negate(),
	}
	if m.smoothed {
		info.ShadingNormal = m.normalAt(int(isect.Triangle), isect.U, isect.V)
	} else {
		info.ShadingNormal = info.GeometricNormal
	}
	info.UV = m.uvAt(int(isect.Triangle), isect.U, isect.V)
	return info
}

// normalAt barycentric-interpolates the world-space vertex normals
func (m *TriangleMesh) normalAt(triangle int, u, v float64) core.Vec3 {
	t := m.tris[triangle]
	n0 := m.tfVerts[t.V0].Normal
	n1 := m.tfVerts[t.V1].Normal
	n2 := m.tfVerts[t.V2].Normal
	return n0.Multiply(1.0 - u - v).
		Add(n1.Multiply(u)).
		Add(n2.Multiply(v)).
		Normalize()
}

// uvAt barycentric-interpolates the vertex texture coordinates
func (m *TriangleMesh) uvAt(triangle int, u, v float64) core.Vec2 {
	t := m.tris[triangle]
	uv0 := m.tfVerts[t.V0].UV
	uv1 := m.tfVerts[t.V1].UV
	uv2 := m.tfVerts[t.V2].UV
	return uv0.Multiply(1.0 - u - v).
		Add(uv1.Multiply(u)).
		Add(uv2.Multiply(v))
}

// TangentSpace solves the triangle's edge/UV-delta system for a tangent and
// bitangent consistent with the UV parametrization. It fails when the UV
// determinant is degenerate; callers fall back to an arbitrary orthonormal
// frame about the shading normal.
func (m *TriangleMesh) TangentSpace(isect *MeshIntersection) (core.Vec3, core.Vec3, bool) {
	m.assertPrepared("TangentSpace")

	t := m.tris[isect.Triangle]
	p0 := m.tfVerts[t.V0].Position
	p1 := m.tfVerts[t.V1].Position
	p2 := m.tfVerts[t.V2].Position
	uv0 := m.tfVerts[t.V0].UV
	uv1 := m.tfVerts[t.V1].UV
	uv2 := m.tfVerts[t.V2].UV

	q1 := p1.Subtract(p0)
	q2 := p2.Subtract(p0)
	s1, t1 := uv1.X-uv0.X, uv1.Y-uv0.Y
	s2, t2 := uv2.X-uv0.X, uv2.Y-uv0.Y

	invDet := s1*t2 - s2*t1
	if math.Abs(invDet) < 1e-4 {
		return core.Vec3{}, core.Vec3{}, false
	}
	det := 1.0 / invDet

	tangent := q1.Multiply(t2).Subtract(q2.Multiply(t1)).Multiply(det)
	bitangent := q2.Multiply(s1).Subtract(q1.Multiply(s2)).Multiply(det)
	return tangent, bitangent, true
}

// Area returns the cached total world-space surface area
func (m *TriangleMesh) Area() float64 {
	m.assertPrepared("Area")
	return m.totalArea
}

// Bounds returns the object-space bounding box
func (m *TriangleMesh) Bounds() core.AABB {
	return m.bounds
}

// MakeSamplable (re)builds the area distribution over triangles weighted by
// world-space area and recomputes the cached total. Must be called before any
// sampling query, and never concurrently with sampling on the same mesh.
func (m *TriangleMesh) MakeSamplable() {
	m.assertPrepared("MakeSamplable")

	areas := make([]float64, len(m.tris))
	m.totalArea = 0
	for i, t := range m.tris {
		areas[i] = core.TriangleArea(
			m.tfVerts[t.V0].Position,
			m.tfVerts[t.V1].Position,
			m.tfVerts[t.V2].Position,
		)
		m.totalArea += areas[i]
	}
	m.triSampler = core.NewDistribution1D(areas)
}

// IsSamplable reports whether the area distribution has been built
func (m *TriangleMesh) IsSamplable() bool {
	return m.triSampler != nil
}

// SampleInboundDirection samples a direction from sample.Point toward the
// mesh treated as an area light. It fails when the sampled face points away
// from the reference point; callers skip this light's contribution then.
// On success the PDF is in solid-angle measure at the reference point.
func (m *TriangleMesh) SampleInboundDirection(sample *LightSample) bool {
	m.assertSamplable("SampleInboundDirection")

	idx := m.triSampler.Warp(sample.Sampler.Get1D())
	t := m.tris[idx]
	p0 := m.tfVerts[t.V0].Position
	p1 := m.tfVerts[t.V1].Position
	p2 := m.tfVerts[t.V2].Position
	normal := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()

	p := core.SampleUniformTriangle(sample.Sampler.Get2D(), p0, p1, p2)
	toLight := p.Subtract(sample.Point)

	rSq := toLight.LengthSquared()
	sample.Distance = math.Sqrt(rSq)
	sample.Direction = toLight.Multiply(1.0 / sample.Distance)

	cosTheta := -normal.Dot(sample.Direction)
	if cosTheta <= 0 || m.totalArea == 0 {
		return false
	}
	sample.PDF = rSq / (cosTheta * m.totalArea)

	return true
}

// SampleOutboundDirection samples an emission point and a cosine-weighted
// direction from the mesh surface. The PDF is the product of the uniform
// area-measure pdf 1/totalArea and the hemispherical direction pdf.
func (m *TriangleMesh) SampleOutboundDirection(sample *LightSample) bool {
	m.assertSamplable("SampleOutboundDirection")

	if m.totalArea == 0 {
		return false
	}

	idx := m.triSampler.Warp(sample.Sampler.Get1D())
	t := m.tris[idx]
	p0 := m.tfVerts[t.V0].Position
	p1 := m.tfVerts[t.V1].Position
	p2 := m.tfVerts[t.V2].Position
	normal := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()

	sample.Point = core.SampleUniformTriangle(sample.Sampler.Get2D(), p0, p1, p2)
	sample.Direction = core.SampleCosineHemisphere(normal, sample.Sampler.Get2D())
	sample.PDF = core.CosineHemispherePdf(sample.Direction.Dot(normal)) / m.totalArea

	return true
}

// InboundPdf converts an already-realized hit on the mesh into the
// solid-angle pdf SampleInboundDirection would have reported for it,
// for multiple-importance-sampling weights
func (m *TriangleMesh) InboundPdf(isect *MeshIntersection, point, direction core.Vec3) float64 {
	m.assertPrepared("InboundPdf")

	cosTheta := -direction.Dot(isect.Ng.Normalize())
	if cosTheta <= 0 || m.totalArea == 0 {
		return 0
	}
	return point.Subtract(isect.Point).LengthSquared() / (cosTheta * m.totalArea)
}

// ComputeBounds recomputes the object-space bounding box from the raw vertices
func (m *TriangleMesh) ComputeBounds() {
	if len(m.verts) == 0 {
		m.bounds = core.AABB{}
		return
	}
	bounds := core.NewAABBFromPoints(m.verts[0].Position)
	for _, v := range m.verts[1:] {
		bounds = bounds.Union(core.NewAABBFromPoints(v.Position))
	}
	m.bounds = bounds
}

// CalcSmoothVertexNormals recomputes per-vertex normals as the normalized
// sum of adjacent triangle winding normals (area-weighted)
func (m *TriangleMesh) CalcSmoothVertexNormals() {
	for i := range m.verts {
		m.verts[i].Normal = core.Vec3{}
	}
	for _, t := range m.tris {
		p0 := m.verts[t.V0].Position
		p1 := m.verts[t.V1].Position
		p2 := m.verts[t.V2].Position
		n := p1.Subtract(p0).Cross(p2.Subtract(p0))
		m.verts[t.V0].Normal = m.verts[t.V0].Normal.Add(n)
		m.verts[t.V1].Normal = m.verts[t.V1].Normal.Add(n)
		m.verts[t.V2].Normal = m.verts[t.V2].Normal.Add(n)
	}
	for i := range m.verts {
		m.verts[i].Normal = m.verts[i].Normal.Normalize()
	}
	m.dirty = true
}

// Verts returns the object-space vertex array (read by the serialization layer)
func (m *TriangleMesh) Verts() []Vertex {
	return m.verts
}

// Tris returns the triangle index array (read by the serialization layer)
func (m *TriangleMesh) Tris() []Triangle {
	return m.tris
}

// Material returns the mesh's surface material
func (m *TriangleMesh) Material() material.Material {
	return m.material
}

// Smoothed reports whether shading normals are interpolated
func (m *TriangleMesh) Smoothed() bool {
	return m.smoothed
}

// SetSmoothed enables or disables shading normal interpolation
func (m *TriangleMesh) SetSmoothed(smoothed bool) {
	m.smoothed = smoothed
}

// IsDirty reports whether geometry changed since the last save
func (m *TriangleMesh) IsDirty() bool {
	return m.dirty
}

// MarkDirty flags the geometry as changed
func (m *TriangleMesh) MarkDirty() {
	m.dirty = true
}

// Path returns the identifier the serialization layer persists the mesh under
func (m *TriangleMesh) Path() string {
	return m.path
}

// Name returns the mesh name
func (m *TriangleMesh) Name() string {
	return m.name
}

func (m *TriangleMesh) assertPrepared(op string) {
	if m.state != statePrepared {
		panic(fmt.Sprintf("mesh %q: %s called before PrepareForRender", m.name, op))
	}
}

func (m *TriangleMesh) assertUnprepared(op string) {
	if m.state != stateUnprepared {
		panic(fmt.Sprintf("mesh %q: %s called while prepared for render", m.name, op))
	}
}

func (m *TriangleMesh) assertSamplable(op string) {
	m.assertPrepared(op)
	if m.triSampler == nil {
		panic(fmt.Sprintf("mesh %q: %s called before MakeSamplable", m.name, op))
	}
}
