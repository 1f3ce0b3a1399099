package renderer

import (
	"image"
	"image/color"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/glassray/glassray/pkg/core"
	"github.com/glassray/glassray/pkg/geometry"
	"github.com/glassray/glassray/pkg/logger"
	"github.com/glassray/glassray/pkg/material"
)

// Options controls the preview render
type Options struct {
	Width      int
	Height     int
	Samples    int
	MaxBounces int
	Workers    int // 0 means one per CPU
	Seed       int64
}

// Preview renders scenes with a small forward path tracer. It exists to
// exercise the mesh and BSDF query surface end to end; it is not a full
// integrator (no MIS weighting, no light path reuse).
type Preview struct {
	scene  *Scene
	camera *Camera
	opts   Options
}

// NewPreview creates a preview renderer. The scene must already be prepared.
func NewPreview(scene *Scene, camera *Camera, opts Options) *Preview {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Preview{scene: scene, camera: camera, opts: opts}
}

// Render traces the scene into an RGBA image, distributing rows across
// worker goroutines. Meshes are queried concurrently without locks; all
// mutation happened in the scene preparation barrier.
func (p *Preview) Render() *image.RGBA {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, p.opts.Width, p.opts.Height))

	rows := make(chan int, p.opts.Height)
	for y := 0; y < p.opts.Height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < p.opts.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for y := range rows {
				// Per-row deterministic random state, owned by this worker
				sampler := core.NewRandomSampler(rand.New(rand.NewSource(p.opts.Seed + int64(y))))
				p.renderRow(img, y, sampler)
			}
		}(w)
	}
	wg.Wait()

	logger.Info("preview render finished",
		zap.Int("width", p.opts.Width),
		zap.Int("height", p.opts.Height),
		zap.Int("samples", p.opts.Samples),
		zap.Int("workers", p.opts.Workers),
		zap.Duration("elapsed", time.Since(start)))

	return img
}

func (p *Preview) renderRow(img *image.RGBA, y int, sampler core.Sampler) {
	for x := 0; x < p.opts.Width; x++ {
		var sum core.Vec3
		for s := 0; s < p.opts.Samples; s++ {
			jitter := sampler.Get2D()
			u := (float64(x) + jitter.X) / float64(p.opts.Width)
			v := 1.0 - (float64(y)+jitter.Y)/float64(p.opts.Height)
			ray := p.camera.GetRay(u, v)
			sum = sum.Add(p.trace(ray, sampler))
		}

		pixel := sum.Multiply(1.0 / float64(p.opts.Samples)).
			GammaCorrect(2.2).
			Clamp(0, 1)
		img.SetRGBA(x, y, color.RGBA{
			R: uint8(pixel.X * 255.999),
			G: uint8(pixel.Y * 255.999),
			B: uint8(pixel.Z * 255.999),
			A: 255,
		})
	}
}

// trace follows one path through the scene
func (p *Preview) trace(ray core.Ray, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce < p.opts.MaxBounces; bounce++ {
		var isect geometry.MeshIntersection
		mesh, ok := p.scene.Intersect(&ray, &isect)
		if !ok {
			radiance = radiance.Add(throughput.MultiplyVec(p.scene.Background(ray)))
			break
		}

		info := mesh.ReconstructShadingInfo(&isect)
		mat := mesh.Material()

		radiance = radiance.Add(throughput.MultiplyVec(emissionOf(mat, ray)))

		si := material.SurfaceInteraction{
			Point:    info.Point,
			UV:       info.UV,
			Material: mat,
		}
		si.SetFaceNormal(ray, info.ShadingNormal)

		result, scattered := mat.Scatter(ray, si, sampler)
		if !scattered {
			break
		}

		// Direct lighting for non-delta lobes; delta BSDFs can never match a
		// sampled light direction, so they are skipped
		if !result.IsSpecular() {
			radiance = radiance.Add(throughput.MultiplyVec(p.directLight(&si, sampler)))
		}

		if result.IsSpecular() {
			throughput = throughput.MultiplyVec(result.Attenuation)
		} else {
			cosTheta := result.Scattered.Direction.Dot(si.Normal)
			if cosTheta <= 0 || result.PDF <= 0 {
				break
			}
			throughput = throughput.MultiplyVec(result.Attenuation.Multiply(cosTheta / result.PDF))
		}

		ray = result.Scattered
	}

	return radiance
}

// directLight samples one light mesh as an area light
func (p *Preview) directLight(si *material.SurfaceInteraction, sampler core.Sampler) core.Vec3 {
	if len(p.scene.Lights) == 0 {
		return core.Vec3{}
	}

	// Uniform light selection
	idx := int(sampler.Get1D() * float64(len(p.scene.Lights)))
	if idx >= len(p.scene.Lights) {
		idx = len(p.scene.Lights) - 1
	}
	light := p.scene.Lights[idx]
	selectionPdf := 1.0 / float64(len(p.scene.Lights))

	ls := geometry.LightSample{Point: si.Point, Sampler: sampler}
	if !light.SampleInboundDirection(&ls) {
		return core.Vec3{}
	}

	cosTheta := ls.Direction.Dot(si.Normal)
	if cosTheta <= 0 {
		return core.Vec3{}
	}

	shadow := core.NewRayInterval(si.Point, ls.Direction,
		core.DefaultRayEpsilon, ls.Distance-core.DefaultRayEpsilon)
	if p.scene.Occluded(shadow) {
		return core.Vec3{}
	}

	emission := emissionOf(light.Material(), core.NewRay(si.Point, ls.Direction))
	brdf := si.Material.EvaluateBRDF(core.Vec3{}, ls.Direction, si)

	return emission.MultiplyVec(brdf).Multiply(cosTheta / (ls.PDF * selectionPdf))
}
