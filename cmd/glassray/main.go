package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/glassray/glassray/pkg/config"
	"github.com/glassray/glassray/pkg/core"
	"github.com/glassray/glassray/pkg/geometry"
	"github.com/glassray/glassray/pkg/loaders"
	"github.com/glassray/glassray/pkg/logger"
	"github.com/glassray/glassray/pkg/material"
	"github.com/glassray/glassray/pkg/renderer"
)

func main() {
	configPath := flag.String("config", "", "path to YAML render config")
	output := flag.String("output", "", "output image path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Render.Output = *output
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	scene, err := buildScene(cfg)
	if err != nil {
		return err
	}

	logger.Info("preparing scene",
		zap.Int("meshes", len(scene.Meshes)),
		zap.Int("lights", len(scene.Lights)))

	scene.PrepareForRender()
	defer scene.CleanupAfterRender()

	aspect := float64(cfg.Render.Width) / float64(cfg.Render.Height)
	camera := renderer.NewCamera(
		core.NewVec3(0, 1.2, 4.5),
		core.NewVec3(0, 0.8, 0),
		core.NewVec3(0, 1, 0),
		40, aspect,
	)

	preview := renderer.NewPreview(scene, camera, renderer.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Samples:    cfg.Render.Samples,
		MaxBounces: cfg.Render.MaxBounces,
		Workers:    cfg.Render.Workers,
		Seed:       cfg.Render.Seed,
	})

	img := preview.Render()

	if err := renderer.WriteImage(img, cfg.Render.Output, cfg.Render.Format); err != nil {
		return err
	}
	logger.Info("wrote image", zap.String("path", cfg.Render.Output), zap.String("format", cfg.Render.Format))
	return nil
}

// buildScene assembles the preview scene: a thin dielectric sheet in front of
// a diffuse backdrop, lit by a two-triangle area light. When the config names
// a PLY file, that mesh replaces the built-in sheet geometry.
func buildScene(cfg *config.Config) (*renderer.Scene, error) {
	sigmaA := core.NewVec3(cfg.Scene.SigmaA[0], cfg.Scene.SigmaA[1], cfg.Scene.SigmaA[2])
	sheetMat := material.NewThinSheet(cfg.Scene.IOR, cfg.Scene.Thickness, sigmaA)

	var sheet *geometry.TriangleMesh
	if cfg.Scene.MeshPath != "" {
		data, err := loaders.LoadPLY(cfg.Scene.MeshPath)
		if err != nil {
			return nil, err
		}
		sheet = data.BuildMesh(sheetMat, "sheet", cfg.Scene.Smooth)
	} else {
		sheet = quadMesh("sheet", sheetMat,
			core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0),
			core.NewVec3(1, 2, 0), core.NewVec3(-1, 2, 0))
	}

	floor := quadMesh("floor", material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7)),
		core.NewVec3(-4, 0, 4), core.NewVec3(4, 0, 4),
		core.NewVec3(4, 0, -4), core.NewVec3(-4, 0, -4))

	back := quadMesh("back", material.NewLambertian(core.NewVec3(0.6, 0.2, 0.2)),
		core.NewVec3(-4, 0, -2), core.NewVec3(4, 0, -2),
		core.NewVec3(4, 3, -2), core.NewVec3(-4, 3, -2))

	// Winding chosen so the raw normal faces away from the scene and the
	// flipped shading convention lights downward
	lamp := quadMesh("lamp", material.NewEmissive(core.NewVec3(12, 12, 12)),
		core.NewVec3(-0.8, 2.8, 0.8), core.NewVec3(-0.8, 2.8, -0.8),
		core.NewVec3(0.8, 2.8, -0.8), core.NewVec3(0.8, 2.8, 0.8))

	return &renderer.Scene{
		Meshes: []*geometry.TriangleMesh{sheet, floor, back, lamp},
		Lights: []*geometry.TriangleMesh{lamp},
		Background: renderer.GradientBackground(
			core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0)),
	}, nil
}

// quadMesh builds a two-triangle mesh from four corners in winding order
func quadMesh(name string, mat material.Material, a, b, c, d core.Vec3) *geometry.TriangleMesh {
	normal := b.Subtract(a).Cross(d.Subtract(a)).Normalize()
	verts := []geometry.Vertex{
		geometry.NewVertex(a, normal, core.NewVec2(0, 0)),
		geometry.NewVertex(b, normal, core.NewVec2(1, 0)),
		geometry.NewVertex(c, normal, core.NewVec2(1, 1)),
		geometry.NewVertex(d, normal, core.NewVec2(0, 1)),
	}
	tris := []geometry.Triangle{
		{V0: 0, V1: 1, V2: 2},
		{V0: 0, V1: 2, V2: 3},
	}
	return geometry.NewTriangleMesh(verts, tris, mat, name, false)
}
