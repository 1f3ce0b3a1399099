package loaders

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/glassray/glassray/pkg/core"
)

func TestLoadTexture_PNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})

	path := filepath.Join(t.TempDir(), "tex.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating file: %v", err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	file.Close()

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("Texture %dx%d, expected 2x1", tex.Width, tex.Height)
	}

	left := tex.Evaluate(core.NewVec2(0.1, 0.5), core.Vec3{})
	if math.Abs(left.X-1.0) > 0.01 || left.Y > 0.01 || left.Z > 0.01 {
		t.Errorf("Left pixel %v, expected red", left)
	}
	right := tex.Evaluate(core.NewVec2(0.9, 0.5), core.Vec3{})
	if math.Abs(right.Z-1.0) > 0.01 || right.X > 0.01 || right.Y > 0.01 {
		t.Errorf("Right pixel %v, expected blue", right)
	}
}

func TestLoadTexture_MissingFile(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}
