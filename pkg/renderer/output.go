package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/HugoSmits86/nativewebp"
)

// WriteImage encodes the rendered image to the given path.
// Supported formats: "png" and "webp" (lossless).
func WriteImage(img image.Image, path, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch format {
	case "png":
		if err := png.Encode(file, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case "webp":
		if err := nativewebp.Encode(file, img, nil); err != nil {
			return fmt.Errorf("failed to encode WebP: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}
