// Package config handles render configuration loading.
package config

// Config holds all render settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds image and sampling settings.
type RenderConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Samples    int    `yaml:"samples"`
	MaxBounces int    `yaml:"max_bounces"`
	Workers    int    `yaml:"workers"` // 0 means one per CPU
	Output     string `yaml:"output"`
	Format     string `yaml:"format"` // "png" or "webp"
	Seed       int64  `yaml:"seed"`
}

// SceneConfig holds the preview scene settings.
type SceneConfig struct {
	MeshPath  string     `yaml:"mesh_path"` // PLY mesh; empty uses the built-in scene
	Smooth    bool       `yaml:"smooth"`
	IOR       float64    `yaml:"ior"`
	Thickness float64    `yaml:"thickness"`
	SigmaA    [3]float64 `yaml:"sigma_a"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      800,
			Height:     600,
			Samples:    16,
			MaxBounces: 8,
			Workers:    0,
			Output:     "render.png",
			Format:     "png",
			Seed:       42,
		},
		Scene: SceneConfig{
			Smooth:    true,
			IOR:       1.5,
			Thickness: 0.5,
			SigmaA:    [3]float64{0, 0, 0},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
