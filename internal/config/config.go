package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS      = 20
	DefaultDuration = 10
	DefaultWidth    = 1920
	DefaultHeight   = 1080
	DefaultQuality  = 9
)

type Config struct {
	Data  DataConfig  `yaml:"data"`
	Movie MovieConfig `yaml:"movie"`
}

type DataConfig struct {
	Dir        string `yaml:"dir"`
	VolumeFile string `yaml:"volume_file"`
	PartSuffix string `yaml:"part_suffix"`
}

type MovieConfig struct {
	Output   string `yaml:"output"`
	FPS      int    `yaml:"fps"`
	Duration int    `yaml:"duration"` // seconds
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Quality  int    `yaml:"quality"` // 0..10 movie quality scale
}

func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:        "motorBike-VTK",
			VolumeFile: "motorBike_500.vtk",
			PartSuffix: "_500.vtk",
		},
		Movie: MovieConfig{
			Output:   "motorbike_cfd_analysis.avi",
			FPS:      DefaultFPS,
			Duration: DefaultDuration,
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			Quality:  DefaultQuality,
		},
	}
}

// Load reads a YAML file over the defaults, so partial files only
// override the keys they mention.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Frames returns the total frame count of the movie.
func (c *Config) Frames() int {
	return c.Movie.FPS * c.Movie.Duration
}
