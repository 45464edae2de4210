package config

import "sort"

var Presets = map[string]*Config{
	"draft": {
		Data: DataConfig{
			Dir: "motorBike-VTK", VolumeFile: "motorBike_500.vtk", PartSuffix: "_500.vtk",
		},
		Movie: MovieConfig{
			Output: "motorbike_draft.avi", FPS: 10, Duration: 3,
			Width: 640, Height: 360, Quality: 5,
		},
	},
	"standard": {
		Data: DataConfig{
			Dir: "motorBike-VTK", VolumeFile: "motorBike_500.vtk", PartSuffix: "_500.vtk",
		},
		Movie: MovieConfig{
			Output: "motorbike_cfd_analysis.avi", FPS: 20, Duration: 10,
			Width: 1920, Height: 1080, Quality: 9,
		},
	},
	"archive": {
		Data: DataConfig{
			Dir: "motorBike-VTK", VolumeFile: "motorBike_500.vtk", PartSuffix: "_500.vtk",
		},
		Movie: MovieConfig{
			Output: "motorbike_cfd_archive.avi", FPS: 25, Duration: 12,
			Width: 3840, Height: 2160, Quality: 10,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
