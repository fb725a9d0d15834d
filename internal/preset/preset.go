package preset

import "github.com/yichengup/ComfyUI-VideoTransition/internal/config"

// Preset captures the tunable parameters of a transition in a YAML file,
// so a proven look can be replayed on other clip pairs.
type Preset struct {
	Version       string  `yaml:"version"`
	Style         string  `yaml:"style"`
	TotalFrames   int     `yaml:"total_frames"`
	FPS           int     `yaml:"fps"`
	WarpIntensity float64 `yaml:"warp_intensity"`
	WarpSpeed     float64 `yaml:"warp_speed"`
	MaxScale      float64 `yaml:"max_scale"`
	ScaleRecovery bool    `yaml:"scale_recovery"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Background    string  `yaml:"background"`
}

// FromConfig snapshots the transition parameters of a config.
func FromConfig(cfg *config.Config) *Preset {
	return &Preset{
		Version:       "1.0",
		Style:         cfg.Style,
		TotalFrames:   cfg.TotalFrames,
		FPS:           cfg.FPS,
		WarpIntensity: cfg.WarpIntensity,
		WarpSpeed:     cfg.WarpSpeed,
		MaxScale:      cfg.MaxScale,
		ScaleRecovery: cfg.ScaleRecovery,
		Width:         cfg.Width,
		Height:        cfg.Height,
		Background:    cfg.Background,
	}
}

// Apply copies the preset parameters into a config.
func (p *Preset) Apply(cfg *config.Config) {
	cfg.Style = p.Style
	cfg.TotalFrames = p.TotalFrames
	cfg.FPS = p.FPS
	cfg.WarpIntensity = p.WarpIntensity
	cfg.WarpSpeed = p.WarpSpeed
	cfg.MaxScale = p.MaxScale
	cfg.ScaleRecovery = p.ScaleRecovery
	cfg.Width = p.Width
	cfg.Height = p.Height
	cfg.Background = p.Background
}
