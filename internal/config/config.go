package config

type Config struct {
	Input1        string
	Input2        string
	OutputVideo   string
	Style         string
	TotalFrames   int
	FPS           int
	WarpIntensity float64
	WarpSpeed     float64
	MaxScale      float64
	ScaleRecovery bool
	Width         int
	Height        int
	BatchSize     int
	Workers       int
	Background    string
	VideoEncoder  string
	Quality       int
	DebugQR       bool
	ShowStats     bool
	BuildVersion  string
}
