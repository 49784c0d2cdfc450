package config

type Config struct {
	Name          string
	InputPath     string
	OutputDir     string
	ArchiveDir    string
	TotalDuration float64
	FPSList       []int
	Workers       int
	Quality       int
	DPI           int
	OutroURL      string
	VideoEncoder  string
	ShowStats     bool
}

// RenderPlan describes one fps variant of the output pair.
// EncodeFPS may exceed ViewFPS: many players and platforms reject MP4s
// below ~10 fps, so each source frame is duplicated RepeatFactor times
// and the file is encoded at EncodeFPS = ViewFPS * RepeatFactor instead.
// ViewFrames is the total perceived frame count; the source sequence
// cycles and the final pass is truncated to land on it exactly.
type RenderPlan struct {
	ViewFPS      int
	EncodeFPS    int
	RepeatFactor int
	ViewFrames   int
	Width        int
	Height       int
}
