package engine

import (
	"math"

	"github.com/ivlev/img2anim/internal/config"
)

// minEncodeFPS is the floor below which common platforms (LinkedIn,
// most mobile players) refuse or mangle H.264 clips.
const minEncodeFPS = 24

// BuildPlan works out how one fps variant reaches the target duration.
//
// The perceived cadence stays at viewFPS: when viewFPS is below 10,
// every source frame is duplicated RepeatFactor times and the clip is
// encoded at viewFPS*RepeatFactor, the smallest exact multiple at or
// above minEncodeFPS. Keeping the encode rate an exact multiple means
// the clip duration is ViewFrames/viewFPS with no drift.
//
// ViewFrames = ceil(viewFPS * targetDuration): the source sequence
// cycles and the last pass is truncated, so the clip lands on the
// target duration within one frame.
func BuildPlan(viewFPS int, targetDuration float64, width, height int) config.RenderPlan {
	repeat := 1
	if viewFPS < 10 {
		repeat = minEncodeFPS / viewFPS
		if minEncodeFPS%viewFPS != 0 {
			repeat++
		}
	}

	viewFrames := int(math.Ceil(float64(viewFPS) * targetDuration))
	if viewFrames < 1 {
		viewFrames = 1
	}

	return config.RenderPlan{
		ViewFPS:      viewFPS,
		EncodeFPS:    viewFPS * repeat,
		RepeatFactor: repeat,
		ViewFrames:   viewFrames,
		Width:        width,
		Height:       height,
	}
}

// FrameCount is the number of frames the encoder will be fed.
func FrameCount(p config.RenderPlan) int {
	return p.ViewFrames * p.RepeatFactor
}

// Duration is the resulting clip length in seconds.
func Duration(p config.RenderPlan) float64 {
	return float64(FrameCount(p)) / float64(p.EncodeFPS)
}
