package engine

import (
	"math"
	"testing"
)

func TestBuildPlanLowFPSBumpsEncodeRate(t *testing.T) {
	plan := BuildPlan(2, 2.0, 100, 50)

	if plan.ViewFPS != 2 {
		t.Errorf("ViewFPS = %d, want 2", plan.ViewFPS)
	}
	if plan.EncodeFPS != 24 {
		t.Errorf("EncodeFPS = %d, want 24", plan.EncodeFPS)
	}
	if plan.RepeatFactor != 12 {
		t.Errorf("RepeatFactor = %d, want 12", plan.RepeatFactor)
	}
}

func TestBuildPlanHighFPSKeepsRate(t *testing.T) {
	plan := BuildPlan(30, 5.0, 100, 50)

	if plan.EncodeFPS != 30 {
		t.Errorf("EncodeFPS = %d, want 30", plan.EncodeFPS)
	}
	if plan.RepeatFactor != 1 {
		t.Errorf("RepeatFactor = %d, want 1", plan.RepeatFactor)
	}
}

func TestBuildPlanEncodeRateIsExactMultiple(t *testing.T) {
	// 24 is not a multiple of 7, so the encode rate climbs to the next
	// exact multiple: 7*4 = 28. Anything else would drift the cadence.
	plan := BuildPlan(7, 10.0, 100, 50)

	if plan.RepeatFactor != 4 {
		t.Errorf("RepeatFactor = %d, want 4", plan.RepeatFactor)
	}
	if plan.EncodeFPS != 28 {
		t.Errorf("EncodeFPS = %d, want 28", plan.EncodeFPS)
	}
	if plan.EncodeFPS%plan.ViewFPS != 0 {
		t.Errorf("EncodeFPS %d is not a multiple of ViewFPS %d", plan.EncodeFPS, plan.ViewFPS)
	}
}

func TestPlanMeetsTargetDuration(t *testing.T) {
	cases := []struct {
		fps      int
		duration float64
	}{
		{2, 2.0},
		{5, 2.0},
		{5, 30.0},
		{24, 10.0},
		{3, 60.0},
		{7, 12.5},
	}

	for _, c := range cases {
		plan := BuildPlan(c.fps, c.duration, 100, 50)

		minFrames := int(math.Ceil(float64(c.fps) * c.duration))
		if plan.ViewFrames < minFrames {
			t.Errorf("fps=%d: ViewFrames %d < ceil(F*D) %d", c.fps, plan.ViewFrames, minFrames)
		}

		got := Duration(plan)
		oneFrame := 1.0 / float64(c.fps)
		if got < c.duration-0.0001 || got > c.duration+oneFrame+0.0001 {
			t.Errorf("fps=%d: duration %.4f, want within [%.4f, %.4f]",
				c.fps, got, c.duration, c.duration+oneFrame)
		}
	}
}

func TestBuildPlanSingleFrameSequence(t *testing.T) {
	// A one-frame input still produces a clip of the requested length;
	// the same frame just repeats for the whole duration.
	plan := BuildPlan(2, 4.0, 100, 50)

	if plan.ViewFrames != 8 {
		t.Errorf("ViewFrames = %d, want 8", plan.ViewFrames)
	}
	if got := Duration(plan); math.Abs(got-4.0) > 0.0001 {
		t.Errorf("duration %.4f, want 4.0", got)
	}
}

func TestFrameCountMatchesEncodeRate(t *testing.T) {
	plan := BuildPlan(5, 2.0, 100, 50)

	// 10 view frames, each repeated 5 times at 25 fps = 2.0s exactly.
	if got := FrameCount(plan); got != 50 {
		t.Errorf("FrameCount = %d, want 50", got)
	}
	if got := Duration(plan); math.Abs(got-2.0) > 0.0001 {
		t.Errorf("duration %.4f, want 2.0", got)
	}
}
