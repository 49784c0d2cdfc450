package engine

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/img2anim/internal/config"
)

type stubSource struct {
	frames []image.Image
}

func (s *stubSource) FrameCount() int { return len(s.frames) }
func (s *stubSource) Frame(i int) (image.Image, error) {
	if i >= len(s.frames) {
		return nil, fmt.Errorf("no frame %d", i)
	}
	return s.frames[i], nil
}
func (s *stubSource) Close() error { return nil }

type captureEncoder struct {
	plans  []config.RenderPlan
	paths  []string
	counts []int
}

func (e *captureEncoder) Encode(_ context.Context, path string, imgs []*image.RGBA, plan config.RenderPlan, _ string, _ int) error {
	e.plans = append(e.plans, plan)
	e.paths = append(e.paths, path)
	e.counts = append(e.counts, len(imgs))
	return nil
}

// The end-to-end shape from the tool's contract: three 100x50 frames,
// duration 2, fps list 2,5 -> two GIFs and two MP4 plans.
func TestProjectRun(t *testing.T) {
	src := &stubSource{frames: []image.Image{
		image.NewRGBA(image.Rect(0, 0, 100, 50)),
		image.NewRGBA(image.Rect(0, 0, 640, 480)),
		image.NewRGBA(image.Rect(0, 0, 100, 50)),
	}}

	outDir := filepath.Join(t.TempDir(), "output")
	for _, sub := range []string{"gif", "mp4"} {
		if err := os.MkdirAll(filepath.Join(outDir, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}

	enc := &captureEncoder{}
	cfg := &config.Config{
		Name:          "animation",
		OutputDir:     outDir,
		TotalDuration: 2,
		FPSList:       []int{2, 5},
		Workers:       2,
		VideoEncoder:  "libx264",
		Quality:       23,
	}

	project := NewProject(cfg, src, enc)
	if err := project.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	for _, fps := range []int{2, 5} {
		path := filepath.Join(outDir, "gif", fmt.Sprintf("animation-%dfps.gif", fps))
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("missing gif for %d fps: %v", fps, err)
		}
		decoded, err := gif.DecodeAll(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if len(decoded.Image) != 3 {
			t.Errorf("%d fps gif has %d frames, want 3", fps, len(decoded.Image))
		}
		if decoded.LoopCount != 0 {
			t.Errorf("%d fps gif LoopCount = %d, want 0", fps, decoded.LoopCount)
		}
		for i, fr := range decoded.Image {
			if fr.Bounds().Dx() != 100 || fr.Bounds().Dy() != 50 {
				t.Errorf("%d fps gif frame %d bounds %v, want 100x50", fps, i, fr.Bounds())
			}
		}
	}

	if len(enc.plans) != 2 {
		t.Fatalf("encoder called %d times, want 2", len(enc.plans))
	}
	for i, fps := range []int{2, 5} {
		plan := enc.plans[i]
		if plan.ViewFPS != fps {
			t.Errorf("plan %d ViewFPS = %d, want %d", i, plan.ViewFPS, fps)
		}
		if plan.Width != 100 || plan.Height != 50 {
			t.Errorf("plan %d size %dx%d, want 100x50", i, plan.Width, plan.Height)
		}
		if got := Duration(plan); got != 2.0 {
			t.Errorf("plan %d duration %.3f, want 2.0", i, got)
		}
		if enc.counts[i] != 3 {
			t.Errorf("plan %d got %d normalized frames, want 3", i, enc.counts[i])
		}
		want := filepath.Join(outDir, "mp4", fmt.Sprintf("animation-%dfps.mp4", fps))
		if enc.paths[i] != want {
			t.Errorf("plan %d path %s, want %s", i, enc.paths[i], want)
		}
	}
}

func TestProjectRunAppendsOutro(t *testing.T) {
	src := &stubSource{frames: []image.Image{
		image.NewRGBA(image.Rect(0, 0, 100, 100)),
	}}

	outDir := filepath.Join(t.TempDir(), "output")
	if err := os.MkdirAll(filepath.Join(outDir, "gif"), 0755); err != nil {
		t.Fatal(err)
	}

	enc := &captureEncoder{}
	cfg := &config.Config{
		Name:          "animation",
		OutputDir:     outDir,
		TotalDuration: 1,
		FPSList:       []int{2},
		Workers:       1,
		OutroURL:      "https://example.com",
		VideoEncoder:  "libx264",
	}

	if err := NewProject(cfg, src, enc).Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if enc.counts[0] != 2 {
		t.Errorf("frames with outro = %d, want 2", enc.counts[0])
	}
}

func TestProjectRunEmptySource(t *testing.T) {
	cfg := &config.Config{Name: "x", OutputDir: t.TempDir(), FPSList: []int{2}, TotalDuration: 1}
	err := NewProject(cfg, &stubSource{}, &captureEncoder{}).Run(context.Background())
	if err == nil {
		t.Fatal("expected error for empty source")
	}
}
