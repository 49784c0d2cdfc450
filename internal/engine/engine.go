package engine

import (
	"context"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/img2anim/internal/config"
	"github.com/ivlev/img2anim/internal/encoder"
	"github.com/ivlev/img2anim/internal/frames"
	"github.com/ivlev/img2anim/internal/source"
	"github.com/ivlev/img2anim/internal/system"
)

// Project runs the whole pipeline: load and normalize the frame
// sequence once, then write one GIF and one MP4 per requested fps.
type Project struct {
	Config  *config.Config
	Source  source.Source
	Encoder encoder.VideoEncoder
}

func NewProject(cfg *config.Config, src source.Source, ve encoder.VideoEncoder) *Project {
	return &Project{Config: cfg, Source: src, Encoder: ve}
}

func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()

	frameCount := p.Source.FrameCount()
	if frameCount == 0 {
		return fmt.Errorf("source contains no frames")
	}

	imgs, err := p.loadFrames(ctx, frameCount)
	if err != nil {
		return err
	}

	if p.Config.OutroURL != "" {
		w, h := imgs[0].Bounds().Dx(), imgs[0].Bounds().Dy()
		outro, err := frames.OutroQR(p.Config.OutroURL, w, h)
		if err != nil {
			return err
		}
		imgs = append(imgs, outro)
		fmt.Printf("[*] Appended QR outro frame for %s\n", p.Config.OutroURL)
	}

	gifDir := filepath.Join(p.Config.OutputDir, "gif")
	mp4Dir := filepath.Join(p.Config.OutputDir, "mp4")

	for _, fps := range p.Config.FPSList {
		if err := p.renderVariant(ctx, imgs, fps, gifDir, mp4Dir); err != nil {
			return err
		}
	}

	if p.Config.ShowStats {
		fmt.Printf("--- [PERFORMANCE REPORT] ---\n"+
			"Host: %s\n"+
			"Frames: %d | Variants: %d\n"+
			"Total Time: %.2fs\n"+
			"----------------------------\n",
			system.HostSummary(), len(imgs), len(p.Config.FPSList), time.Since(startTime).Seconds())
	}

	return nil
}

// loadFrames decodes and normalizes the sequence. The first frame is
// decoded alone to fix the target size, the rest in a bounded pool.
func (p *Project) loadFrames(ctx context.Context, frameCount int) ([]*image.RGBA, error) {
	first, err := p.Source.Frame(0)
	if err != nil {
		return nil, fmt.Errorf("load frame 0: %w", err)
	}

	width, height := frames.TargetSize(first)
	fmt.Printf("[*] Found %d frames, all resized to %dx%d\n", frameCount, width, height)

	imgs := make([]*image.RGBA, frameCount)
	imgs[0] = frames.Fit(first, width, height)

	g, gctx := errgroup.WithContext(ctx)
	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i := 1; i < frameCount; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := p.Source.Frame(i)
			if err != nil {
				return fmt.Errorf("load frame %d: %w", i, err)
			}
			imgs[i] = frames.Fit(img, width, height)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return imgs, nil
}

func (p *Project) renderVariant(ctx context.Context, imgs []*image.RGBA, fps int, gifDir, mp4Dir string) error {
	gifPath := filepath.Join(gifDir, fmt.Sprintf("%s-%dfps.gif", p.Config.Name, fps))
	mp4Path := filepath.Join(mp4Dir, fmt.Sprintf("%s-%dfps.mp4", p.Config.Name, fps))

	fmt.Printf("[*] Creating GIF at %d FPS...\n", fps)
	if err := encoder.WriteGIF(gifPath, imgs, fps); err != nil {
		return fmt.Errorf("gif at %d fps: %w", fps, err)
	}
	fmt.Printf("[>] Ready: %s\n", gifPath)

	w, h := imgs[0].Bounds().Dx(), imgs[0].Bounds().Dy()
	plan := BuildPlan(fps, p.Config.TotalDuration, w, h)

	fmt.Printf("[*] Creating MP4 at %d view-FPS (encoded at %d FPS, %dx repeat, %d view frames)...\n",
		plan.ViewFPS, plan.EncodeFPS, plan.RepeatFactor, plan.ViewFrames)
	if err := p.Encoder.Encode(ctx, mp4Path, imgs, plan, p.Config.VideoEncoder, p.Config.Quality); err != nil {
		return fmt.Errorf("mp4 at %d fps: %w", fps, err)
	}

	// Sanity probe of the written container. Warn only: encoder timebase
	// rounding can land slightly off the arithmetic duration.
	want := Duration(plan)
	if got, err := system.VideoDuration(mp4Path); err == nil {
		if math.Abs(got-want) > 1.0/float64(plan.ViewFPS) {
			fmt.Printf("[!] %s reports %.2fs, expected %.2fs\n", mp4Path, got, want)
		}
	}
	fmt.Printf("[>] Ready: %s\n", mp4Path)

	return nil
}
