package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"

	"github.com/ivlev/img2anim/internal/config"
)

// VideoEncoder writes the fixed-duration clip for one fps variant.
type VideoEncoder interface {
	Encode(ctx context.Context, path string, imgs []*image.RGBA, plan config.RenderPlan, encoderName string, quality int) error
}

// FFmpegEncoder pipes raw RGBA frames to an external ffmpeg process over
// stdin. No intermediate frame files touch the disk.
type FFmpegEncoder struct{}

func (e *FFmpegEncoder) Encode(
	ctx context.Context,
	path string,
	imgs []*image.RGBA,
	plan config.RenderPlan,
	encoderName string,
	quality int,
) error {
	if len(imgs) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	args := e.buildFFmpegArgs(path, plan, encoderName, quality)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	// The sequence cycles until it fills the target duration, truncating
	// the final pass; at low view rates each frame is additionally
	// duplicated to reach EncodeFPS.
	writeErr := func() error {
		for v := 0; v < plan.ViewFrames; v++ {
			img := imgs[v%len(imgs)]
			for r := 0; r < plan.RepeatFactor; r++ {
				if _, err := stdin.Write(img.Pix); err != nil {
					return err
				}
			}
		}
		return nil
	}()
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg error: %v, output: %s", err, out.String())
	}
	if writeErr != nil {
		return fmt.Errorf("write raw frames: %w", writeErr)
	}

	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(path string, plan config.RenderPlan, encoderName string, quality int) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", plan.Width, plan.Height),
		"-framerate", fmt.Sprintf("%d", plan.EncodeFPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-c:v", encoderName,
	}

	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox ignores -q:v on some versions; steer by bitrate.
		bitrate := quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	args = append(args, path)
	return args
}
