package encoder

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"
)

// GIFDelay converts an fps value to the GIF per-frame delay, which the
// format stores in hundredths of a second. Rates above 100 fps clamp to
// the format's minimum representable delay.
func GIFDelay(fps int) int {
	delay := int(math.Round(100.0 / float64(fps)))
	if delay < 1 {
		delay = 1
	}
	return delay
}

// WriteGIF encodes the frame sequence as an infinitely looping GIF at
// the given frame rate. Frames are quantized to the standard 256-color
// palette with Floyd-Steinberg dithering.
func WriteGIF(path string, imgs []*image.RGBA, fps int) error {
	if len(imgs) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	delay := GIFDelay(fps)

	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(imgs)),
		Delay:     make([]int, 0, len(imgs)),
		LoopCount: 0, // loop forever
	}

	for _, img := range imgs {
		b := img.Bounds()
		pal := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, b, img, b.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif %s: %w", path, err)
	}
	return f.Close()
}
