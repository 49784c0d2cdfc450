package frames

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// Even rounds n up to the nearest even value. yuv420p subsamples chroma
// 2x2, so ffmpeg rejects odd output dimensions.
func Even(n int) int {
	if n%2 == 0 {
		return n
	}
	return n + 1
}

// TargetSize derives the canonical frame size from the first frame.
func TargetSize(first image.Image) (int, int) {
	b := first.Bounds()
	return Even(b.Dx()), Even(b.Dy())
}

// Fit resizes img to w x h and returns it as a tightly packed RGBA,
// ready both for palette quantization and for raw piping to ffmpeg.
// A frame that already matches is only converted, not resampled.
func Fit(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 && rgba.Rect.Min.X == 0 && rgba.Rect.Min.Y == 0 {
			return rgba
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// OutroQR builds a closing frame: a QR code for url centered on a white
// w x h canvas, sized to 80% of the shorter side.
func OutroQR(url string, w, h int) (*image.RGBA, error) {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("outro qr for %q: %w", url, err)
	}

	side := w
	if h < side {
		side = h
	}
	side = side * 8 / 10
	if side < 21 {
		side = 21 // minimum QR matrix
	}

	code := qr.Image(side)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	cb := code.Bounds()
	x := (w - cb.Dx()) / 2
	y := (h - cb.Dy()) / 2
	draw.Draw(dst, image.Rect(x, y, x+cb.Dx(), y+cb.Dy()), code, cb.Min, draw.Over)
	return dst, nil
}
