package geometry

import (
	"image"
	"image/draw"

	"fyne.io/fyne/v2"
)

// FillBounds returns the centered part of bounds with the aspect ratio of
// frame. Drawn into frame, it looks like the whole image drawn aspect fill.
// Degenerate input returns bounds unchanged.
func FillBounds(bounds image.Rectangle, frame fyne.Size) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || frame.Width <= 0 || frame.Height <= 0 {
		return bounds
	}
	aspect := frame.Width / frame.Height
	cw, ch := w, h
	if float32(w)/float32(h) > aspect {
		cw = max(1, int(float32(h)*aspect+0.5))
	} else {
		ch = max(1, int(float32(w)/aspect+0.5))
	}
	x := bounds.Min.X + (w-cw)/2
	y := bounds.Min.Y + (h-ch)/2
	return image.Rect(x, y, x+cw, y+ch)
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// CropToFill returns the part of img that aspect fill shows in frame. Images
// from the standard decoders are cropped without copying pixels.
func CropToFill(img image.Image, frame fyne.Size) image.Image {
	if img == nil {
		return nil
	}
	r := FillBounds(img.Bounds(), frame)
	if r == img.Bounds() {
		return img
	}
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
