package converter

import (
	"image"

	"github.com/disintegration/imaging"

	"imgs2pdf/internal/config"
)

// StripAlpha returns an opaque copy of img. Color channels are kept as they
// are and alpha is forced to 255, so transparent pixels are dropped rather
// than blended against a background.
func StripAlpha(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// ClampCrop resolves box against a w x h image and returns the half-open
// rectangle to keep. Edges are inclusive in box. An unset or out-of-range
// left/top falls back to 0; right/bottom must lie in [left, w-1] /
// [top, h-1] with the requested left/top, otherwise they fall back to the
// last column/row.
func ClampCrop(box config.CropBox, w, h int) image.Rectangle {
	reqLeft, reqTop := 0, 0
	if box.Left.Set {
		reqLeft = box.Left.Value
	}
	if box.Top.Set {
		reqTop = box.Top.Value
	}

	left, top := 0, 0
	if reqLeft < w {
		left = reqLeft
	}
	if reqTop < h {
		top = reqTop
	}

	right, bottom := w-1, h-1
	if box.Right.Set && box.Right.Value >= reqLeft && box.Right.Value < w {
		right = box.Right.Value
	}
	if box.Bottom.Set && box.Bottom.Value >= reqTop && box.Bottom.Value < h {
		bottom = box.Bottom.Value
	}
	return image.Rect(left, top, right+1, bottom+1)
}

// Transform applies crop, then clockwise rotation, then flip. The order is
// fixed.
func Transform(img image.Image, cfg *config.Config) *image.NRGBA {
	b := img.Bounds()
	out := imaging.Crop(img, ClampCrop(cfg.CropBox, b.Dx(), b.Dy()).Add(b.Min))
	out = Rotate(out, cfg.Angle)
	return Flip(out, cfg.Flip)
}

// Rotate turns img clockwise by angle degrees (0, 90, 180 or 270)
func Rotate(img *image.NRGBA, angle int) *image.NRGBA {
	switch angle {
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	}
	return img
}

// Flip mirrors img. FlipBoth is a single point reflection, identical to
// flipping each axis in turn.
func Flip(img *image.NRGBA, mode config.FlipMode) *image.NRGBA {
	switch mode {
	case config.FlipHorizontal:
		return imaging.FlipH(img)
	case config.FlipVertical:
		return imaging.FlipV(img)
	case config.FlipBoth:
		return imaging.Rotate180(img)
	}
	return img
}
