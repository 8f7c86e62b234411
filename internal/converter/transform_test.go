package converter

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"imgs2pdf/internal/config"
)

// gradient returns a w x h image where every pixel is unique
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x*7 + y*13), A: 0xff})
		}
	}
	return img
}

func crop(l, t, r, b int) config.CropBox {
	box, _ := config.ParseCrop([]int{l, t, r, b})
	return box
}

func TestClampCrop(t *testing.T) {
	const w, h = 100, 50
	tests := []struct {
		name string
		box  config.CropBox
		want image.Rectangle
	}{
		{"unset keeps full image", config.CropBox{}, image.Rect(0, 0, 100, 50)},
		{"inclusive edges", crop(10, 5, 19, 14), image.Rect(10, 5, 20, 15)},
		{"right past width", crop(10, 0, 100, -1), image.Rect(10, 0, 100, 50)},
		{"bottom past height", crop(-1, 10, -1, 80), image.Rect(0, 10, 100, 50)},
		{"left past width", crop(100, -1, -1, -1), image.Rect(0, 0, 100, 50)},
		{"top past height", crop(-1, 50, -1, -1), image.Rect(0, 0, 100, 50)},
		{"right before left", crop(40, -1, 30, -1), image.Rect(40, 0, 100, 50)},
		{"bottom before top", crop(-1, 30, -1, 10), image.Rect(0, 30, 100, 50)},
		{"single pixel", crop(0, 0, 0, 0), image.Rect(0, 0, 1, 1)},
		{"last pixel", crop(99, 49, 99, 49), image.Rect(99, 49, 100, 50)},
		{"right checked against requested left", crop(150, -1, 20, -1), image.Rect(0, 0, 100, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampCrop(tt.box, w, h); got != tt.want {
				t.Errorf("ClampCrop() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransform_NoOptionsIsIdentity(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	src := gradient(30, 20)
	out := Transform(src, &cfg)
	if out.Bounds() != src.Bounds() || !bytes.Equal(out.Pix, src.Pix) {
		t.Error("Transform without options should return the image unchanged")
	}
}

func TestTransform_CropThenRotate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Crop = []int{0, 0, 39, 9} // 40 x 10 out of 100 x 50
	cfg.Angle = 90
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	src := gradient(100, 50)
	out := Transform(src, &cfg)
	if got := out.Bounds().Size(); got != image.Pt(10, 40) {
		t.Fatalf("size = %v, want 10x40 (cropped region rotated)", got)
	}

	// clockwise: the cropped top-left pixel ends up top-right
	want := src.NRGBAAt(0, 0)
	if got := out.NRGBAAt(9, 0); got != want {
		t.Errorf("pixel (9,0) = %v, want %v", got, want)
	}
}

func TestRotate_Clockwise(t *testing.T) {
	src := gradient(4, 2)
	tests := []struct {
		angle int
		size  image.Point
		// where source pixel (0,0) lands
		at image.Point
	}{
		{0, image.Pt(4, 2), image.Pt(0, 0)},
		{90, image.Pt(2, 4), image.Pt(1, 0)},
		{180, image.Pt(4, 2), image.Pt(3, 1)},
		{270, image.Pt(2, 4), image.Pt(0, 3)},
	}
	for _, tt := range tests {
		out := Rotate(src, tt.angle)
		if out.Bounds().Size() != tt.size {
			t.Errorf("angle %d: size %v, want %v", tt.angle, out.Bounds().Size(), tt.size)
			continue
		}
		if got := out.NRGBAAt(tt.at.X, tt.at.Y); got != src.NRGBAAt(0, 0) {
			t.Errorf("angle %d: pixel at %v = %v, want %v", tt.angle, tt.at, got, src.NRGBAAt(0, 0))
		}
	}
}

func TestFlip_BothMatchesSequentialFlips(t *testing.T) {
	src := gradient(7, 5)
	both := Flip(src, config.FlipBoth)

	hv := imaging.FlipV(imaging.FlipH(src))
	vh := imaging.FlipH(imaging.FlipV(src))
	if !bytes.Equal(both.Pix, hv.Pix) {
		t.Error("combined flip differs from horizontal then vertical")
	}
	if !bytes.Equal(both.Pix, vh.Pix) {
		t.Error("combined flip differs from vertical then horizontal")
	}
}

func TestFlip_SingleAxis(t *testing.T) {
	src := gradient(3, 2)
	h := Flip(src, config.FlipHorizontal)
	if h.NRGBAAt(0, 0) != src.NRGBAAt(2, 0) {
		t.Error("horizontal flip should mirror columns")
	}
	v := Flip(src, config.FlipVertical)
	if v.NRGBAAt(0, 0) != src.NRGBAAt(0, 1) {
		t.Error("vertical flip should mirror rows")
	}
	if n := Flip(src, config.FlipNone); n != src {
		t.Error("FlipNone should return the input")
	}
}

func TestStripAlpha_KeepsColorChannels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	out := StripAlpha(src)
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("pixel 0 = %v, want color kept and alpha dropped", got)
	}
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel 1 = %v, want color kept and alpha dropped", got)
	}
	if src.NRGBAAt(0, 0).A != 0 {
		t.Error("StripAlpha must not modify its input")
	}
}
