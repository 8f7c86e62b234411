package converter

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"
	_ "golang.org/x/image/webp"

	"imgs2pdf/internal/models"
)

// embeddable lists the formats the PDF writer can place directly. Anything
// else is re-encoded as PNG in the workspace.
var embeddable = map[string]string{
	".png":  "png",
	".jpg":  "jpg",
	".jpeg": "jpg",
	".gif":  "gif",
}

// IsHEIC reports whether name has a .heic extension, ignoring case
func IsHEIC(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".heic")
}

// TargetName returns the file name a source image is written under in the
// workspace: photo.HEIC becomes photo.png, page.jpg stays page.jpg.
func TargetName(name string) string {
	ext := filepath.Ext(name)
	if _, ok := embeddable[strings.ToLower(ext)]; ok {
		return name
	}
	return strings.TrimSuffix(name, ext) + ".png"
}

// imageType is the PDF writer's type name for a workspace file
func imageType(name string) string {
	return embeddable[strings.ToLower(filepath.Ext(name))]
}

// Decode reads an image in its native format. HEIC goes through the HEIF
// decoder; everything else through the registered image decoders.
func Decode(path string) (image.Image, error) {
	if IsHEIC(path) {
		return decodeHEIC(path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrDecode, filepath.Base(path), err)
	}
	return img, nil
}

func decodeHEIC(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", models.ErrFilesystem, filepath.Base(path), err)
	}
	defer f.Close()

	img, err := goheif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrDecode, filepath.Base(path), err)
	}
	return img, nil
}

// Encode writes img to path with the encoder implied by its extension
func Encode(img image.Image, path string, jpegQuality int) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrEncode, filepath.Base(path), err)
	}
	return nil
}
