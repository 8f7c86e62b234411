// Package converter turns source images into workspace images and
// workspace images into a PDF.
package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"imgs2pdf/internal/config"
	"imgs2pdf/internal/models"
)

// ConversionResult describes one processed image
type ConversionResult struct {
	Page     models.Page
	Duration time.Duration
}

// ProcessImage decodes cfg.InputDir/source, strips alpha, applies the
// configured crop, rotation and flip, and writes the result to
// workDir/target. target is normally TargetName(source).
func ProcessImage(cfg *config.Config, workDir, source, target string) (*ConversionResult, error) {
	startTime := time.Now()
	result := &ConversionResult{
		Page: models.Page{
			Source: source,
			Name:   target,
			Status: models.StatusPending,
		},
	}

	srcPath := filepath.Join(cfg.InputDir, source)
	info, err := os.Stat(srcPath)
	if err != nil {
		result.Page.Status = models.StatusFailed
		return result, fmt.Errorf("%w: %w", models.ErrFilesystem, err)
	}
	result.Page.Size = info.Size()

	img, err := Decode(srcPath)
	if err != nil {
		result.Page.Status = models.StatusFailed
		return result, err
	}

	out := Transform(StripAlpha(img), cfg)
	if err := Encode(out, filepath.Join(workDir, target), cfg.JPEGQuality); err != nil {
		result.Page.Status = models.StatusFailed
		return result, err
	}

	b := out.Bounds()
	result.Page.Width, result.Page.Height = b.Dx(), b.Dy()
	result.Page.Status = models.StatusProcessed
	result.Duration = time.Since(startTime)
	return result, nil
}
