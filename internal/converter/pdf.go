package converter

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"imgs2pdf/internal/models"
)

// pageDPI is the resolution used to size pages from pixel dimensions
const pageDPI = 96.0

// pointsFromPixels converts a pixel length to PDF points at pageDPI
func pointsFromPixels(px int) float64 {
	return float64(px) * 72.0 / pageDPI
}

// AssemblePDF writes one page per workspace image, in order, to outPath.
// Each page is exactly the size of its image.
func AssemblePDF(pages []models.Page, workDir, outPath string) error {
	if len(pages) == 0 {
		return fmt.Errorf("%w: no pages to write", models.ErrAssemble)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("imgs2pdf", true)

	for _, p := range pages {
		path := filepath.Join(workDir, p.Name)
		pw, ph, err := pixelSize(p, path)
		if err != nil {
			return err
		}
		w, h := pointsFromPixels(pw), pointsFromPixels(ph)

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(path, 0, 0, w, h, false, gofpdf.ImageOptions{ImageType: imageType(p.Name)}, 0, "")
		if pdf.Err() {
			return fmt.Errorf("%w: page %s: %w", models.ErrAssemble, p.Name, pdf.Error())
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("%w: failed to write pdf file: %w", models.ErrAssemble, err)
	}
	return nil
}

// pixelSize returns the page's recorded size, reading the image header when
// the page was not produced by this run.
func pixelSize(p models.Page, path string) (int, int, error) {
	if p.Width > 0 && p.Height > 0 {
		return p.Width, p.Height, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to open %s: %w", models.ErrFilesystem, p.Name, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %w", models.ErrDecode, p.Name, err)
	}
	return cfg.Width, cfg.Height, nil
}

// VerifyPDF reads the written document back and checks its page count
func VerifyPDF(path string, want int) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: written pdf is unreadable: %w", models.ErrAssemble, err)
	}
	if n != want {
		return n, fmt.Errorf("%w: %s has %d pages, want %d", models.ErrAssemble, path, n, want)
	}
	return n, nil
}
