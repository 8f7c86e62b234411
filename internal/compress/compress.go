// Package compress writes size-reduced variants of the assembled PDF with
// Ghostscript's pdfwrite device.
package compress

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"imgs2pdf/internal/config"
	"imgs2pdf/internal/models"
	"imgs2pdf/internal/util"
)

// Compressor runs the Ghostscript binary
type Compressor struct {
	Binary string
	Log    logrus.FieldLogger
}

// New returns a Compressor for binary, or "gs" when binary is empty
func New(binary string, log logrus.FieldLogger) *Compressor {
	if binary == "" {
		binary = "gs"
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		log = l
	}
	return &Compressor{Binary: binary, Log: log}
}

// Available checks that the binary can be found
func (c *Compressor) Available() error {
	if _, err := exec.LookPath(c.Binary); err != nil {
		return fmt.Errorf("%w: ghostscript binary %q not found: %w", models.ErrCompressor, c.Binary, err)
	}
	return nil
}

// Args returns the command line for compressing in to out with preset
func Args(in, out string, preset config.Preset) []string {
	return []string{
		"-sDEVICE=pdfwrite",
		"-dPDFSETTINGS=/" + string(preset),
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-dSAFER",
		"-sOutputFile=" + out,
		in,
	}
}

// Compress writes a copy of in to out at the given quality preset
func (c *Compressor) Compress(ctx context.Context, in, out string, preset config.Preset) error {
	cmd := exec.CommandContext(ctx, c.Binary, Args(in, out, preset)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.Log.WithField("preset", preset).Debugf("running %s %s", c.Binary, strings.Join(cmd.Args[1:], " "))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: %s preset: %w: %s", models.ErrCompressor, preset, err, msg)
		}
		return fmt.Errorf("%w: %s preset: %w", models.ErrCompressor, preset, err)
	}
	return nil
}

// Run writes one compressed sibling of cfg.OutputPath() per requested preset.
// When a single preset was chosen explicitly its output replaces the base
// file and is the only artifact returned.
func (c *Compressor) Run(ctx context.Context, cfg *config.Config) ([]models.Artifact, error) {
	base := cfg.OutputPath()
	var artifacts []models.Artifact

	for _, preset := range cfg.Compression.Presets {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}

		out := cfg.PresetPath(preset)
		if err := c.Compress(ctx, base, out, preset); err != nil {
			return artifacts, err
		}
		size, err := fileSize(out)
		if err != nil {
			return artifacts, err
		}
		c.Log.Infof("Compressed (%s) PDF size: %s", preset, util.FormatBytes(size))
		artifacts = append(artifacts, models.Artifact{Path: out, Preset: string(preset), Size: size})
	}

	if cfg.Compression.ReplaceBase() && len(artifacts) == 1 {
		if err := os.Rename(artifacts[0].Path, base); err != nil {
			return artifacts, fmt.Errorf("%w: failed to replace %s: %w", models.ErrFilesystem, base, err)
		}
		c.Log.Debugf("replaced %s with the %s output", base, artifacts[0].Preset)
		artifacts[0].Path = base
	}
	return artifacts, nil
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", models.ErrFilesystem, err)
	}
	return info.Size(), nil
}
