// Package manager drives one conversion run: workspace, discovery, the
// per-image loop, PDF assembly, compression and cleanup.
package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"imgs2pdf/internal/compress"
	"imgs2pdf/internal/config"
	"imgs2pdf/internal/converter"
	"imgs2pdf/internal/discover"
	"imgs2pdf/internal/logging"
	"imgs2pdf/internal/models"
	"imgs2pdf/internal/security"
	"imgs2pdf/internal/util"
	"imgs2pdf/internal/workspace"
)

// Manager runs the pipeline for a validated config
type Manager struct {
	config      *config.Config
	log         logrus.FieldLogger
	scanner     *security.Scanner
	compressor  *compress.Compressor
	progressBar *progressbar.ProgressBar
	stats       models.Stats
}

// NewManager creates a new manager instance. scanner may be nil.
func NewManager(cfg *config.Config, log logrus.FieldLogger, scanner *security.Scanner) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if scanner == nil {
		scanner = security.Disabled()
	}
	return &Manager{
		config:     cfg,
		log:        log,
		scanner:    scanner,
		compressor: compress.New(cfg.GhostscriptPath, log),
	}
}

// Run executes every step in order and stops at the first error. The
// workspace is removed on every path unless Store is set.
func (m *Manager) Run(ctx context.Context) (res *models.Result, err error) {
	m.stats = models.Stats{StartTime: time.Now()}
	res = &models.Result{}
	defer func() {
		m.stats.EndTime = time.Now()
		res.Stats = m.stats
	}()

	if m.config.Compression.Enabled() {
		if err := m.compressor.Available(); err != nil {
			return res, err
		}
	}

	work, err := workspace.Create(m.config.InputDir)
	if err != nil {
		return res, err
	}
	res.Workspace = work
	m.log.Debugf("workspace: %s", work)
	defer func() {
		if cerr := workspace.Cleanup(work, m.config.Store); cerr != nil {
			m.log.WithError(cerr).Warn("Failed to remove workspace")
			if err == nil {
				err = cerr
			}
			return
		}
		if m.config.Store {
			m.log.Infof("Workspace kept at %s", work)
		}
	}()

	files, err := discover.Files(m.config.InputDir, m.config.Extensions, m.config.Reverse)
	if err != nil {
		return res, err
	}
	m.stats.Discovered = len(files)
	m.log.Infof("Found %d images in %s", len(files), m.config.InputDir)
	m.log.Infof("Processing order: %s", strings.Join(files, ", "))

	pages, err := m.processAll(ctx, files, work)
	res.Pages = pages
	if err != nil {
		return res, err
	}

	base := m.config.OutputPath()
	if err := converter.AssemblePDF(pages, work, base); err != nil {
		return res, err
	}
	if _, err := converter.VerifyPDF(base, len(pages)); err != nil {
		return res, err
	}
	size, err := fileSize(base)
	if err != nil {
		return res, err
	}
	m.stats.OutputSize = size
	m.log.Infof("PDF size: %s", util.FormatBytes(size))

	if !m.config.Compression.Enabled() {
		res.Artifacts = []models.Artifact{{Path: base, Size: size}}
		return res, nil
	}

	compressed, err := m.compressor.Run(ctx, m.config)
	if m.config.Compression.ReplaceBase() {
		res.Artifacts = compressed
		if len(compressed) == 1 {
			m.stats.OutputSize = compressed[0].Size
		}
	} else {
		res.Artifacts = append([]models.Artifact{{Path: base, Size: size}}, compressed...)
	}
	return res, err
}

// processAll turns every discovered file into a workspace image, in order
func (m *Manager) processAll(ctx context.Context, files []string, work string) ([]models.Page, error) {
	m.progressBar = progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(!m.config.NoProgress && logging.IsTerminal(os.Stderr)),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	defer m.progressBar.Close()

	used := make(map[string]bool, len(files))
	pages := make([]models.Page, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		if m.scanner.IsEnabled() {
			if err := m.scanner.Check(filepath.Join(m.config.InputDir, name)); err != nil {
				return pages, err
			}
			m.log.WithField("file", name).Debug("scan clean")
		}

		target := workspace.UniqueName(used, converter.TargetName(name))
		result, err := converter.ProcessImage(m.config, work, name, target)
		if err != nil {
			pages = append(pages, result.Page)
			return pages, err
		}

		m.log.WithFields(logrus.Fields{
			"file":     name,
			"target":   target,
			"size":     fmt.Sprintf("%dx%d", result.Page.Width, result.Page.Height),
			"duration": result.Duration.Round(time.Millisecond),
			"status":   result.Page.Status,
		}).Debug("processed")

		pages = append(pages, result.Page)
		m.stats.Processed++
		m.stats.TotalInputSize += result.Page.Size
		_ = m.progressBar.Add(1)
	}
	return pages, nil
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", models.ErrFilesystem, err)
	}
	return info.Size(), nil
}
