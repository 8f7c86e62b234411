package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"imgs2pdf/internal/config"
	"imgs2pdf/internal/logging"
	"imgs2pdf/internal/manager"
	"imgs2pdf/internal/models"
	"imgs2pdf/internal/security"
	"imgs2pdf/internal/util"
)

var (
	version = "dev"
	commit  = "none"
)

const longHelp = `Concatenate the images of a folder into one PDF, one page per image.

Images are picked by extension (case-sensitive) and ordered naturally, so
img2 comes before img10. Each image is processed in a fixed order:
crop, then clockwise rotation, then flip. Crop edges are inclusive pixel
positions; -1 or an out-of-range value keeps the image edge.

Compression needs Ghostscript. --pdfsettings -1 writes the plain PDF plus
one <output>-<preset>.pdf per preset. A single preset (1 to 5) replaces the
plain PDF with its compressed version, including 1 (default).

List options (--extensions, --crop, --pdfsettings) take comma separated
values or a repeated flag: -c 10,20,300,400 or -c 10 -c 20 -c 300 -c 400.
Space separated values such as -c 10 20 300 400 are rejected.

Images the PDF writer cannot embed directly (HEIC, BMP, TIFF, WebP) are
converted to PNG, so scan.bmp becomes scan.png. When that name is already
taken by an earlier image a numeric suffix is added (scan_1.png).`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Interrupted")
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps an error kind to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.Is(err, models.ErrConfig):
		return 2
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "imgs2pdf",
		Short:         "Concatenate a folder of images into a PDF",
		Long:          longHelp,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", models.ErrConfig, err)
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", models.ErrConfig, err)
	})

	flags := config.BindFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(flags)
		if err != nil {
			return err
		}
		return convert(cmd.Context(), cfg)
	}
	return cmd
}

// resolveConfig layers defaults, the optional YAML file and the flags that
// were set, then validates the result.
func resolveConfig(flags *config.Flags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.ConfigPath != "" {
		if err := config.LoadFile(flags.ConfigPath, &cfg); err != nil {
			return nil, err
		}
	}
	flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func convert(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()

	logger, err := logging.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrFilesystem, err)
	}
	defer logger.Close()
	log := logger.WithField("run_id", uuid.NewString())

	log.Debugf("imgs2pdf %s (%s)", version, commit)
	scanner := newScanner(cfg, log)

	res, err := manager.NewManager(cfg, log, scanner).Run(ctx)
	if cfg.Diagnose {
		util.LogFullDiagnostics(log, startTime)
	}
	if err != nil {
		return err
	}

	logSummary(log, res)
	return nil
}

// logSummary reports the run statistics and every PDF written
func logSummary(log logrus.FieldLogger, res *models.Result) {
	st := res.Stats
	log.Infof("Processing completed in %s", st.EndTime.Sub(st.StartTime).Round(time.Millisecond))
	log.Infof("Pages: %d of %d discovered (%s of source images)",
		st.Processed, st.Discovered, util.FormatBytes(st.TotalInputSize))
	log.Infof("Output size: %s", util.FormatBytes(st.OutputSize))
	for _, a := range res.Artifacts {
		entry := log.WithField("size", util.FormatBytes(a.Size))
		if a.Preset != "" {
			entry = entry.WithField("preset", a.Preset)
		}
		entry.Infof("Wrote %s", a.Path)
	}
}

// newScanner connects to clamd when scanning was requested. An unreachable
// daemon turns scanning off with a warning instead of failing the run.
func newScanner(cfg *config.Config, log logrus.FieldLogger) *security.Scanner {
	if !cfg.ScanInputs {
		return security.Disabled()
	}
	scanner, err := security.NewScanner(true, cfg.ClamdAddress)
	if err != nil {
		log.WithError(err).Warn("Failed to initialize virus scanner")
		log.Warn("Continuing without virus scanning")
		return security.Disabled()
	}
	log.Infof("Virus scanning enabled (%s)", scanner.Address())
	return scanner
}
