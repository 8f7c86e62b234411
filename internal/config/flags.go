package config

// Flags are bound to their own Config copy. Apply moves only the flags the
// user actually passed, so values from a YAML file survive unless overridden.

import (
	"github.com/spf13/pflag"
)

// Flags holds the command line values before they are merged into a Config
type Flags struct {
	fs         *pflag.FlagSet
	val        Config
	ConfigPath string
}

// BindFlags registers every option on fs with defaults from DefaultConfig
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs, val: DefaultConfig()}
	v := &f.val

	fs.StringVarP(&v.Output, "output", "o", v.Output, "output pdf file name")
	fs.StringVarP(&v.InputDir, "folder", "f", v.InputDir, "source images directory")
	fs.StringSliceVarP(&v.Extensions, "extensions", "e", v.Extensions, "source image extensions (repeat or comma separate)")
	fs.IntSliceVarP(&v.Crop, "crop", "c", v.Crop, "crop box: left,top,right,bottom in pixels (-1 keeps the image edge)")
	fs.IntVarP(&v.Angle, "angle", "a", v.Angle, "clockwise rotation: 0, 90, 180 or 270")
	fs.BoolVarP(&v.Horizontal, "horizontal", "l", false, "flip images horizontally")
	fs.BoolVarP(&v.Vertical, "vertical", "u", false, "flip images vertically")
	fs.BoolVarP(&v.Reverse, "reverse", "r", false, "concatenate images in reverse natural order")
	fs.BoolVarP(&v.Store, "store", "s", false, "keep the intermediate images")
	fs.IntSliceVarP(&v.PDFSettings, "pdfsettings", "p", v.PDFSettings,
		"compression presets: -1 all, 0 none, 1 default, 2 prepress, 3 printer, 4 ebook, 5 screen")

	fs.StringVar(&v.GhostscriptPath, "gs", v.GhostscriptPath, "ghostscript binary used for compression")
	fs.IntVar(&v.JPEGQuality, "jpeg-quality", v.JPEGQuality, "quality for re-encoded JPEG images (1-100)")

	fs.BoolVarP(&v.Verbose, "verbose", "v", false, "enable debug output")
	fs.StringVar(&v.LogFile, "log-file", "", "also append logs to this file")
	fs.BoolVar(&v.NoColor, "no-color", false, "disable colored logs")
	fs.BoolVar(&v.NoProgress, "no-progress", false, "hide the progress bar")
	fs.BoolVar(&v.Diagnose, "diagnose", false, "show diagnostic information at the end of the run")

	fs.BoolVar(&v.ScanInputs, "scan", false, "scan input images for viruses using ClamAV")
	fs.StringVar(&v.ClamdAddress, "clamd", v.ClamdAddress, "ClamAV daemon address")

	fs.StringVar(&f.ConfigPath, "config", "", "YAML file with default settings")
	return f
}

// Apply copies every flag that was set on the command line into cfg
func (f *Flags) Apply(cfg *Config) {
	v := &f.val
	set := func(name string, apply func()) {
		if f.fs.Changed(name) {
			apply()
		}
	}

	set("output", func() { cfg.Output = v.Output })
	set("folder", func() { cfg.InputDir = v.InputDir })
	set("extensions", func() { cfg.Extensions = v.Extensions })
	set("crop", func() { cfg.Crop = v.Crop })
	set("angle", func() { cfg.Angle = v.Angle })
	set("horizontal", func() { cfg.Horizontal = v.Horizontal })
	set("vertical", func() { cfg.Vertical = v.Vertical })
	set("reverse", func() { cfg.Reverse = v.Reverse })
	set("store", func() { cfg.Store = v.Store })
	set("pdfsettings", func() { cfg.PDFSettings = v.PDFSettings })
	set("gs", func() { cfg.GhostscriptPath = v.GhostscriptPath })
	set("jpeg-quality", func() { cfg.JPEGQuality = v.JPEGQuality })
	set("verbose", func() { cfg.Verbose = v.Verbose })
	set("log-file", func() { cfg.LogFile = v.LogFile })
	set("no-color", func() { cfg.NoColor = v.NoColor })
	set("no-progress", func() { cfg.NoProgress = v.NoProgress })
	set("diagnose", func() { cfg.Diagnose = v.Diagnose })
	set("scan", func() { cfg.ScanInputs = v.ScanInputs })
	set("clamd", func() { cfg.ClamdAddress = v.ClamdAddress })
}
