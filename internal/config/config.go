package config

import (
	"fmt"
	"strings"

	"imgs2pdf/internal/models"
)

// FlipMode selects the mirror applied after rotation
type FlipMode int

const (
	FlipNone FlipMode = iota
	FlipHorizontal
	FlipVertical
	FlipBoth
)

// FlipFromFlags maps the --horizontal/--vertical pair to a mode
func FlipFromFlags(horizontal, vertical bool) FlipMode {
	switch {
	case horizontal && vertical:
		return FlipBoth
	case horizontal:
		return FlipHorizontal
	case vertical:
		return FlipVertical
	}
	return FlipNone
}

// Code returns the conventional flip code (1 horizontal, 0 vertical,
// -1 both). ok is false for FlipNone, which has no code.
func (f FlipMode) Code() (code int, ok bool) {
	switch f {
	case FlipHorizontal:
		return 1, true
	case FlipVertical:
		return 0, true
	case FlipBoth:
		return -1, true
	}
	return 0, false
}

func (f FlipMode) String() string {
	switch f {
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	case FlipBoth:
		return "horizontal+vertical"
	}
	return "none"
}

// Preset is a Ghostscript -dPDFSETTINGS quality level
type Preset string

const (
	PresetDefault  Preset = "default"
	PresetPrepress Preset = "prepress"
	PresetPrinter  Preset = "printer"
	PresetEbook    Preset = "ebook"
	PresetScreen   Preset = "screen"
)

// Presets lists every preset in CLI order: code n selects Presets[n-1].
var Presets = []Preset{PresetDefault, PresetPrepress, PresetPrinter, PresetEbook, PresetScreen}

// Compression is the resolved --pdfsettings selection
type Compression struct {
	Presets []Preset
	All     bool // the "-1" sentinel: every preset, base kept
}

// Enabled reports whether any compressed output is requested
func (c Compression) Enabled() bool { return len(c.Presets) > 0 }

// ReplaceBase reports whether the single compressed output should take the
// base file name. That happens only for exactly one explicitly chosen preset.
func (c Compression) ReplaceBase() bool { return !c.All && len(c.Presets) == 1 }

// ParsePDFSettings resolves CLI preset codes. -1 selects all presets, 0 none,
// 1..5 the named presets in the order given. -1 and 0 must stand alone.
func ParsePDFSettings(codes []int) (Compression, error) {
	if len(codes) == 0 {
		codes = []int{-1}
	}
	var c Compression
	seen := make(map[Preset]bool)
	for _, code := range codes {
		switch {
		case code < -1 || code > len(Presets):
			return Compression{}, fmt.Errorf("%w: pdfsettings value %d out of range [-1, %d]", models.ErrConfig, code, len(Presets))
		case code <= 0:
			if len(codes) > 1 {
				return Compression{}, fmt.Errorf("%w: pdfsettings %d cannot be combined with other values", models.ErrConfig, code)
			}
			if code == -1 {
				c.All = true
				c.Presets = append([]Preset(nil), Presets...)
			}
		default:
			p := Presets[code-1]
			if !seen[p] {
				seen[p] = true
				c.Presets = append(c.Presets, p)
			}
		}
	}
	return c, nil
}

// Edge is one side of a crop box. An unset edge falls back to the image border.
type Edge struct {
	Value int
	Set   bool
}

// EdgeFrom converts a CLI value; negative values mean "unset".
func EdgeFrom(v int) Edge {
	if v < 0 {
		return Edge{}
	}
	return Edge{Value: v, Set: true}
}

// CropBox holds inclusive pixel edges
type CropBox struct {
	Left, Top, Right, Bottom Edge
}

// IsZero reports whether no edge was requested
func (b CropBox) IsZero() bool {
	return !b.Left.Set && !b.Top.Set && !b.Right.Set && !b.Bottom.Set
}

// ParseCrop reads up to four values (left, top, right, bottom). Missing
// entries are padded as unset.
func ParseCrop(vals []int) (CropBox, error) {
	if len(vals) > 4 {
		return CropBox{}, fmt.Errorf("%w: crop takes at most 4 values (left top right bottom), got %d", models.ErrConfig, len(vals))
	}
	padded := []int{-1, -1, -1, -1}
	copy(padded, vals)
	return CropBox{
		Left:   EdgeFrom(padded[0]),
		Top:    EdgeFrom(padded[1]),
		Right:  EdgeFrom(padded[2]),
		Bottom: EdgeFrom(padded[3]),
	}, nil
}

// Config holds application configuration. Raw fields mirror the command line
// and the YAML file; derived fields are filled in by Validate.
type Config struct {
	Output      string   `yaml:"output"`
	InputDir    string   `yaml:"folder"`
	Extensions  []string `yaml:"extensions"`
	Crop        []int    `yaml:"crop"`
	Angle       int      `yaml:"angle"`
	Horizontal  bool     `yaml:"horizontal"`
	Vertical    bool     `yaml:"vertical"`
	Reverse     bool     `yaml:"reverse"`
	Store       bool     `yaml:"store"`
	PDFSettings []int    `yaml:"pdfsettings"`

	GhostscriptPath string `yaml:"gs"`
	JPEGQuality     int    `yaml:"jpeg_quality"`

	// Output and diagnostics
	Verbose    bool   `yaml:"verbose"`
	LogFile    string `yaml:"log_file"`
	NoColor    bool   `yaml:"no_color"`
	NoProgress bool   `yaml:"no_progress"`
	Diagnose   bool   `yaml:"diagnose"`

	// Security options
	ScanInputs   bool   `yaml:"scan"`
	ClamdAddress string `yaml:"clamd"`

	// Derived by Validate
	CropBox     CropBox     `yaml:"-"`
	Flip        FlipMode    `yaml:"-"`
	Compression Compression `yaml:"-"`
}

// DefaultConfig returns the settings used when neither a config file nor a
// flag says otherwise.
func DefaultConfig() Config {
	return Config{
		Output:          "output.pdf",
		InputDir:        ".",
		Extensions:      []string{"png"},
		Crop:            []int{-1, -1, -1, -1},
		PDFSettings:     []int{-1},
		GhostscriptPath: "gs",
		JPEGQuality:     95,
		ClamdAddress:    "localhost:3310",
	}
}

// Validate checks every raw field and fills in the derived ones. Output is
// reduced to its base name and extensions gain a leading dot.
func (c *Config) Validate() error {
	c.Output = strings.TrimSuffix(c.Output, ".pdf")
	if c.Output == "" {
		return fmt.Errorf("%w: output name must not be empty", models.ErrConfig)
	}
	if c.InputDir == "" {
		return fmt.Errorf("%w: input folder must not be empty", models.ErrConfig)
	}

	exts, err := NormalizeExtensions(c.Extensions)
	if err != nil {
		return err
	}
	c.Extensions = exts

	switch c.Angle {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("%w: invalid angle %d (use 0, 90, 180 or 270)", models.ErrConfig, c.Angle)
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg quality %d out of range [1, 100]", models.ErrConfig, c.JPEGQuality)
	}

	if c.CropBox, err = ParseCrop(c.Crop); err != nil {
		return err
	}
	if c.Compression, err = ParsePDFSettings(c.PDFSettings); err != nil {
		return err
	}
	if c.Compression.Enabled() && c.GhostscriptPath == "" {
		return fmt.Errorf("%w: ghostscript binary must not be empty when compressing", models.ErrConfig)
	}
	c.Flip = FlipFromFlags(c.Horizontal, c.Vertical)
	return nil
}

// NormalizeExtensions prefixes each extension with a dot, dropping blanks
// and duplicates.
func NormalizeExtensions(exts []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one extension is required", models.ErrConfig)
	}
	return out, nil
}

// OutputPath is the base PDF path
func (c *Config) OutputPath() string { return c.Output + ".pdf" }

// PresetPath is the path of the compressed sibling for p
func (c *Config) PresetPath(p Preset) string { return c.Output + "-" + string(p) + ".pdf" }
