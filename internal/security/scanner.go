// Package security scans input images with ClamAV before they are decoded.
package security

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	clamd "github.com/dutchcoders/go-clamd"

	"imgs2pdf/internal/models"
)

// Scanner provides virus scanning capabilities
type Scanner struct {
	enabled bool
	address string
	client  *clamd.Clamd
}

// ScanResult contains the result of a virus scan
type ScanResult struct {
	Scanned  bool
	Infected bool
	Threats  []string
}

// Disabled returns a scanner that reports every file as not scanned
func Disabled() *Scanner {
	return &Scanner{}
}

// NewScanner connects to clamd at address. With enabled false it returns a
// disabled scanner without touching the network. A daemon that cannot be
// reached is an error; callers decide whether to carry on without it.
func NewScanner(enabled bool, address string) (*Scanner, error) {
	if !enabled {
		return Disabled(), nil
	}
	if address == "" {
		address = "localhost:3310"
	}

	client := clamd.NewClamd(dialAddress(address))
	if err := client.Ping(); err != nil {
		return Disabled(), fmt.Errorf("%w: clamd at %s is not reachable: %w", models.ErrSecurity, address, err)
	}

	return &Scanner{
		enabled: true,
		address: address,
		client:  client,
	}, nil
}

// dialAddress turns host:port into the tcp:// form clamd expects and an
// absolute path into a unix:// socket address.
func dialAddress(address string) string {
	if filepath.IsAbs(address) {
		return "unix://" + address
	}
	if strings.HasPrefix(address, "tcp://") || strings.HasPrefix(address, "unix://") {
		return address
	}
	return "tcp://" + address
}

// IsEnabled returns whether the scanner is enabled
func (s *Scanner) IsEnabled() bool {
	return s != nil && s.enabled
}

// Address is the clamd address in use, empty when disabled
func (s *Scanner) Address() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.address
}

// ScanFile scans a file for viruses
func (s *Scanner) ScanFile(filePath string) (*ScanResult, error) {
	if !s.IsEnabled() {
		return &ScanResult{Scanned: false}, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open file for scanning: %w", models.ErrFilesystem, err)
	}
	defer file.Close()

	return s.ScanReader(file)
}

// ScanReader scans an io.Reader for viruses
func (s *Scanner) ScanReader(reader io.Reader) (*ScanResult, error) {
	if !s.IsEnabled() {
		return &ScanResult{Scanned: false}, nil
	}

	result := &ScanResult{
		Scanned: true,
		Threats: []string{},
	}

	scanResults, err := s.client.ScanStream(reader, make(chan bool))
	if err != nil {
		return nil, fmt.Errorf("%w: scan failed: %w", models.ErrSecurity, err)
	}

	for sr := range scanResults {
		if sr.Status == "FOUND" {
			result.Infected = true
			result.Threats = append(result.Threats, sr.Description)
		}
	}

	return result, nil
}

// Check scans filePath and turns an infection into an ErrSecurity error
func (s *Scanner) Check(filePath string) error {
	res, err := s.ScanFile(filePath)
	if err != nil {
		return err
	}
	if res.Infected {
		return fmt.Errorf("%w: %s is infected: %v", models.ErrSecurity, filepath.Base(filePath), res.Threats)
	}
	return nil
}
