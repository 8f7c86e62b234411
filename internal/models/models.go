package models

import "time"

// PageStatus represents how far a single input image has progressed
type PageStatus string

const (
	StatusPending   PageStatus = "pending"
	StatusProcessed PageStatus = "processed"
	StatusFailed    PageStatus = "failed"
)

// Page is one input image and the workspace file it became. The ordered
// slice of pages drives both the workspace writes and the PDF page order.
type Page struct {
	Source string // file name inside the input folder
	Name   string // file name written to the workspace and placed in the PDF
	Size   int64  // source size in bytes
	Width  int    // pixel width after transforms
	Height int    // pixel height after transforms
	Status PageStatus
}

// Artifact is a PDF written by a run
type Artifact struct {
	Path   string
	Preset string // empty for the uncompressed base document
	Size   int64
}

// Stats tracks overall run statistics
type Stats struct {
	Discovered     int
	Processed      int
	TotalInputSize int64
	OutputSize     int64
	StartTime      time.Time
	EndTime        time.Time
}

// Result is everything a finished run produced
type Result struct {
	Pages     []Page
	Artifacts []Artifact
	Workspace string
	Stats     Stats
}
