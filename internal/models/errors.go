package models

import "errors"

// Error kinds. Every failure leaving a package is wrapped with exactly one of
// these so the command can pick an exit code with errors.Is.
var (
	ErrConfig         = errors.New("configuration error")
	ErrEmptySelection = errors.New("no input images")
	ErrDecode         = errors.New("decode failed")
	ErrEncode         = errors.New("encode failed")
	ErrAssemble       = errors.New("pdf assembly failed")
	ErrCompressor     = errors.New("compression failed")
	ErrFilesystem     = errors.New("filesystem error")
	ErrSecurity       = errors.New("security scan failed")
)
