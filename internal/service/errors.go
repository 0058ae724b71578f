package service

import "errors"

// Sentinel errors the handlers translate into HTTP responses. Store
// mutations against stale ids are deliberately not errors (they no-op);
// these cover validation and pipeline failures only.
var (
	ErrNotFound           = errors.New("record not found")
	ErrNoFilesSelected    = errors.New("no files selected")
	ErrEmptyName          = errors.New("no name provided")
	ErrInvalidPDF         = errors.New("input is not a valid PDF document")
	ErrNothingToCompress  = errors.New("no files match the selected filters")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
