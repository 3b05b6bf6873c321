package domain

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrExtractionFailed    = errors.New("extraction service call failed")
	ErrMalformedExtraction = errors.New("extraction response does not match expected format")
)
