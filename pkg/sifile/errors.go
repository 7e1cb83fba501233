package sifile

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported SI file format")
	ErrFailedToParseYAML = errors.New("failed to parse YAML SI file")
	ErrFailedToParseJSON = errors.New("failed to parse JSON SI file")
	ErrNoRecords         = errors.New("SI file contains no records")
	ErrReadFile          = errors.New("failed to read SI file")
	ErrParsingCancelled  = errors.New("SI file parsing cancelled")
)
