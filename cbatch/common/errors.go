package common

import "errors"

// Common error types used across corpus preparation packages
var (
	// ErrMissingResource marks an absent corpus root, class subdirectory, or vocabulary file.
	ErrMissingResource = errors.New("missing resource")

	// ErrInvalidArgument marks construction parameters outside their valid range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange marks a corpus access outside [0, len).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyDocument marks a document that tokenizes to zero sentences and
	// therefore has no defined maximum sentence length.
	ErrEmptyDocument = errors.New("document has no sentences after tokenization")
)
