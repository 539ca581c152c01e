package datasets

import "errors"

// Sentinel errors raised by dataset construction and access. Raise sites wrap
// them with fmt.Errorf("...: %w", ...) so callers can discriminate with
// errors.Is while still seeing the offending detail.
var (
	// ErrSchema is returned at construction when the workbook yields no
	// paired HbO/HbR sheets, or its event vocabulary matches neither the
	// tertiary {S,F,H} nor the binary {F,H} regime.
	ErrSchema = errors.New("invalid workbook schema")

	// ErrSplit is returned at construction for an unrecognized split name.
	ErrSplit = errors.New("unknown split")

	// ErrIndexOutOfRange is returned by Sample for indices outside [0, Len).
	ErrIndexOutOfRange = errors.New("sample index out of range")
)
