package models

import "errors"

// Failure taxonomy surfaced by the ingest and forecast paths.
// Empty inputs are NOT errors anywhere in the analytics core: the RFM
// engine and the feature builder return empty, well-typed results.
var (
	ErrMissingSource    = errors.New("raw data source missing or unreadable")
	ErrSchemaMismatch   = errors.New("raw data source does not match the expected schema")
	ErrModelUnavailable = errors.New("revenue model artifact missing or corrupt")
	ErrFeatureMismatch  = errors.New("feature columns do not match model expectations")
)
