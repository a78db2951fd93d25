// Package tabular turns spreadsheet payloads into header keyed rows for the normalizer
//
// Design choices:
// - One decoder per format, picked by file extension; the remote cohort feed is always CSV.
// - Decoders never interpret cell values; rows stay map[string]any of raw strings.
// - Malformed CSV records are skipped and counted rather than failing the whole payload.
// - Fetch is a single GET with a client timeout and no retry; the caller decides what to do.
package tabular
