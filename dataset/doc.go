// Package dataset loads benchmark timing files into ordered series.
//
// Two layouts are supported, selected with format.Schema:
//
//	SchemaComparison: <n> <baseline seconds> <accelerated seconds>
//	SchemaSingle:     <n> <accelerated seconds>
//
// Fields are whitespace-separated, one record per line, with no header row.
// Blank lines and lines starting with '#' are skipped. Any other line that
// does not match the layout aborts parsing with an *errs.LineError.
//
// Inputs archived with zstd, S2 or LZ4 are decoded transparently by Load
// based on the file extension.
package dataset
