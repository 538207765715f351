// Package report renders analysis results as a PNG figure and a text or YAML summary.
//
// A Figure has two panels drawn with go-chart. The left panel shows the raw
// points with their trend curves on a linear scale. The right panel shows
// ln(n) against ln(t) with the log-log trend lines whose slopes estimate the
// growth order. The panels are composed side by side under a caption and
// encoded as a single PNG.
//
// A Summary prints per-series slopes, intercepts, R², the Big-O label, the
// speedup at the largest sample count and the raw input table.
package report
