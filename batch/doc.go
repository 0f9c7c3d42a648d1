// Package batch renders one compiled template against every record of a
// source. Records are rendered by a worker pool bounded by
// Config.Parallelism and written to Config.Out in source order.
//
// The main entry point is Run, which accepts a Config struct with all
// parameters for the run.
package batch
