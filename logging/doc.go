// Package logging configures log/slog loggers for the tokenrender binaries.
//
// Library packages never log on their own; layers that do (batch rendering,
// the CLIs) accept a *slog.Logger and fall back to Nop when none is given.
package logging
