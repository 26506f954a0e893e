package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeySlug       = "slug"
	KeyTitle      = "title"
	KeyField      = "field"
	KeyYear       = "year"
	KeyCount      = "count"
	KeyOutput     = "output"
	KeySource     = "source"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Field(f string) slog.Attr        { return slog.String(KeyField, f) }
func Year(y string) slog.Attr         { return slog.String(KeyYear, y) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
