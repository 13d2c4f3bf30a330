package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyBuildID    = "build_id"
	KeyStep       = "step"
	KeyWeight     = "weight"
	KeyDurationMS = "duration_ms"
	KeyVersion    = "version"
	KeyPart       = "part"
	KeyKind       = "kind"
	KeyPackage    = "package"
	KeyVendor     = "vendor"
	KeyCommit     = "commit"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyCount      = "count"
	KeyTag        = "tag"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Step(name string) slog.Attr      { return slog.String(KeyStep, name) }
func Weight(w int) slog.Attr          { return slog.Int(KeyWeight, w) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Part(p string) slog.Attr         { return slog.String(KeyPart, p) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Package(name string) slog.Attr   { return slog.String(KeyPackage, name) }
func Vendor(v string) slog.Attr       { return slog.String(KeyVendor, v) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }

// Error renders err as a string attribute; nil yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
