// Package export writes the current claim analysis to timestamped files.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"claimdesk/internal/claim"
	"claimdesk/internal/jsonutil"
)

// Format names an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ErrNoAnalysis is returned when there is nothing to export.
var ErrNoAnalysis = errors.New("no analysis to export")

// ParseFormat accepts "json" or "xlsx".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatXLSX:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or xlsx)", s)
	}
}

// FileName returns claim_analysis_<unix-millis>.<ext> for now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("claim_analysis_%d.%s", now.UnixMilli(), f)
}

// Write exports a in format f under dir and returns the written path.
func Write(f Format, a *claim.Analysis, dir string, now time.Time) (string, error) {
	switch f {
	case FormatJSON:
		return JSON(a, dir, now)
	case FormatXLSX:
		return XLSX(a, dir, now)
	default:
		return "", fmt.Errorf("unknown export format %q", f)
	}
}

// JSON writes a as 2-space indented JSON. The document is the server's
// response re-indented, so fields this client does not model survive.
func JSON(a *claim.Analysis, dir string, now time.Time) (string, error) {
	if a == nil {
		return "", ErrNoAnalysis
	}
	data, err := indented(a)
	if err != nil {
		return "", err
	}

	path, err := prepare(dir, FileName(FormatJSON, now))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func indented(a *claim.Analysis) ([]byte, error) {
	if len(a.Raw) > 0 {
		return jsonutil.Indent(a.Raw, "  ")
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	return data, nil
}

func prepare(dir, name string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}
