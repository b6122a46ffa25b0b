package docgen

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Marker lines delimiting the generated region in a target document.
// They are matched literally and case-sensitively.
const (
	StartMarker = "[//]: # (CONFIG_DOCS_START)"
	EndMarker   = "[//]: # (CONFIG_DOCS_END)"
)

// ErrMissingMarker indicates a target file without a complete marker pair.
var ErrMissingMarker = errors.New("marker pair not found")

// Patch replaces the region between the first marker pair with the rendered
// markdown. Everything before the start marker and after the end marker is
// returned byte for byte, so re-patching with identical content is idempotent.
func Patch(content, rendered string) (string, error) {
	start := strings.Index(content, StartMarker)
	if start < 0 {
		return "", fmt.Errorf("%w: %q", ErrMissingMarker, StartMarker)
	}
	bodyStart := start + len(StartMarker)

	end := strings.Index(content[bodyStart:], EndMarker)
	if end < 0 {
		return "", fmt.Errorf("%w: %q", ErrMissingMarker, EndMarker)
	}
	end += bodyStart

	return content[:bodyStart] + "\n" + rendered + "\n" + content[end:], nil
}

// PatchFile applies Patch to a file in place. The file is written back only
// when both markers are present; on any failure it is left untouched.
func PatchFile(path, rendered string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read target %s: %w", path, err)
	}

	patched, err := Patch(string(raw), rendered)
	if err != nil {
		return fmt.Errorf("target %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat target %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(patched), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write target %s: %w", path, err)
	}
	return nil
}
