package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateDependencyName validates a dependency name from a manifest.
// It rejects names that could be used for path traversal when the name
// becomes a directory under the fetch destination.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateDependencyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "dependency name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidManifest, "dependency name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "dependency name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidManifest, "dependency name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateArtifactPath validates a declared artifact path from a manifest.
// Artifact paths are joined to the fetch root, so they must stay relative
// and must not climb out of it.
func ValidateArtifactPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "artifact path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "artifact path contains null byte")
	}

	if filepath.IsAbs(path) {
		return New(ErrCodeInvalidPath, "artifact path must be relative: %s", path)
	}

	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "artifact path escapes fetch root: %s", path)
	}

	return nil
}
