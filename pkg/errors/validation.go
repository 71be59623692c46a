package errors

import (
	"strings"
	"unicode"
)

// ValidateTrackID validates a track identifier read from an input document.
//
// Identifiers are opaque to the diagram, but they end up as SVG text, JSON
// keys and file name fragments, so the rules reject what would break those:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateTrackID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "track identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "track identifier too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "track identifier contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateSize checks a requested image size.
// Width must be positive; the second value is either an absolute height
// (>= 1) or a per-track aspect ratio in (0, 1).
func ValidateSize(width, heightOrAspect float64) error {
	if width <= 0 {
		return New(ErrCodeInvalidInput, "width must be positive, got %g", width)
	}
	if heightOrAspect <= 0 {
		return New(ErrCodeInvalidInput, "height or aspect must be positive, got %g", heightOrAspect)
	}
	return nil
}
