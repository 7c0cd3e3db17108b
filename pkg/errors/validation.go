package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidatePath validates a project-relative file path for safety.
// Slide image paths are resolved against the project directory, so they
// must not be able to escape it.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// blockedSchemes lists URL schemes that run code in the page when opened.
var blockedSchemes = map[string]bool{
	"javascript": true,
	"vbscript":   true,
	"data":       true,
}

// ValidateURL validates a hotspot URL for safety.
// Any scheme (or a relative reference) is accepted except the
// script-capable javascript:, vbscript: and data: schemes. http and https
// URLs must name a host.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidURL, "URL contains invalid characters")
		}
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "malformed URL")
	}
	if blockedSchemes[u.Scheme] {
		return New(ErrCodeInvalidURL, "URL scheme %q is not allowed", u.Scheme)
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return New(ErrCodeInvalidURL, "URL has no host")
	}

	return nil
}
