package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateCoachID validates a coach identifier for safety and correctness.
// Coach ids are lowercase slugs derived from display names, so the rules
// are intentionally strict:
//   - No empty ids
//   - No control characters
//   - Lowercase letters, digits, and single underscores only
//   - Maximum length of 128 characters
func ValidateCoachID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCoach, "coach id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidCoach, "coach id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCoach, "coach id contains invalid control characters")
		}
	}

	if !coachIDRegex.MatchString(id) {
		return New(ErrCodeInvalidCoach, "invalid coach id: %q (expected lowercase slug like bill_walsh)", id)
	}

	return nil
}

// coachIDRegex matches lowercase slug ids: alphanumeric runs joined by
// single underscores, no leading or trailing underscore.
var coachIDRegex = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// ValidateTeamColor validates a team display color as a hex RGB string.
func ValidateTeamColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "team color cannot be empty")
	}

	if !teamColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid team color: %q (expected #RRGGBB)", color)
	}

	return nil
}

// teamColorRegex matches six-digit hex colors with a leading hash.
var teamColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
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

// ValidateSnapshotName validates a stored snapshot name.
// Names are used as store keys and in URLs, so they follow the same slug
// shape as coach ids but allow hyphens.
func ValidateSnapshotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "snapshot name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "snapshot name too long (max 64 characters)")
	}

	if !snapshotNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid snapshot name: %q (lowercase letters, digits, - and _ only)", name)
	}

	return nil
}

var snapshotNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
