package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName rejects names that are unsafe to join into tap or
// cellar paths: empty or over 256 bytes, control characters, "..", "//" and
// backslashes.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// formulaNameRegex matches bare formula names (e.g. "openssl@3", "gtk+3").
var formulaNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9@+._-]*$`)

// ValidateFormulaName validates a bare or tap-qualified formula name.
func ValidateFormulaName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	base := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		if err := ValidateTapName(name[:i]); err != nil {
			return err
		}
		base = name[i+1:]
	}

	if !formulaNameRegex.MatchString(strings.ToLower(base)) {
		return New(ErrCodeInvalidInput, "invalid formula name: %q", name)
	}
	return nil
}

// tapNameRegex matches "user/repo" tap names.
var tapNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*/[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateTapName validates a "user/repo" tap name.
func ValidateTapName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if !tapNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTap, "invalid tap name: %q", name)
	}
	return nil
}
