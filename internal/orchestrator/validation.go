package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// descriptionRegex matches git describe output: tag names, commit
	// counts and abbreviated hashes, before or after normalization
	descriptionRegex = regexp.MustCompile(`^[a-zA-Z0-9._/+-]+$`)
)

// ValidateDescription validates a version description before it is
// written into the target file.
func ValidateDescription(desc string) error {
	if desc == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if len(desc) > 255 {
		return fmt.Errorf("description too long: %d characters (max: 255)", len(desc))
	}
	if !descriptionRegex.MatchString(desc) {
		return fmt.Errorf("invalid description format: %s", desc)
	}
	return nil
}

// ValidateMarker validates the line prefix used to find version
// assignments.
func ValidateMarker(marker string) error {
	if marker == "" {
		return fmt.Errorf("marker cannot be empty")
	}
	if strings.ContainsAny(marker, " \t\r\n") {
		return fmt.Errorf("marker cannot contain whitespace: %s", marker)
	}
	return nil
}

// ValidateTargetPath validates the path of the file being stamped.
func ValidateTargetPath(path string) error {
	if path == "" {
		return fmt.Errorf("target path cannot be empty")
	}
	if strings.HasSuffix(path, "/") {
		return fmt.Errorf("target path cannot be a directory: %s", path)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("target path contains NUL byte")
	}
	return nil
}
