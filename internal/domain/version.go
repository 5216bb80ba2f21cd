package domain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Description is the trimmed output of a descriptive tag lookup, the
// "<tag>-<commits>-g<hash>" form reported by git describe --tags.
type Description struct {
	Raw string
}

// NewDescription validates and wraps a raw describe string.
func NewDescription(raw string) (*Description, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return nil, fmt.Errorf("description must be a single line: %q", raw)
	}
	return &Description{Raw: trimmed}, nil
}

// Normalized returns the description with every hyphen after the first
// replaced by a plus sign.
func (d *Description) Normalized() string {
	return Normalize(d.Raw)
}

// Changed reports whether normalization altered the raw description.
func (d *Description) Changed() bool {
	return d.Normalized() != d.Raw
}

// Semver parses the normalized description as a semantic version. Not every
// description is one; callers treat a failure as informational.
func (d *Description) Semver() (*semver.Version, error) {
	v, err := semver.NewVersion(d.Normalized())
	if err != nil {
		return nil, fmt.Errorf("description %q is not a semantic version: %w", d.Raw, err)
	}
	return v, nil
}

// Normalize folds the commit count and hash suffix of a describe string into
// build metadata. Strings with fewer than two hyphens come back unchanged;
// otherwise everything through the first hyphen is kept verbatim and every
// later hyphen becomes '+'.
func Normalize(s string) string {
	if strings.Count(s, "-") < 2 {
		return s
	}
	idx := strings.Index(s, "-")
	return s[:idx+1] + strings.ReplaceAll(s[idx+1:], "-", "+")
}
