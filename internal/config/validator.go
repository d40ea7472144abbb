package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/zenith-sql/relkit/internal/tui"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks field values that defaults cannot repair.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.ExcludePattern(); err != nil {
		errs = append(errs, fmt.Errorf("%w: exclude: %v", ErrInvalidConfig, err))
	}
	if c.Marker != filepath.Base(c.Marker) || c.Marker == "." || c.Marker == ".." {
		errs = append(errs, fmt.Errorf("%w: marker must be a plain file name, got %q", ErrInvalidConfig, c.Marker))
	}
	if strings.ContainsAny(c.Remote, " \t") || strings.HasPrefix(c.Remote, "-") {
		errs = append(errs, fmt.Errorf("%w: remote %q is not a valid remote name", ErrInvalidConfig, c.Remote))
	}
	if strings.ContainsAny(c.TagPrefix, " \t~^:?*[\\") {
		errs = append(errs, fmt.Errorf("%w: tag-prefix %q contains characters git does not allow in tag names", ErrInvalidConfig, c.TagPrefix))
	}
	if c.Theme != "" && !tui.IsValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("%w: unknown theme %q (valid: %s)", ErrInvalidConfig, c.Theme, strings.Join(tui.ValidThemes, ", ")))
	}

	return errors.Join(errs...)
}

// ExcludePattern compiles Exclude as a case-insensitive regular expression.
func (c *Config) ExcludePattern() (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + c.Exclude)
}
