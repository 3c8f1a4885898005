package config

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the config schema this build writes
const SchemaVersion = "1.0.0"

// supportedSchemas is the range of config schemas this build reads
const supportedSchemas = "^1"

// ErrUnsupportedVersion is returned for config files outside supportedSchemas
var ErrUnsupportedVersion = errors.New("unsupported config version")

// CheckVersion validates a config file's version field. An empty version is
// taken to be the current schema.
func CheckVersion(version string) error {
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, version)
	}

	constraint, err := semver.NewConstraint(supportedSchemas)
	if err != nil {
		return fmt.Errorf("invalid schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (want %s)", ErrUnsupportedVersion, v, supportedSchemas)
	}
	return nil
}
