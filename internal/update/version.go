// Package update checks GitHub for newer labelpick releases.
package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Build metadata, set with
// -ldflags "-X github.com/young1lin/label-layout/internal/update.Version=1.2.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// BuildInfo formats the build metadata for the version command
func BuildInfo() string {
	return fmt.Sprintf("labelpick %s (commit %s, built %s)", Version, Commit, BuildDate)
}

// Release is the part of a GitHub release the checker reads
type Release struct {
	Tag       string    `json:"tag_name"`
	Name      string    `json:"name"`
	URL       string    `json:"html_url"`
	Published time.Time `json:"published_at"`
}

// Version returns the tag without its leading "v"
func (r Release) Version() string {
	return strings.TrimPrefix(r.Tag, "v")
}

// Newer reports whether r is a later version than current. Anything that is
// not a semantic version, such as a "dev" build, never compares as older.
func (r Release) Newer(current string) bool {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	latest, err := semver.NewVersion(r.Version())
	if err != nil {
		return false
	}
	return latest.GreaterThan(cur)
}
