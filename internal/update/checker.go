package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultReleasesURL is the GitHub API endpoint for the latest release
	DefaultReleasesURL = "https://api.github.com/repos/young1lin/label-layout/releases/latest"
	// checkInterval is how often to check for updates
	checkInterval = 24 * time.Hour
)

// State tracks the last update check.
type State struct {
	LastCheck     time.Time `json:"last_check"`
	LatestVersion string    `json:"latest_version"`
}

// Checker checks for updates.
type Checker struct {
	currentVersion string
	stateFile      string
	releasesURL    string
	httpClient     *http.Client
	now            func() time.Time
}

// Option configures a Checker
type Option func(*Checker)

// WithReleasesURL points the checker at another endpoint
func WithReleasesURL(url string) Option {
	return func(c *Checker) { c.releasesURL = url }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) { c.httpClient = client }
}

// NewChecker creates an update checker that remembers its last check in
// stateDir.
func NewChecker(version, stateDir string, opts ...Option) *Checker {
	c := &Checker{
		currentVersion: version,
		stateFile:      filepath.Join(stateDir, "update-state.json"),
		releasesURL:    DefaultReleasesURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns the latest release when it is newer than the running
// version. Unless force is set, GitHub is asked at most once a day.
// Development builds never report an update.
func (c *Checker) Check(ctx context.Context, force bool) (*Release, error) {
	state, err := c.loadState()
	if err != nil {
		state = &State{}
	}

	if !force && c.now().Sub(state.LastCheck) < checkInterval {
		return nil, nil
	}

	release, err := c.fetchLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}

	state.LastCheck = c.now()
	state.LatestVersion = release.Version()
	_ = c.saveState(state)

	if release.Newer(c.currentVersion) {
		return release, nil
	}
	return nil, nil
}

// fetchLatest fetches the latest release from GitHub.
func (c *Checker) fetchLatest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releasesURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "labelpick")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}

	return &release, nil
}

// loadState loads the update state from disk.
func (c *Checker) loadState() (*State, error) {
	data, err := os.ReadFile(c.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return &State{}, nil
	}

	return &state, nil
}

// saveState saves the update state to disk.
func (c *Checker) saveState(state *State) error {
	if err := os.MkdirAll(filepath.Dir(c.stateFile), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.stateFile, data, 0644)
}
