package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultAPIBaseURL      = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
	defaultOwner           = "algority"
	defaultRepo            = "algority"
)

// Checker talks to GitHub releases to find and apply updates.
type Checker struct {
	client          *http.Client
	apiBaseURL      string
	downloadBaseURL string
	owner           string
	repo            string
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.client.Timeout = d
	}
}

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) {
		c.apiBaseURL = u
	}
}

// WithDownloadBaseURL overrides the release asset download base URL.
func WithDownloadBaseURL(u string) Option {
	return func(c *Checker) {
		c.downloadBaseURL = u
	}
}

// withExecPath overrides executable resolution in tests.
func withExecPath(f func() (string, error)) Option {
	return func(c *Checker) {
		c.execPath = f
	}
}

// NewChecker creates a Checker with defaults.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:          &http.Client{Timeout: 30 * time.Second},
		apiBaseURL:      defaultAPIBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		owner:           defaultOwner,
		repo:            defaultRepo,
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput is the current version to compare against.
type CheckInput struct {
	Version string
}

// CheckResult reports whether a newer release exists.
type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	ReleaseURL      string
}

type releaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check queries the latest release and compares versions.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		strings.TrimRight(c.apiBaseURL, "/"), c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var rel releaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release has no tag name")
	}

	latest := canonical(rel.TagName)
	current := canonical(input.Version)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("invalid release tag %q", rel.TagName)
	}

	return &CheckResult{
		UpdateAvailable: !semver.IsValid(current) || semver.Compare(latest, current) > 0,
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
	}, nil
}

// canonical normalizes a version string to the "vMAJOR.MINOR.PATCH"
// form semver expects.
func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
