// Package appupdate compares the local git checkout against the GitHub
// remote and exposes the result to the status line. Every path in here is
// silent on failure: an update check must never cost the user their line.
package appupdate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// GitHubRepo is the upstream "owner/name" this install tracks.
	GitHubRepo = "NoobyGains/claude-pulse"

	remoteCommitURL = "https://api.github.com/repos/" + GitHubRepo + "/commits/master"
	checkTTL        = time.Hour
	requestTimeout  = 3 * time.Second
	gitTimeout      = 5 * time.Second
)

// Checker performs cached update checks for a git-cloned install.
type Checker struct {
	RepoDir    string
	CachePath  string
	HTTPClient *http.Client
}

// New returns a checker rooted at the directory of the running executable,
// caching results in the given state directory.
func New(stateDir string) *Checker {
	repoDir := ""
	if exe, err := os.Executable(); err == nil {
		repoDir = filepath.Dir(exe)
	}
	return &Checker{
		RepoDir:    repoDir,
		CachePath:  filepath.Join(stateDir, "update_check.json"),
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

// cacheEntry is the persisted check result.
type cacheEntry struct {
	Timestamp       float64 `json:"timestamp"`
	UpdateAvailable bool    `json:"update_available"`
	Local           string  `json:"local"`
	Remote          string  `json:"remote"`
}

// LocalCommit returns the local git HEAD hash, or "" when this is not a git
// install.
func (c *Checker) LocalCommit() string {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = c.RepoDir
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return ""
	}
	return strings.TrimSpace(out.String())
}

// RemoteCommit fetches the latest upstream commit hash, or "" on any
// network failure.
func (c *Checker) RemoteCommit(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteCommitURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/vnd.github.sha")
	req.Header.Set("User-Agent", "claude-pulse-update-checker")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}

// UpdateAvailable reports whether upstream has moved past the local HEAD.
// Results are cached for an hour; any failure reports false.
func (c *Checker) UpdateAvailable(ctx context.Context, now time.Time) bool {
	if cached := c.readCache(now); cached != nil {
		return cached.UpdateAvailable
	}

	local := c.LocalCommit()
	if local == "" {
		return false // not a git install
	}
	remote := c.RemoteCommit(ctx)
	if remote == "" {
		return false // network error
	}

	available := local != remote
	c.writeCache(cacheEntry{
		Timestamp:       float64(now.UnixNano()) / float64(time.Second),
		UpdateAvailable: available,
		Local:           shortHash(local),
		Remote:          shortHash(remote),
	})
	return available
}

// Pull runs git pull against the upstream branch and returns its combined
// output.
func (c *Checker) Pull(ctx context.Context) (string, error) {
	pullCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(pullCtx, "git", "pull", "origin", "master")
	cmd.Dir = c.RepoDir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// IsGitInstall reports whether the repo directory is a git checkout.
func (c *Checker) IsGitInstall() bool {
	info, err := os.Stat(filepath.Join(c.RepoDir, ".git"))
	return err == nil && info.IsDir()
}

// DropCache removes the cached check result so the indicator disappears
// immediately after an update.
func (c *Checker) DropCache() {
	_ = os.Remove(c.CachePath)
}

func (c *Checker) readCache(now time.Time) *cacheEntry {
	data, err := os.ReadFile(c.CachePath)
	if err != nil {
		return nil
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}
	age := float64(now.UnixNano())/float64(time.Second) - entry.Timestamp
	if age >= checkTTL.Seconds() {
		return nil
	}
	return &entry
}

func (c *Checker) writeCache(entry cacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	tmp := c.CachePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	if err := os.Rename(tmp, c.CachePath); err != nil {
		_ = os.Remove(tmp)
	}
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
