// Package api talks to the Anthropic OAuth usage endpoint using the
// credentials Claude Code already keeps on disk.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

const (
	usageURL       = "https://api.anthropic.com/api/oauth/usage"
	oauthBeta      = "oauth-2025-04-20"
	requestTimeout = 5 * time.Second
)

// planNames maps rate limit tiers onto display names.
var planNames = map[string]string{
	"default_claude_pro":     "Pro",
	"default_claude_max_5x":  "Max 5x",
	"default_claude_max_20x": "Max 20x",
}

// Client fetches usage snapshots for an OAuth token.
type Client struct {
	httpClient *http.Client
	credsPath  string
}

// New returns a client with the default timeout and credentials location.
func New() *Client {
	home, _ := os.UserHomeDir()
	return NewWithOptions(&http.Client{Timeout: requestTimeout},
		filepath.Join(home, ".claude", ".credentials.json"))
}

// NewWithOptions returns a client with an explicit HTTP client and
// credentials file location.
func NewWithOptions(httpClient *http.Client, credsPath string) *Client {
	return &Client{httpClient: httpClient, credsPath: credsPath}
}

// credentialsFile is the slice of Claude Code's credentials file we need.
type credentialsFile struct {
	ClaudeAiOauth struct {
		AccessToken   string `json:"accessToken"`
		RateLimitTier string `json:"rateLimitTier"`
	} `json:"claudeAiOauth"`
}

// Credentials reads the OAuth token and plan name from the credentials
// file. A missing or unreadable file returns empty values, not an error;
// the caller renders "No credentials found".
func (c *Client) Credentials() (token, plan string) {
	data, err := os.ReadFile(c.credsPath)
	if err != nil {
		return "", ""
	}
	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", ""
	}
	token = creds.ClaudeAiOauth.AccessToken
	if token == "" {
		return "", ""
	}
	return token, PlanName(creds.ClaudeAiOauth.RateLimitTier)
}

// PlanName turns a rate limit tier identifier into a display name.
func PlanName(tier string) string {
	if name, ok := planNames[tier]; ok {
		return name
	}
	name := strings.TrimPrefix(tier, "default_claude_")
	name = strings.ReplaceAll(name, "_", " ")
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// usagePayload mirrors the wire format of the usage endpoint. Every field is
// optional; absent windows stay nil in the snapshot.
type usagePayload struct {
	FiveHour *struct {
		Utilization float64 `json:"utilization"`
		ResetsAt    string  `json:"resets_at"`
	} `json:"five_hour"`
	SevenDay *struct {
		Utilization float64 `json:"utilization"`
		ResetsAt    string  `json:"resets_at"`
	} `json:"seven_day"`
	ExtraUsage *struct {
		IsEnabled    bool    `json:"is_enabled"`
		Utilization  float64 `json:"utilization"`
		UsedCredits  float64 `json:"used_credits"`
		MonthlyLimit float64 `json:"monthly_limit"`
	} `json:"extra_usage"`
}

// HTTPError carries a non-2xx response status for the "API error: N" line.
type HTTPError struct {
	Code int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("usage API returned status %d", e.Code)
}

// FetchUsage calls the usage endpoint and maps the payload onto a snapshot.
func (c *Client) FetchUsage(ctx context.Context, token string) (*models.UsageSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, usageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build usage request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("anthropic-beta", oauthBeta)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch usage: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage response: %w", err)
	}

	var payload usagePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode usage response: %w", err)
	}
	return snapshotFromPayload(payload), nil
}

func snapshotFromPayload(p usagePayload) *models.UsageSnapshot {
	snap := &models.UsageSnapshot{}
	if p.FiveHour != nil {
		snap.Session = &models.UsageWindow{
			Utilization: p.FiveHour.Utilization,
			ResetsAt:    parseTime(p.FiveHour.ResetsAt),
		}
	}
	if p.SevenDay != nil {
		snap.Weekly = &models.UsageWindow{
			Utilization: p.SevenDay.Utilization,
			ResetsAt:    parseTime(p.SevenDay.ResetsAt),
		}
	}
	if p.ExtraUsage != nil {
		snap.Extra = &models.ExtraUsage{
			Enabled:         p.ExtraUsage.IsEnabled,
			Utilization:     p.ExtraUsage.Utilization,
			UsedMinorUnits:  int64(p.ExtraUsage.UsedCredits*100 + 0.5),
			LimitMinorUnits: int64(p.ExtraUsage.MonthlyLimit*100 + 0.5),
		}
	}
	return snap
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
