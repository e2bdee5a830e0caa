// Package client is the minimal HTTP client the game side uses to talk
// to the leaderboard service: it posts final scores and fetches
// leaderboard snapshots, nothing more.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a Pythonix leaderboard service.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// New creates a client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ScoreSubmission is the payload for a final-score post.
type ScoreSubmission struct {
	Score        int    `json:"score"`
	GameMode     string `json:"gameMode,omitempty"`
	SnakeSkin    string `json:"snakeSkin,omitempty"`
	Theme        string `json:"theme,omitempty"`
	GameDuration int    `json:"gameDuration,omitempty"`
	FoodsEaten   int    `json:"foodsEaten,omitempty"`
}

// LeaderboardEntry mirrors one row of the global leaderboard response.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	BestScore   int    `json:"bestScore"`
	GamesPlayed int    `json:"gamesPlayed"`
	TotalFoods  int    `json:"totalFoods"`
}

// LeaderboardSnapshot is the global leaderboard plus the caller's rank
// when authenticated.
type LeaderboardSnapshot struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	UserRank    int                `json:"userRank,omitempty"`
}

// SubmitScore posts a final score and returns the stored record id.
func (c *Client) SubmitScore(ctx context.Context, sub ScoreSubmission) (int64, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return 0, fmt.Errorf("client: cannot encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/scores", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("client: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// Leaderboard fetches the global leaderboard for a mode. A limit of 0
// uses the server default.
func (c *Client) Leaderboard(ctx context.Context, mode string, limit int) (*LeaderboardSnapshot, error) {
	query := url.Values{}
	if mode != "" {
		query.Set("mode", mode)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	endpoint := c.base + "/leaderboard/global"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("client: cannot build request: %w", err)
	}

	var snap LeaderboardSnapshot
	if err := c.do(req, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// do executes a request, maps error bodies, and decodes the response.
func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			return fmt.Errorf("client: server returned %d: %s", resp.StatusCode, errBody.Error)
		}
		return fmt.Errorf("client: server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: cannot decode response: %w", err)
	}
	return nil
}
