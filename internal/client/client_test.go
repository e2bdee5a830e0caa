package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitScoreSendsTokenAndBody(t *testing.T) {
	var gotAuth string
	var gotBody ScoreSubmission

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/scores" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Cannot decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 42}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")

	id, err := c.SubmitScore(context.Background(), ScoreSubmission{
		Score:      17,
		GameMode:   "classic",
		FoodsEaten: 17,
	})
	if err != nil {
		t.Fatalf("SubmitScore failed: %v", err)
	}
	if id != 42 {
		t.Errorf("Expected id 42, got %d", id)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Expected bearer token header, got %q", gotAuth)
	}
	if gotBody.Score != 17 || gotBody.GameMode != "classic" {
		t.Errorf("Unexpected body: %+v", gotBody)
	}
}

func TestSubmitScoreAnonymousOmitsAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Expected no Authorization header without a token")
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 1}) //nolint:errcheck
	}))
	defer srv.Close()

	if _, err := New(srv.URL).SubmitScore(context.Background(), ScoreSubmission{Score: 3}); err != nil {
		t.Fatalf("SubmitScore failed: %v", err)
	}
}

func TestLeaderboardQueryAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leaderboard/global" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("mode") != "classic" || r.URL.Query().Get("limit") != "5" {
			t.Errorf("Unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(LeaderboardSnapshot{ //nolint:errcheck
			Leaderboard: []LeaderboardEntry{
				{Rank: 1, Username: "alice", BestScore: 80},
				{Rank: 2, Username: "bob", BestScore: 50},
			},
			UserRank: 2,
		})
	}))
	defer srv.Close()

	snap, err := New(srv.URL).Leaderboard(context.Background(), "classic", 5)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(snap.Leaderboard) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(snap.Leaderboard))
	}
	if snap.Leaderboard[0].Username != "alice" || snap.Leaderboard[0].BestScore != 80 {
		t.Errorf("Unexpected top entry: %+v", snap.Leaderboard[0])
	}
	if snap.UserRank != 2 {
		t.Errorf("Expected userRank 2, got %d", snap.UserRank)
	}
}

func TestErrorBodySurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Score is required"}) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitScore(context.Background(), ScoreSubmission{})
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}
	if got := err.Error(); got != "client: server returned 400: Score is required" {
		t.Errorf("Unexpected error text: %q", got)
	}
}
