package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreateUser(t *testing.T, s *Store, username string) int64 {
	t.Helper()
	id, err := s.CreateUser(User{Username: username, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser(%q) failed: %v", username, err)
	}
	return id
}

func mustInsertScore(t *testing.T, s *Store, userID int64, username, mode string, score, foods int) {
	t.Helper()
	_, err := s.InsertScore(ScoreRecord{
		UserID:     &userID,
		Username:   username,
		Score:      score,
		GameMode:   mode,
		FoodsEaten: foods,
	})
	if err != nil {
		t.Fatalf("InsertScore failed: %v", err)
	}
}

func TestCreateUserAndLookup(t *testing.T) {
	s := openTestStore(t)

	id, err := s.CreateUser(User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		DisplayName:  "Alice",
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	u, err := s.UserByUsername("alice")
	if err != nil {
		t.Fatalf("UserByUsername() failed: %v", err)
	}
	if u.ID != id || u.Email != "alice@example.com" || u.DisplayName != "Alice" {
		t.Errorf("Unexpected user row: %+v", u)
	}
	if u.Settings != "{}" || u.Achievements != "{}" {
		t.Errorf("Expected empty JSON defaults, got settings=%q achievements=%q", u.Settings, u.Achievements)
	}
	if !u.LastLogin.IsZero() {
		t.Error("LastLogin should be zero before first login")
	}

	if _, err := s.UserByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDuplicateUsernameConflict(t *testing.T) {
	s := openTestStore(t)

	mustCreateUser(t, s, "bob")
	if _, err := s.CreateUser(User{Username: "bob", PasswordHash: "y"}); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate username, got %v", err)
	}
}

func TestDuplicateEmailConflict(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.CreateUser(User{Username: "u1", Email: "dup@example.com"}); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if _, err := s.CreateUser(User{Username: "u2", Email: "dup@example.com"}); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %v", err)
	}

	// Empty email is stored as NULL and never conflicts.
	if _, err := s.CreateUser(User{Username: "u3"}); err != nil {
		t.Errorf("Empty email should not conflict: %v", err)
	}
	if _, err := s.CreateUser(User{Username: "u4"}); err != nil {
		t.Errorf("Second empty email should not conflict: %v", err)
	}
}

func TestTouchLastLogin(t *testing.T) {
	s := openTestStore(t)

	id := mustCreateUser(t, s, "carol")
	if err := s.TouchLastLogin(id); err != nil {
		t.Fatalf("TouchLastLogin() failed: %v", err)
	}

	u, err := s.UserByID(id)
	if err != nil {
		t.Fatalf("UserByID() failed: %v", err)
	}
	if u.LastLogin.IsZero() {
		t.Error("LastLogin not recorded")
	}
}

func TestAddGameTotals(t *testing.T) {
	s := openTestStore(t)

	id := mustCreateUser(t, s, "dave")
	if err := s.AddGameTotals(id, 40); err != nil {
		t.Fatalf("AddGameTotals() failed: %v", err)
	}
	if err := s.AddGameTotals(id, 60); err != nil {
		t.Fatalf("AddGameTotals() failed: %v", err)
	}

	u, _ := s.UserByID(id)
	if u.TotalGames != 2 || u.TotalScore != 100 {
		t.Errorf("Expected totals (2, 100), got (%d, %d)", u.TotalGames, u.TotalScore)
	}
}

func TestSaveSettingsOverwrites(t *testing.T) {
	s := openTestStore(t)

	id := mustCreateUser(t, s, "erin")
	if err := s.SaveSettings(id, `{"theme":"dark","volume":0.5}`); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	// Second save replaces the whole document, no merge.
	if err := s.SaveSettings(id, `{"volume":1}`); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	u, _ := s.UserByID(id)
	if u.Settings != `{"volume":1}` {
		t.Errorf("Expected overwrite semantics, got %q", u.Settings)
	}

	if err := s.SaveSettings(9999, `{}`); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing user, got %v", err)
	}
}

func TestLeaderboardRanking(t *testing.T) {
	s := openTestStore(t)

	a := mustCreateUser(t, s, "a")
	b := mustCreateUser(t, s, "b")
	mustCreateUser(t, s, "c") // No classic scores

	mustInsertScore(t, s, a, "a", "classic", 30, 3)
	mustInsertScore(t, s, a, "a", "classic", 50, 5)
	mustInsertScore(t, s, b, "b", "classic", 80, 8)
	mustInsertScore(t, s, b, "b", "zen", 500, 50) // Different mode, excluded

	rows, err := s.Leaderboard("classic", 50)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 leaderboard rows, got %d", len(rows))
	}
	if rows[0].Username != "b" || rows[0].BestScore != 80 {
		t.Errorf("Expected b:80 first, got %s:%d", rows[0].Username, rows[0].BestScore)
	}
	if rows[1].Username != "a" || rows[1].BestScore != 50 {
		t.Errorf("Expected a:50 second, got %s:%d", rows[1].Username, rows[1].BestScore)
	}
	if rows[1].GamesPlayed != 2 || rows[1].TotalFoods != 8 {
		t.Errorf("Expected a to have 2 games and 8 foods, got %d and %d",
			rows[1].GamesPlayed, rows[1].TotalFoods)
	}
}

func TestLeaderboardExcludesAnonymous(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.InsertScore(ScoreRecord{Username: "Anonymous", Score: 999, GameMode: "classic"}); err != nil {
		t.Fatalf("InsertScore() failed: %v", err)
	}

	rows, err := s.Leaderboard("classic", 50)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Anonymous scores must not rank, got %d rows", len(rows))
	}
}

func TestLeaderboardLimit(t *testing.T) {
	s := openTestStore(t)

	for i, name := range []string{"p1", "p2", "p3"} {
		id := mustCreateUser(t, s, name)
		mustInsertScore(t, s, id, name, "classic", (i+1)*10, i)
	}

	rows, err := s.Leaderboard("classic", 2)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected limit of 2 rows, got %d", len(rows))
	}
}

func TestUserRank(t *testing.T) {
	s := openTestStore(t)

	a := mustCreateUser(t, s, "a")
	b := mustCreateUser(t, s, "b")
	c := mustCreateUser(t, s, "c")

	mustInsertScore(t, s, a, "a", "classic", 50, 5)
	mustInsertScore(t, s, b, "b", "classic", 80, 8)

	// One user strictly above 50 -> rank 2.
	rank, err := s.UserRank("classic", a)
	if err != nil {
		t.Fatalf("UserRank() failed: %v", err)
	}
	if rank != 2 {
		t.Errorf("Expected rank 2 for a, got %d", rank)
	}

	rank, _ = s.UserRank("classic", b)
	if rank != 1 {
		t.Errorf("Expected rank 1 for b, got %d", rank)
	}

	// No scores in the mode -> no rank.
	rank, err = s.UserRank("classic", c)
	if err != nil {
		t.Fatalf("UserRank() failed: %v", err)
	}
	if rank != 0 {
		t.Errorf("Expected rank 0 for unranked user, got %d", rank)
	}

	// Ties share the better rank: equal best does not count as "above".
	d := mustCreateUser(t, s, "d")
	mustInsertScore(t, s, d, "d", "classic", 50, 5)
	rank, _ = s.UserRank("classic", d)
	if rank != 2 {
		t.Errorf("Expected tied rank 2 for d, got %d", rank)
	}
}

func TestPersonalBest(t *testing.T) {
	s := openTestStore(t)

	id := mustCreateUser(t, s, "grace")
	for i := 0; i < 12; i++ {
		mode := "classic"
		if i%2 == 0 {
			mode = "zen"
		}
		mustInsertScore(t, s, id, "grace", mode, i*10, i)
	}

	recs, err := s.PersonalBest(id, 10)
	if err != nil {
		t.Fatalf("PersonalBest() failed: %v", err)
	}
	if len(recs) != 10 {
		t.Fatalf("Expected top 10, got %d", len(recs))
	}
	// No mode filter and descending order.
	if recs[0].Score != 110 || recs[9].Score != 20 {
		t.Errorf("Unexpected score window: first=%d last=%d", recs[0].Score, recs[9].Score)
	}
}

func TestInsertSession(t *testing.T) {
	s := openTestStore(t)

	id := mustCreateUser(t, s, "henry")
	err := s.InsertSession(GameSession{
		ID:           "9e4c2f9c-0000-4000-8000-000000000001",
		UserID:       &id,
		GameMode:     "classic",
		Score:        12,
		DurationSecs: 95,
	})
	if err != nil {
		t.Fatalf("InsertSession() failed: %v", err)
	}

	// Sessions are write-only telemetry; just verify the row landed.
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM game_sessions`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 session row, got %d", count)
	}
}
