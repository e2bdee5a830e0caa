package store

import (
	"database/sql"
	"fmt"
)

// InsertScore records a submitted score and returns its id.
func (s *Store) InsertScore(rec ScoreRecord) (int64, error) {
	var userID any
	if rec.UserID != nil {
		userID = *rec.UserID
	}
	result, err := s.db.Exec(
		`INSERT INTO scores (user_id, username, score, game_mode, snake_skin, theme, game_duration, foods_eaten)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, rec.Username, rec.Score, rec.GameMode, rec.SnakeSkin, rec.Theme,
		rec.GameDuration, rec.FoodsEaten,
	)
	if err != nil {
		return 0, fmt.Errorf("store: cannot insert score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Leaderboard aggregates per-user best scores for a mode, ranked by best
// score descending. Ties break by user id ascending so the order is
// deterministic. Anonymous scores (NULL user_id) are excluded.
func (s *Store) Leaderboard(mode string, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT u.id, u.username, u.display_name,
		        MAX(s.score), COUNT(s.id), COALESCE(SUM(s.foods_eaten), 0)
		 FROM scores s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.game_mode = ?
		 GROUP BY u.id
		 ORDER BY MAX(s.score) DESC, u.id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardRow
	for rows.Next() {
		var e LeaderboardRow
		if err := rows.Scan(&e.UserID, &e.Username, &e.DisplayName,
			&e.BestScore, &e.GamesPlayed, &e.TotalFoods); err != nil {
			return nil, fmt.Errorf("store: cannot scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: row iteration error: %w", err)
	}

	return entries, nil
}

// UserRank computes competition rank for a user in a mode:
// 1 + the number of users whose best score strictly exceeds theirs.
// Returns 0 when the user has no scores in that mode.
func (s *Store) UserRank(mode string, userID int64) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(score) FROM scores WHERE game_mode = ? AND user_id = ?`,
		mode, userID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("store: cannot query user best: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}

	var above int
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM (
			SELECT MAX(score) AS best
			FROM scores
			WHERE game_mode = ? AND user_id IS NOT NULL
			GROUP BY user_id
		 ) WHERE best > ?`,
		mode, best.Int64,
	).Scan(&above)
	if err != nil {
		return 0, fmt.Errorf("store: cannot query rank: %w", err)
	}

	return above + 1, nil
}

// PersonalBest returns the user's own top score records across all modes,
// highest first.
func (s *Store) PersonalBest(userID int64, limit int) ([]ScoreRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, username, score, game_mode, snake_skin, theme, game_duration, foods_eaten, created_at
		 FROM scores
		 WHERE user_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: cannot query personal scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreRecord
	for rows.Next() {
		var rec ScoreRecord
		var uid sql.NullInt64
		var createdAt any
		if err := rows.Scan(&rec.ID, &uid, &rec.Username, &rec.Score, &rec.GameMode,
			&rec.SnakeSkin, &rec.Theme, &rec.GameDuration, &rec.FoodsEaten, &createdAt); err != nil {
			return nil, fmt.Errorf("store: cannot scan score row: %w", err)
		}
		if uid.Valid {
			id := uid.Int64
			rec.UserID = &id
		}
		rec.CreatedAt = scanTime(createdAt)
		entries = append(entries, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: row iteration error: %w", err)
	}

	return entries, nil
}

// InsertSession records write-only game-session telemetry.
func (s *Store) InsertSession(sess GameSession) error {
	var userID any
	if sess.UserID != nil {
		userID = *sess.UserID
	}
	_, err := s.db.Exec(
		`INSERT INTO game_sessions (id, user_id, game_mode, score, duration_secs)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.ID, userID, sess.GameMode, sess.Score, sess.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("store: cannot insert session: %w", err)
	}
	return nil
}
