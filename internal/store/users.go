package store

import (
	"database/sql"
	"fmt"
)

// CreateUser inserts a new account and returns its id.
// Returns ErrConflict when the username or email is already taken.
func (s *Store) CreateUser(u User) (int64, error) {
	var email any
	if u.Email != "" {
		email = u.Email
	}
	achievements := u.Achievements
	if achievements == "" {
		achievements = "{}"
	}
	settings := u.Settings
	if settings == "" {
		settings = "{}"
	}

	result, err := s.db.Exec(
		`INSERT INTO users (username, email, password_hash, display_name, is_guest, achievements, settings)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, email, u.PasswordHash, u.DisplayName, u.IsGuest, achievements, settings,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("store: cannot create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const userColumns = `id, username, COALESCE(email, ''), password_hash, display_name,
	is_guest, total_games, total_score, achievements, settings, created_at, last_login`

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	var createdAt, lastLogin any
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.IsGuest, &u.TotalGames, &u.TotalScore, &u.Achievements, &u.Settings,
		&createdAt, &lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: cannot scan user: %w", err)
	}
	u.CreatedAt = scanTime(createdAt)
	if lastLogin != nil {
		u.LastLogin = scanTime(lastLogin)
	}
	return &u, nil
}

// UserByUsername looks up a user by exact username. Callers normalize
// usernames (lower-case) before storage and lookup.
func (s *Store) UserByUsername(username string) (*User, error) {
	row := s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username,
	)
	return s.scanUser(row)
}

// UserByID looks up a user by id.
func (s *Store) UserByID(id int64) (*User, error) {
	row := s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	)
	return s.scanUser(row)
}

// TouchLastLogin records a successful login.
func (s *Store) TouchLastLogin(id int64) error {
	_, err := s.db.Exec(
		`UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("store: cannot update last login: %w", err)
	}
	return nil
}

// AddGameTotals bumps the per-user aggregates after a score submission.
// The update is a single atomic statement.
func (s *Store) AddGameTotals(id int64, score int) error {
	_, err := s.db.Exec(
		`UPDATE users SET total_games = total_games + 1, total_score = total_score + ? WHERE id = ?`,
		score, id,
	)
	if err != nil {
		return fmt.Errorf("store: cannot update totals: %w", err)
	}
	return nil
}

// SaveSettings replaces the user's settings document. Overwrite-only:
// no merge semantics.
func (s *Store) SaveSettings(id int64, settingsJSON string) error {
	return s.saveBlob(id, "settings", settingsJSON)
}

// SaveAchievements replaces the user's achievements document.
func (s *Store) SaveAchievements(id int64, achievementsJSON string) error {
	return s.saveBlob(id, "achievements", achievementsJSON)
}

func (s *Store) saveBlob(id int64, column, blob string) error {
	result, err := s.db.Exec(
		`UPDATE users SET `+column+` = ? WHERE id = ?`, blob, id,
	)
	if err != nil {
		return fmt.Errorf("store: cannot save %s: %w", column, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: cannot save %s: %w", column, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
