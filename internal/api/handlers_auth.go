package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pythonix/internal/auth"
	"pythonix/internal/store"
)

// userPayload is the user object embedded in auth responses.
type userPayload struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	IsGuest     bool   `json:"isGuest"`
	TotalGames  int    `json:"totalGames"`
	TotalScore  int    `json:"totalScore"`
}

func toUserPayload(u *store.User) userPayload {
	return userPayload{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsGuest:     u.IsGuest,
		TotalGames:  u.TotalGames,
		TotalScore:  u.TotalScore,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	username := normalizeUsername(req.Username)
	if username == "" || req.Password == "" {
		writeError(w, errValidation("Username and password are required"))
		return
	}
	if len(req.Password) < auth.MinPasswordLen {
		writeError(w, errValidation("Password must be at least %d characters", auth.MinPasswordLen))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	id, err := s.store.CreateUser(store.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		DisplayName:  displayName,
	})
	if errors.Is(err, store.ErrConflict) {
		writeError(w, errConflict("Username or email already exists"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	s.respondWithToken(w, r, id, username, false)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	// Unknown user and wrong password fail identically: no enumeration
	// signal.
	invalid := errAuth("Invalid credentials")

	user, err := s.store.UserByUsername(normalizeUsername(req.Username))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, invalid)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, invalid)
		return
	}

	if err := s.store.TouchLastLogin(user.ID); err != nil {
		s.logger.Warn("could not record last login", "user", user.ID, "error", err)
	}

	s.respondWithToken(w, r, user.ID, user.Username, user.IsGuest)
}

func (s *Server) handleGuest(w http.ResponseWriter, r *http.Request) {
	// Guest usernames derive from the current timestamp; on the rare
	// collision, retry with a random suffix.
	username := fmt.Sprintf("guest_%d", time.Now().UnixMilli())
	for attempt := 0; ; attempt++ {
		id, err := s.store.CreateUser(store.User{
			Username:    username,
			DisplayName: "Guest",
			IsGuest:     true,
		})
		if errors.Is(err, store.ErrConflict) && attempt < 3 {
			username = fmt.Sprintf("guest_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
			continue
		}
		if err != nil {
			writeError(w, err)
			return
		}
		s.respondWithToken(w, r, id, username, true)
		return
	}
}

// respondWithToken issues a token and returns the canonical {token, user}
// response.
func (s *Server) respondWithToken(w http.ResponseWriter, _ *http.Request, id int64, username string, guest bool) {
	token, err := s.tokens.Issue(id, username, guest)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := s.store.UserByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserPayload(user),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)

	user, err := s.store.UserByID(claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, errNotFound("User not found"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	profile := map[string]any{
		"user":         toUserPayload(user),
		"achievements": json.RawMessage(user.Achievements),
		"settings":     json.RawMessage(user.Settings),
		"createdAt":    user.CreatedAt,
	}
	if !user.LastLogin.IsZero() {
		profile["lastLogin"] = user.LastLogin
	}
	writeJSON(w, http.StatusOK, profile)
}
