package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"pythonix/internal/store"
)

const defaultGameMode = "classic"

// anonymousName labels score rows submitted without a valid token.
const anonymousName = "Anonymous"

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score        *int   `json:"score"`
		GameMode     string `json:"gameMode"`
		SnakeSkin    string `json:"snakeSkin"`
		Theme        string `json:"theme"`
		GameDuration int    `json:"gameDuration"`
		FoodsEaten   int    `json:"foodsEaten"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Score == nil || *req.Score < 0 {
		writeError(w, errValidation("Score is required and must not be negative"))
		return
	}

	mode := req.GameMode
	if mode == "" {
		mode = defaultGameMode
	}

	rec := store.ScoreRecord{
		Username:     anonymousName,
		Score:        *req.Score,
		GameMode:     mode,
		SnakeSkin:    req.SnakeSkin,
		Theme:        req.Theme,
		GameDuration: req.GameDuration,
		FoodsEaten:   req.FoodsEaten,
	}

	claims := requestClaims(r)
	if claims != nil {
		rec.UserID = &claims.UserID
		rec.Username = claims.Username
	}

	id, err := s.store.InsertScore(rec)
	if err != nil {
		writeError(w, err)
		return
	}

	if claims != nil {
		if err := s.store.AddGameTotals(claims.UserID, rec.Score); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Score recorded",
	})
}

type leaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	BestScore   int    `json:"bestScore"`
	GamesPlayed int    `json:"gamesPlayed"`
	TotalFoods  int    `json:"totalFoods"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = defaultGameMode
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, errValidation("Limit must be a positive integer"))
			return
		}
		limit = n
	}

	rows, err := s.store.Leaderboard(mode, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	entries := make([]leaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = leaderboardEntry{
			Rank:        i + 1,
			Username:    row.Username,
			DisplayName: row.DisplayName,
			BestScore:   row.BestScore,
			GamesPlayed: row.GamesPlayed,
			TotalFoods:  row.TotalFoods,
		}
	}

	resp := map[string]any{"leaderboard": entries}

	// The requester's own rank is a separate competition-ranking query,
	// not joined into the page above.
	if claims := requestClaims(r); claims != nil {
		rank, err := s.store.UserRank(mode, claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		if rank > 0 {
			resp["userRank"] = rank
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type scorePayload struct {
	ID           int64  `json:"id"`
	Score        int    `json:"score"`
	GameMode     string `json:"gameMode"`
	SnakeSkin    string `json:"snakeSkin,omitempty"`
	Theme        string `json:"theme,omitempty"`
	GameDuration int    `json:"gameDuration"`
	FoodsEaten   int    `json:"foodsEaten"`
	CreatedAt    string `json:"createdAt"`
}

func (s *Server) handlePersonal(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)

	recs, err := s.store.PersonalBest(claims.UserID, 10)
	if err != nil {
		writeError(w, err)
		return
	}

	scores := make([]scorePayload, len(recs))
	for i, rec := range recs {
		scores[i] = scorePayload{
			ID:           rec.ID,
			Score:        rec.Score,
			GameMode:     rec.GameMode,
			SnakeSkin:    rec.SnakeSkin,
			Theme:        rec.Theme,
			GameDuration: rec.GameDuration,
			FoodsEaten:   rec.FoodsEaten,
			CreatedAt:    rec.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"scores": scores})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameMode     string `json:"gameMode"`
		Score        int    `json:"score"`
		DurationSecs int    `json:"gameDuration"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	mode := req.GameMode
	if mode == "" {
		mode = defaultGameMode
	}

	sess := store.GameSession{
		ID:           uuid.NewString(),
		GameMode:     mode,
		Score:        req.Score,
		DurationSecs: req.DurationSecs,
	}
	if claims := requestClaims(r); claims != nil {
		sess.UserID = &claims.UserID
	}

	if err := s.store.InsertSession(sess); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": sess.ID})
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	s.saveUserBlob(w, r, s.store.SaveSettings, "Settings saved")
}

func (s *Server) handleSaveAchievements(w http.ResponseWriter, r *http.Request) {
	s.saveUserBlob(w, r, s.store.SaveAchievements, "Achievements saved")
}

// saveUserBlob overwrites an opaque JSON document for the caller.
// The whole blob is replaced on each save; there are no merge semantics.
func (s *Server) saveUserBlob(w http.ResponseWriter, r *http.Request, save func(int64, string) error, message string) {
	claims := requestClaims(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, errValidation("cannot read body"))
		return
	}
	if !json.Valid(body) {
		writeError(w, errValidation("Body must be valid JSON"))
		return
	}

	if err := save(claims.UserID, string(body)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
