package store

import "time"

// User is an account row. Achievements and Settings are opaque JSON
// documents replaced wholesale on each save.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
	IsGuest      bool
	TotalGames   int
	TotalScore   int
	Achievements string
	Settings     string
	CreatedAt    time.Time
	LastLogin    time.Time // Zero when the user has never logged in
}

// ScoreRecord is a single submitted game result. UserID is nil for
// anonymous submissions; Username is a snapshot taken at submission time.
type ScoreRecord struct {
	ID           int64
	UserID       *int64
	Username     string
	Score        int
	GameMode     string
	SnakeSkin    string
	Theme        string
	GameDuration int // Seconds
	FoodsEaten   int
	CreatedAt    time.Time
}

// GameSession is write-only telemetry about a played game.
type GameSession struct {
	ID           string // UUID
	UserID       *int64
	GameMode     string
	Score        int
	DurationSecs int
	CreatedAt    time.Time
}

// LeaderboardRow aggregates one user's results for a mode.
type LeaderboardRow struct {
	UserID      int64
	Username    string
	DisplayName string
	BestScore   int
	GamesPlayed int
	TotalFoods  int
}
