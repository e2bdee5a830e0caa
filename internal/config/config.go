// Package config provides YAML-based configuration loading for the
// Pythonix game and its leaderboard service.
package config

// Config is the root configuration document.
type Config struct {
	Game   GameConfig   `yaml:"game"`
	Server ServerConfig `yaml:"server"`
}

// GameConfig contains the game-loop parameters.
type GameConfig struct {
	Width          int         `yaml:"width"`
	Height         int         `yaml:"height"`
	SpeedMS        int         `yaml:"speed_ms"`         // Base tick interval in milliseconds
	PowerDurationS int         `yaml:"power_duration_s"` // Multiplier window in seconds
	FoodWeights    FoodWeights `yaml:"food_weights"`
}

// FoodWeights defines the weighted food-type distribution.
type FoodWeights struct {
	Normal float64 `yaml:"normal"`
	Power  float64 `yaml:"power"`
	Slow   float64 `yaml:"slow"`
	Hazard float64 `yaml:"hazard"`
}

// ServerConfig contains the HTTP service parameters.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	DBPath            string `yaml:"db_path"`
	JWTSecret         string `yaml:"jwt_secret"`
	UserTokenTTLDays  int    `yaml:"user_token_ttl_days"`
	GuestTokenTTLDays int    `yaml:"guest_token_ttl_days"`
}
