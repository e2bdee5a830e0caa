package config

import (
	_ "embed"
)

//go:embed defaults/pythonix.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Width:          32,
			Height:         24,
			SpeedMS:        150,
			PowerDurationS: 10,
			FoodWeights: FoodWeights{
				Normal: 0.7,
				Power:  0.1,
				Slow:   0.1,
				Hazard: 0.1,
			},
		},
		Server: ServerConfig{
			Addr:              ":8080",
			DBPath:            "~/.pythonix/pythonix.db",
			JWTSecret:         "change-me",
			UserTokenTTLDays:  30,
			GuestTokenTTLDays: 7,
		},
	}
}
