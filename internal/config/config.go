package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	RoundDuration   int // seconds
	TargetCount     int
	RestartCooldown time.Duration
	WallWidth       float64
	WallHeight      float64
	EyeHeight       float64
	FOV             float64 // vertical, degrees
	StaticDir       string
	RoomTTL         time.Duration
	Settings        Settings
}

func Load() Config {
	defaults := DefaultSettings()
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		RoundDuration:   getEnvInt("ROUND_DURATION", 60),
		TargetCount:     getEnvInt("TARGET_COUNT", 6),
		RestartCooldown: getEnvDuration("RESTART_COOLDOWN", time.Second),
		WallWidth:       getEnvFloat("WALL_WIDTH", 30),
		WallHeight:      getEnvFloat("WALL_HEIGHT", 12),
		EyeHeight:       getEnvFloat("EYE_HEIGHT", 1.6),
		FOV:             getEnvFloat("FOV", 75),
		StaticDir:       getEnv("STATIC_DIR", "static"),
		RoomTTL:         getEnvDuration("ROOM_TTL", time.Hour),
	}
	cfg.Settings = defaults.Apply(SettingsPatch{
		Sensitivity:  os.Getenv("SENSITIVITY"),
		WallDistance: os.Getenv("WALL_DISTANCE"),
		TargetRadius: os.Getenv("TARGET_RADIUS"),
		ReticleColor: os.Getenv("RETICLE_COLOR"),
		ReticleSize:  os.Getenv("RETICLE_SIZE"),
	})
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
