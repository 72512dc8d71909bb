package config

import (
	"aimtrainer/internal/scene"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Settings are the player-tunable values. They change mid-session from UI
// inputs, so every field always holds the last valid value.
type Settings struct {
	Sensitivity  float64 `json:"sensitivity" msgpack:"sensitivity"`
	WallDistance float64 `json:"wallDistance" msgpack:"wallDistance"`
	TargetRadius float64 `json:"targetRadius" msgpack:"targetRadius"`
	ReticleColor string  `json:"reticleColor" msgpack:"reticleColor"`
	ReticleSize  int     `json:"reticleSize" msgpack:"reticleSize"`
}

func DefaultSettings() Settings {
	return Settings{
		Sensitivity:  1,
		WallDistance: 30,
		TargetRadius: 1,
		ReticleColor: "#ff3b30",
		ReticleSize:  6,
	}
}

// SettingsPatch carries raw input values. Empty fields are left alone.
type SettingsPatch struct {
	Sensitivity  string `json:"sensitivity,omitempty" msgpack:"sensitivity,omitempty"`
	WallDistance string `json:"wallDistance,omitempty" msgpack:"wallDistance,omitempty"`
	TargetRadius string `json:"targetRadius,omitempty" msgpack:"targetRadius,omitempty"`
	ReticleColor string `json:"reticleColor,omitempty" msgpack:"reticleColor,omitempty"`
	ReticleSize  string `json:"reticleSize,omitempty" msgpack:"reticleSize,omitempty"`
}

// Apply returns s updated with every patch field that parses. Fields that fail
// to parse, or fall outside their domain, keep their current value.
// Sensitivity is clamped rather than rejected.
func (s Settings) Apply(p SettingsPatch) Settings {
	if v, ok := parsePositive(p.Sensitivity); ok {
		s.Sensitivity = scene.ClampSensitivity(v)
	}
	if v, ok := parsePositive(p.WallDistance); ok {
		s.WallDistance = v
	}
	if v, ok := parsePositive(p.TargetRadius); ok {
		s.TargetRadius = v
	}
	if c := strings.TrimSpace(p.ReticleColor); hexColor.MatchString(c) {
		s.ReticleColor = strings.ToLower(c)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(p.ReticleSize)); err == nil && n > 0 {
		s.ReticleSize = n
	}
	return s
}

func parsePositive(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
