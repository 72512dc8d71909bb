package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "ROUND_DURATION", "TARGET_COUNT", "RESTART_COOLDOWN", "WALL_WIDTH", "SENSITIVITY", "WALL_DISTANCE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.RoundDuration != 60 {
		t.Errorf("RoundDuration = %d, want %d", cfg.RoundDuration, 60)
	}
	if cfg.TargetCount != 6 {
		t.Errorf("TargetCount = %d, want %d", cfg.TargetCount, 6)
	}
	if cfg.RestartCooldown != time.Second {
		t.Errorf("RestartCooldown = %v, want %v", cfg.RestartCooldown, time.Second)
	}
	if cfg.WallWidth != 30 || cfg.WallHeight != 12 {
		t.Errorf("wall = %vx%v, want 30x12", cfg.WallWidth, cfg.WallHeight)
	}
	if cfg.Settings != DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", cfg.Settings)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("ROUND_DURATION", "30")
	t.Setenv("RESTART_COOLDOWN", "250ms")
	t.Setenv("WALL_WIDTH", "40")
	t.Setenv("WALL_DISTANCE", "15")
	t.Setenv("SENSITIVITY", "0.5")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.RoundDuration != 30 {
		t.Errorf("RoundDuration = %d, want %d", cfg.RoundDuration, 30)
	}
	if cfg.RestartCooldown != 250*time.Millisecond {
		t.Errorf("RestartCooldown = %v, want 250ms", cfg.RestartCooldown)
	}
	if cfg.WallWidth != 40 {
		t.Errorf("WallWidth = %v, want 40", cfg.WallWidth)
	}
	if cfg.Settings.WallDistance != 15 || cfg.Settings.Sensitivity != 0.5 {
		t.Errorf("Settings = %+v, want wall distance 15 and sensitivity 0.5", cfg.Settings)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ROUND_DURATION", "abc")
	t.Setenv("TARGET_COUNT", "-2")
	t.Setenv("RESTART_COOLDOWN", "soon")
	t.Setenv("WALL_HEIGHT", "tall")
	t.Setenv("TARGET_RADIUS", "big")

	cfg := Load()

	if cfg.RoundDuration != 60 {
		t.Errorf("RoundDuration = %d, want %d (fallback)", cfg.RoundDuration, 60)
	}
	if cfg.TargetCount != 6 {
		t.Errorf("TargetCount = %d, want %d (fallback)", cfg.TargetCount, 6)
	}
	if cfg.RestartCooldown != time.Second {
		t.Errorf("RestartCooldown = %v, want 1s (fallback)", cfg.RestartCooldown)
	}
	if cfg.WallHeight != 12 {
		t.Errorf("WallHeight = %v, want 12 (fallback)", cfg.WallHeight)
	}
	if cfg.Settings.TargetRadius != 1 {
		t.Errorf("TargetRadius = %v, want 1 (fallback)", cfg.Settings.TargetRadius)
	}
}
