package analytics

import (
	"aimtrainer/internal/session"
	"testing"
)

func TestEvaluateRoundBadges_Sharpshooter(t *testing.T) {
	stats := session.RoundStats{Score: 9, ShotsFired: 10, Accuracy: 90}
	badges := EvaluateRoundBadges(stats)
	if !hasBadge(badges, BadgeSharpshooter) {
		t.Error("should earn Sharpshooter with 90% over 10 shots")
	}
}

func TestEvaluateRoundBadges_NoSharpshooterOnFewShots(t *testing.T) {
	stats := session.RoundStats{Score: 5, ShotsFired: 5, Accuracy: 100}
	badges := EvaluateRoundBadges(stats)
	if hasBadge(badges, BadgeSharpshooter) {
		t.Error("should not earn Sharpshooter with only 5 shots")
	}
}

func TestEvaluateRoundBadges_NoSharpshooter(t *testing.T) {
	stats := session.RoundStats{Score: 17, ShotsFired: 20, Accuracy: 85}
	badges := EvaluateRoundBadges(stats)
	if hasBadge(badges, BadgeSharpshooter) {
		t.Error("should not earn Sharpshooter with 85% accuracy")
	}
}

func TestEvaluateRoundBadges_SpeedDemon(t *testing.T) {
	stats := session.RoundStats{Score: 5, ShotsFired: 8, AvgReactionMs: 650}
	badges := EvaluateRoundBadges(stats)
	if !hasBadge(badges, BadgeSpeedDemon) {
		t.Error("should earn Speed Demon with 650ms avg reaction")
	}
}

func TestEvaluateRoundBadges_NoSpeedDemon(t *testing.T) {
	stats := session.RoundStats{Score: 10, ShotsFired: 10, AvgReactionMs: 700}
	badges := EvaluateRoundBadges(stats)
	if hasBadge(badges, BadgeSpeedDemon) {
		t.Error("should not earn Speed Demon with 700ms avg reaction")
	}
}

func TestEvaluateRoundBadges_NoSpeedDemonOnFewHits(t *testing.T) {
	stats := session.RoundStats{Score: 4, ShotsFired: 4, AvgReactionMs: 200}
	badges := EvaluateRoundBadges(stats)
	if hasBadge(badges, BadgeSpeedDemon) {
		t.Error("should not earn Speed Demon with 4 hits")
	}
}

func TestEvaluateRoundBadges_HalfCentury(t *testing.T) {
	stats := session.RoundStats{Score: 50, ShotsFired: 80}
	badges := EvaluateRoundBadges(stats)
	if !hasBadge(badges, BadgeHalfCentury) {
		t.Error("should earn Half Century with 50 hits")
	}
}

func TestEvaluateRoundBadges_NoHalfCentury(t *testing.T) {
	stats := session.RoundStats{Score: 49, ShotsFired: 80}
	badges := EvaluateRoundBadges(stats)
	if hasBadge(badges, BadgeHalfCentury) {
		t.Error("should not earn Half Century with 49 hits")
	}
}

func TestEvaluateRoundBadges_TriggerHappy(t *testing.T) {
	stats := session.RoundStats{ShotsFired: 180, ShotsPerSecond: 3.0}
	badges := EvaluateRoundBadges(stats)
	if !hasBadge(badges, BadgeTriggerHappy) {
		t.Error("should earn Trigger Happy with 3.0 shots/s")
	}
}

func TestEvaluateRoundBadges_NoTriggerHappy(t *testing.T) {
	stats := session.RoundStats{ShotsFired: 174, ShotsPerSecond: 2.9}
	badges := EvaluateRoundBadges(stats)
	if hasBadge(badges, BadgeTriggerHappy) {
		t.Error("should not earn Trigger Happy with 2.9 shots/s")
	}
}

func TestEvaluateRoundBadges_Perfectionist(t *testing.T) {
	stats := session.RoundStats{Score: 12, ShotsFired: 12, Accuracy: 100}
	badges := EvaluateRoundBadges(stats)
	if !hasBadge(badges, BadgePerfectionist) {
		t.Error("should earn Perfectionist with 12 of 12")
	}
}

func TestEvaluateRoundBadges_NoPerfectionist(t *testing.T) {
	stats := session.RoundStats{Score: 11, ShotsFired: 12, Accuracy: 91.7}
	badges := EvaluateRoundBadges(stats)
	if hasBadge(badges, BadgePerfectionist) {
		t.Error("should not earn Perfectionist with one miss")
	}
}

func TestEvaluateRoundBadges_NoBadges(t *testing.T) {
	stats := session.RoundStats{
		Score:          10,
		ShotsFired:     20,
		Accuracy:       50,
		AvgReactionMs:  900,
		ShotsPerSecond: 0.3,
	}
	badges := EvaluateRoundBadges(stats)
	if len(badges) != 0 {
		t.Errorf("should earn no badges, got %d", len(badges))
	}
}

func TestEvaluateRoundBadges_EmptyRound(t *testing.T) {
	if badges := EvaluateRoundBadges(session.RoundStats{}); len(badges) != 0 {
		t.Errorf("empty round earned %d badges, want 0", len(badges))
	}
}

func TestEvaluateRoundBadges_MultipleBadges(t *testing.T) {
	stats := session.RoundStats{
		Score:          180,
		ShotsFired:     180,
		Accuracy:       100,
		AvgReactionMs:  320,
		ShotsPerSecond: 3.0,
	}
	badges := EvaluateRoundBadges(stats)
	// Sharpshooter, SpeedDemon, HalfCentury, TriggerHappy, Perfectionist
	if len(badges) != 5 {
		t.Errorf("should earn 5 badges, got %d", len(badges))
	}
}

func TestSummarize(t *testing.T) {
	res := session.Result{
		Score:    9,
		Accuracy: 90,
		Stats:    session.RoundStats{Score: 9, ShotsFired: 10, Accuracy: 90},
	}
	sum := Summarize(res)
	if sum.Score != 9 || sum.Accuracy != 90 {
		t.Errorf("Summarize() = %+v, want score 9 accuracy 90", sum)
	}
	ids := BadgeIDs(sum.Badges)
	if len(ids) != 1 || ids[0] != string(BadgeSharpshooter) {
		t.Errorf("badge ids = %v, want [%s]", ids, BadgeSharpshooter)
	}
}

func hasBadge(badges []Badge, id BadgeID) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
