package analytics

import "aimtrainer/internal/session"

type BadgeID string

const (
	BadgeSharpshooter  BadgeID = "sharpshooter"
	BadgeSpeedDemon    BadgeID = "speed_demon"
	BadgeHalfCentury   BadgeID = "half_century"
	BadgeTriggerHappy  BadgeID = "trigger_happy"
	BadgePerfectionist BadgeID = "perfectionist"
)

const (
	minShotsForAccuracy = 10
	minHitsForReaction  = 5
)

type Badge struct {
	ID          BadgeID `json:"id" msgpack:"id"`
	Name        string  `json:"name" msgpack:"name"`
	Description string  `json:"description" msgpack:"description"`
	Icon        string  `json:"icon" msgpack:"icon"`
}

var AllBadges = map[BadgeID]Badge{
	BadgeSharpshooter:  {ID: BadgeSharpshooter, Name: "Sharpshooter", Description: "90%+ accuracy over 10+ shots", Icon: "🎯"},
	BadgeSpeedDemon:    {ID: BadgeSpeedDemon, Name: "Speed Demon", Description: "Average reaction time under 700ms", Icon: "⚡"},
	BadgeHalfCentury:   {ID: BadgeHalfCentury, Name: "Half Century", Description: "50+ targets in a single round", Icon: "💯"},
	BadgeTriggerHappy:  {ID: BadgeTriggerHappy, Name: "Trigger Happy", Description: "3+ shots per second average", Icon: "🖱️"},
	BadgePerfectionist: {ID: BadgePerfectionist, Name: "Perfectionist", Description: "No missed shots over 10+ shots", Icon: "✨"},
}

// EvaluateRoundBadges checks which badges a finished round earned.
func EvaluateRoundBadges(stats session.RoundStats) []Badge {
	var earned []Badge

	if stats.ShotsFired >= minShotsForAccuracy && stats.Accuracy >= 90 {
		earned = append(earned, AllBadges[BadgeSharpshooter])
	}

	if stats.Score >= minHitsForReaction && stats.AvgReactionMs > 0 && stats.AvgReactionMs < 700 {
		earned = append(earned, AllBadges[BadgeSpeedDemon])
	}

	if stats.Score >= 50 {
		earned = append(earned, AllBadges[BadgeHalfCentury])
	}

	if stats.ShotsPerSecond >= 3.0 {
		earned = append(earned, AllBadges[BadgeTriggerHappy])
	}

	if stats.ShotsFired >= minShotsForAccuracy && stats.Score == stats.ShotsFired {
		earned = append(earned, AllBadges[BadgePerfectionist])
	}

	return earned
}
