package analytics

import "aimtrainer/internal/session"

// RoundSummary is what a finished round reports back to the player: the final
// score line plus the badges the round earned.
type RoundSummary struct {
	Score    int                `json:"score" msgpack:"score"`
	Accuracy float64            `json:"accuracy" msgpack:"accuracy"`
	Stats    session.RoundStats `json:"stats" msgpack:"stats"`
	Badges   []Badge            `json:"badges" msgpack:"badges"`
}

func Summarize(res session.Result) RoundSummary {
	return RoundSummary{
		Score:    res.Score,
		Accuracy: res.Accuracy,
		Stats:    res.Stats,
		Badges:   EvaluateRoundBadges(res.Stats),
	}
}

// BadgeIDs flattens a badge list for event payloads.
func BadgeIDs(badges []Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, string(b.ID))
	}
	return ids
}
