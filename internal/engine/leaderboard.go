package engine

type LeaderboardEntry struct {
	Place       int    `json:"place"`
	ChampionID  string `json:"champion_id"`
	DisplayName string `json:"display_name"`
	Team        Team   `json:"team"`
	Role        Role   `json:"role"`
	Gold        int    `json:"gold"`
	Highlight   bool   `json:"highlight"`
}

func (e LeaderboardEntry) GoldText() string { return FormatGold(e.Gold) }

// Leaderboard ranks players by gold for the secondary panel. The player whose
// display name equals highlight is flagged.
func Leaderboard(players []PlayerRecord, highlight string) []LeaderboardEntry {
	sorted := SortByGoldDescending(players)
	entries := make([]LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		entries[i] = LeaderboardEntry{
			Place:       i + 1,
			ChampionID:  p.ChampionID,
			DisplayName: p.DisplayName,
			Team:        p.Team,
			Role:        p.Role,
			Gold:        p.TotalGold,
			Highlight:   highlight != "" && p.DisplayName == highlight,
		}
	}
	return entries
}
