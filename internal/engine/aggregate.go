package engine

import "github.com/samber/lo"

type Row struct {
	Position      string `json:"position"`
	LeftChampion  string `json:"left_champion"`
	LeftRank      int    `json:"left_rank"`
	LeftGold      int    `json:"left_gold"`
	RightChampion string `json:"right_champion"`
	RightRank     int    `json:"right_rank"`
	RightGold     int    `json:"right_gold"`
	GoldDiff      int    `json:"gold_diff"` // RightGold - LeftGold
}

func (r Row) LeftGoldText() string  { return FormatGold(r.LeftGold) }
func (r Row) RightGoldText() string { return FormatGold(r.RightGold) }
func (r Row) GoldDiffText() string  { return FormatGold(r.GoldDiff) }

type TeamTotals struct {
	LeftTeam     Team `json:"left_team"`
	RightTeam    Team `json:"right_team"`
	LeftGold     int  `json:"left_gold"`
	RightGold    int  `json:"right_gold"`
	Differential int  `json:"differential"` // RightGold - LeftGold
}

func (t TeamTotals) OrderGold() int { return t.goldOf(TeamOrder) }
func (t TeamTotals) ChaosGold() int { return t.goldOf(TeamChaos) }

func (t TeamTotals) goldOf(team Team) int {
	switch team {
	case t.LeftTeam:
		return t.LeftGold
	case t.RightTeam:
		return t.RightGold
	}
	return 0
}

func (t TeamTotals) LeftText() string         { return FormatGold(t.LeftGold) }
func (t TeamTotals) RightText() string        { return FormatGold(t.RightGold) }
func (t TeamTotals) DifferentialText() string { return FormatGold(t.Differential) }

// Aggregate pairs the first half of players against the second half by slot
// index. Pairing assumes players are already position-arranged; with the
// unsorted fallback roles may not line up. With an odd count the last player
// has no partner and is left out of the rows and totals.
func Aggregate(players []PlayerRecord, teamOrder []Team) ([]Row, TeamTotals) {
	half := len(players) / 2
	rows := make([]Row, 0, half)
	for i := 0; i < half; i++ {
		left, right := players[i], players[i+half]
		rows = append(rows, Row{
			Position:      left.Role.Label(),
			LeftChampion:  left.ChampionID,
			LeftRank:      left.Rank,
			LeftGold:      left.TotalGold,
			RightChampion: right.ChampionID,
			RightRank:     right.Rank,
			RightGold:     right.TotalGold,
			GoldDiff:      right.TotalGold - left.TotalGold,
		})
	}

	totals := TeamTotals{
		LeftTeam:  TeamOrder,
		RightTeam: TeamChaos,
		LeftGold:  lo.SumBy(rows, func(r Row) int { return r.LeftGold }),
		RightGold: lo.SumBy(rows, func(r Row) int { return r.RightGold }),
	}
	if len(teamOrder) == 2 {
		totals.LeftTeam, totals.RightTeam = teamOrder[0], teamOrder[1]
	}
	totals.Differential = totals.RightGold - totals.LeftGold

	return rows, totals
}
