package engine

import (
	"cmp"
	"slices"
)

var Positions = []Role{
	RoleTop,
	RoleJungle,
	RoleMiddle,
	RoleBottom,
	RoleUtility,
}

var DefaultTeamOrder = []Team{TeamOrder, TeamChaos}

type Perspective string

const (
	PerspectiveFixed        Perspective = "fixed"
	PerspectiveActivePlayer Perspective = "active_player"
)

func (p Perspective) Valid() bool {
	return p == PerspectiveFixed || p == PerspectiveActivePlayer
}

// ResolveTeamOrder picks which team is drawn on the left. With the
// active-player perspective the viewer's own team goes first; if the viewer
// can't be found the fixed ORDER/CHAOS order is used.
func ResolveTeamOrder(p Perspective, m Match) []Team {
	if p != PerspectiveActivePlayer || m.ActivePlayer == "" {
		return DefaultTeamOrder
	}
	for _, e := range m.Players {
		if e.DisplayName != m.ActivePlayer {
			continue
		}
		if ParseTeam(e.Team) == TeamChaos {
			return []Team{TeamChaos, TeamOrder}
		}
		break
	}
	return DefaultTeamOrder
}

// Inverted reports whether CHAOS is the left team.
func Inverted(teamOrder []Team) bool {
	return len(teamOrder) > 0 && teamOrder[0] == TeamChaos
}

// SortByPosition lays players out team by team, role by role. Players whose
// team or role doesn't match a slot are left out, so the result may be shorter
// than the input (empty when no roles are reported at all).
func SortByPosition(players []PlayerRecord, teamOrder []Team) []PlayerRecord {
	sorted := []PlayerRecord{}
	used := make([]bool, len(players))

	for _, team := range teamOrder {
		for _, role := range Positions {
			for i, p := range players {
				if used[i] || p.Team != team || p.Role != role {
					continue
				}
				sorted = append(sorted, p)
				used[i] = true
				break
			}
		}
	}
	return sorted
}

// ArrangeByPosition returns the position-sorted layout when it places every
// player, otherwise the players in their original order.
func ArrangeByPosition(players []PlayerRecord, teamOrder []Team) (arranged []PlayerRecord, sorted bool) {
	s := SortByPosition(players, teamOrder)
	if len(s) == 0 || len(s) != len(players) {
		return players, false
	}
	return s, true
}

// SortByGoldDescending returns a copy ordered by TotalGold, highest first.
// Equal totals keep their input order.
func SortByGoldDescending(players []PlayerRecord) []PlayerRecord {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b PlayerRecord) int {
		return cmp.Compare(b.TotalGold, a.TotalGold)
	})
	return out
}
