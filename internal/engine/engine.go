package engine

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")

type Team string

const (
	TeamOrder Team = "ORDER"
	TeamChaos Team = "CHAOS"
)

type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMiddle  Role = "MIDDLE"
	RoleBottom  Role = "BOTTOM"
	RoleUtility Role = "UTILITY"
	RoleUnknown Role = ""
)

// Label is the lower-cased role used in the dashboard rows.
func (r Role) Label() string {
	if r == RoleUnknown {
		return "empty"
	}
	return strings.ToLower(string(r))
}

func ParseTeam(raw string) Team {
	return Team(strings.ToUpper(strings.TrimSpace(raw)))
}

func ParseRole(raw string) Role {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if slices.Contains(Positions, r) {
		return r
	}
	return RoleUnknown
}

// PlayerEntry is one participant as reported by the game client, before any
// enrichment.
type PlayerEntry struct {
	ChampionName string
	Team         string
	Position     string
	DisplayName  string
	Items        []int
}

// Match is a decoded allgamedata document.
type Match struct {
	ActivePlayer string
	GameMode     string
	GameTime     float64 // seconds
	Players      []PlayerEntry
}

func (m Match) ElapsedMinutes() float64 {
	return m.GameTime / 60
}

type PlayerRecord struct {
	ChampionID    string
	Team          Team
	Role          Role
	TotalGold     int
	Rank          int
	DisplayName   string
	UnpricedItems int
}

type PriceLookup interface {
	Price(itemID int) (int, bool)
}

type ChampionResolver interface {
	ChampionID(displayName string) string
}

// BuildPlayers enriches every entry with its item gold and rank. Output order
// matches input order. Items missing from the price table count as zero.
func BuildPlayers(entries []PlayerEntry, prices PriceLookup, champions ChampionResolver) ([]PlayerRecord, error) {
	players := make([]PlayerRecord, 0, len(entries))

	for i, e := range entries {
		if e.ChampionName == "" {
			return nil, fmt.Errorf("%w: player %d has no champion", ErrMalformedSnapshot, i)
		}
		if e.Team == "" {
			return nil, fmt.Errorf("%w: player %d has no team", ErrMalformedSnapshot, i)
		}

		gold, unpriced := 0, 0
		for _, id := range e.Items {
			price, ok := prices.Price(id)
			if !ok {
				unpriced++
				continue
			}
			gold += price
		}

		players = append(players, PlayerRecord{
			ChampionID:    champions.ChampionID(e.ChampionName),
			Team:          ParseTeam(e.Team),
			Role:          ParseRole(e.Position),
			TotalGold:     gold,
			DisplayName:   e.DisplayName,
			UnpricedItems: unpriced,
		})
	}

	AssignRanks(players)
	return players, nil
}

// AssignRanks sets Rank to the 1-based position of each player's gold in the
// descending list of all totals. Equal totals take the first position they
// appear at, so [100, 100, 50] ranks as [1, 1, 3].
func AssignRanks(players []PlayerRecord) {
	sorted := make([]int, len(players))
	for i, p := range players {
		sorted[i] = p.TotalGold
	}
	slices.SortFunc(sorted, func(a, b int) int { return cmp.Compare(b, a) })

	for i := range players {
		players[i].Rank = slices.Index(sorted, players[i].TotalGold) + 1
	}
}
