package liveclient

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/engine"
)

// Pointer fields let Decode tell a missing key apart from a zero value.
type allGameData struct {
	ActivePlayer *struct {
		SummonerName *string `json:"summonerName"`
		RiotID       *string `json:"riotId"`
	} `json:"activePlayer"`
	AllPlayers *[]playerData `json:"allPlayers"`
	GameData   *struct {
		GameMode *string  `json:"gameMode"`
		GameTime *float64 `json:"gameTime"`
	} `json:"gameData"`
}

type playerData struct {
	ChampionName *string     `json:"championName"`
	Position     *string     `json:"position"`
	SummonerName *string     `json:"summonerName"`
	RiotID       *string     `json:"riotId"`
	Team         *string     `json:"team"`
	Items        *[]itemData `json:"items"`
}

type itemData struct {
	ItemID int `json:"itemID"`
	Slot   int `json:"slot"`
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", engine.ErrMalformedSnapshot, field)
}

// displayName prefers the legacy summoner name and falls back to the Riot ID
// newer clients send instead.
func displayName(summoner, riotID *string) (string, bool) {
	if summoner != nil && *summoner != "" {
		return *summoner, true
	}
	if riotID != nil {
		return *riotID, true
	}
	if summoner != nil {
		return "", true
	}
	return "", false
}

// Decode parses an allgamedata document. Any required key that is absent
// yields engine.ErrMalformedSnapshot naming the field.
func Decode(data []byte) (engine.Match, error) {
	var raw allGameData
	if err := json.Unmarshal(data, &raw); err != nil {
		return engine.Match{}, fmt.Errorf("%w: %v", engine.ErrMalformedSnapshot, err)
	}

	switch {
	case raw.GameData == nil:
		return engine.Match{}, missing("gameData")
	case raw.GameData.GameTime == nil:
		return engine.Match{}, missing("gameData.gameTime")
	case raw.GameData.GameMode == nil:
		return engine.Match{}, missing("gameData.gameMode")
	case raw.AllPlayers == nil:
		return engine.Match{}, missing("allPlayers")
	}

	m := engine.Match{
		GameMode: *raw.GameData.GameMode,
		GameTime: max(*raw.GameData.GameTime, 0),
		Players:  make([]engine.PlayerEntry, 0, len(*raw.AllPlayers)),
	}
	if raw.ActivePlayer != nil {
		m.ActivePlayer, _ = displayName(raw.ActivePlayer.SummonerName, raw.ActivePlayer.RiotID)
	}

	for i, p := range *raw.AllPlayers {
		field := func(name string) error { return missing(fmt.Sprintf("allPlayers[%d].%s", i, name)) }

		switch {
		case p.ChampionName == nil:
			return engine.Match{}, field("championName")
		case p.Team == nil:
			return engine.Match{}, field("team")
		case p.Position == nil:
			return engine.Match{}, field("position")
		case p.Items == nil:
			return engine.Match{}, field("items")
		}
		name, ok := displayName(p.SummonerName, p.RiotID)
		if !ok {
			return engine.Match{}, field("summonerName")
		}

		items := make([]int, len(*p.Items))
		for j, it := range *p.Items {
			items[j] = it.ItemID
		}
		m.Players = append(m.Players, engine.PlayerEntry{
			ChampionName: *p.ChampionName,
			Team:         *p.Team,
			Position:     *p.Position,
			DisplayName:  name,
			Items:        items,
		})
	}
	return m, nil
}
