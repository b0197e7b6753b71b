package ddragon

import "strings"

// championOverrides covers display names the generic transform gets wrong.
// Data Dragon ids keep only the first letter upper-case for most apostrophe
// names, and a few champions use an unrelated internal id.
var championOverrides = map[string]string{
	"Wukong":         "MonkeyKing",
	"Nunu & Willump": "Nunu",
	"Renata Glasc":   "Renata",
	"LeBlanc":        "Leblanc",
	"Bel'Veth":       "Belveth",
	"Cho'Gath":       "Chogath",
	"Kai'Sa":         "Kaisa",
	"Kha'Zix":        "Khazix",
	"Vel'Koz":        "Velkoz",
	"K'Sante":        "KSante",
}

var decorations = strings.NewReplacer("'", "", " ", "", ".", "")

// ChampionIndex resolves live-client display names to Data Dragon ids.
type ChampionIndex struct {
	byName map[string]string
}

func NewChampionIndex(byName map[string]string) *ChampionIndex {
	if byName == nil {
		byName = map[string]string{}
	}
	return &ChampionIndex{byName: byName}
}

func (ci *ChampionIndex) Len() int { return len(ci.byName) }

// ChampionID tries the patch's own name table first, then the override table,
// then strips apostrophes, spaces and periods.
func (ci *ChampionIndex) ChampionID(displayName string) string {
	if id, ok := ci.byName[displayName]; ok {
		return id
	}
	if id, ok := championOverrides[displayName]; ok {
		return id
	}
	return decorations.Replace(displayName)
}
