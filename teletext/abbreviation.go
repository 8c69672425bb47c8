package teletext

import (
	"strings"
	"unicode"
)

// teamAbbreviations maps the canonical Liiga team names (and the common
// city-prefixed variants) to their established three-letter tags.
var teamAbbreviations = map[string]string{
	"tappara":             "TAP",
	"tampereen tappara":   "TAP",
	"hifk":                "IFK",
	"helsingin ifk":       "IFK",
	"kärpät":              "KÄR",
	"oulun kärpät":        "KÄR",
	"lukko":               "LUK",
	"rauman lukko":        "LUK",
	"jyp":                 "JYP",
	"ilves":               "ILV",
	"tampereen ilves":     "ILV",
	"tps":                 "TPS",
	"turun palloseura":    "TPS",
	"kalpa":               "KAL",
	"kuopion kalpa":       "KAL",
	"saipa":               "SAI",
	"lappeenrannan saipa": "SAI",
	"sport":               "SPO",
	"vaasan sport":        "SPO",
	"pelicans":            "PEL",
	"lahden pelicans":     "PEL",
	"hpk":                 "HPK",
	"hämeenlinnan hpk":    "HPK",
	"jukurit":             "JUK",
	"mikkelin jukurit":    "JUK",
	"ässät":               "ÄSS",
	"porin ässät":         "ÄSS",
	"kookoo":              "KOO",
	"kouvolan kookoo":     "KOO",
	"k-espoo":             "KES",
	"kiekko-espoo":        "KES",
}

// Abbreviate maps a team name to a three-letter tag. Known Liiga names use
// their established tags; anything else falls back to the first three
// alphabetic characters, uppercased. Inputs without any alphabetics come
// back unchanged.
func Abbreviate(name string) string {
	if tag, ok := teamAbbreviations[strings.ToLower(strings.TrimSpace(name))]; ok {
		return tag
	}

	var letters []rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return name
	}
	return string(letters)
}
