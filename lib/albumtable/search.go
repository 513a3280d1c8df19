package albumtable

import (
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

type Match struct {
	Row   Row     `json:"row"`
	Score float64 `json:"score"`
}

// Search ranks rows by approximate similarity between the query and
// either the album or artist name, whichever scores higher. Exact
// substring hits are common enough with album titles that JaroWinkler
// alone handles them well. Returns at most limit matches, best first.
func Search(t Table, query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	matches := make([]Match, 0, len(t.Rows))
	for _, row := range t.Rows {
		album := matchr.JaroWinkler(query, strings.ToLower(row.Album), false)
		artist := matchr.JaroWinkler(query, strings.ToLower(row.Artist), false)
		score := album
		if artist > score {
			score = artist
		}
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Row: row, Score: score})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
