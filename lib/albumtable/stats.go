package albumtable

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"
)

type Overview struct {
	Count      int     `json:"count"`
	MeanRating float64 `json:"mean_rating"`
	TotalVotes int     `json:"total_votes"`
	// Top is the highest-rated row, first occurrence wins on ties.
	// Nil for an empty table.
	Top *Row `json:"top,omitempty"`
}

func Summarize(t Table) Overview {
	out := Overview{Count: len(t.Rows)}
	if len(t.Rows) == 0 {
		return out
	}

	ratings := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		ratings = append(ratings, row.Rating)
		out.TotalVotes += row.Votes
	}

	mean, err := stats.Mean(ratings)
	if err == nil {
		out.MeanRating = mean
	}

	top := t.Rows[0]
	for _, row := range t.Rows[1:] {
		if row.Rating > top.Rating {
			top = row
		}
	}
	out.Top = &top
	return out
}

type ArtistStat struct {
	Artist     string  `json:"artist"`
	Albums     int     `json:"albums"`
	MeanRating float64 `json:"mean_rating"`
	TotalVotes int     `json:"total_votes"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ByArtist aggregates rows per artist: album count, mean rating
// rounded to two decimals and vote total, ordered by descending album
// count. Artists with equal counts keep first-appearance order.
func ByArtist(t Table) []ArtistStat {
	type accumulator struct {
		ratings []float64
		votes   int
	}

	order := []string{}
	byArtist := map[string]*accumulator{}
	for _, row := range t.Rows {
		acc := byArtist[row.Artist]
		if acc == nil {
			acc = &accumulator{}
			byArtist[row.Artist] = acc
			order = append(order, row.Artist)
		}
		acc.ratings = append(acc.ratings, row.Rating)
		acc.votes += row.Votes
	}

	out := make([]ArtistStat, 0, len(order))
	for _, artist := range order {
		acc := byArtist[artist]
		mean, err := stats.Mean(acc.ratings)
		if err != nil {
			mean = 0
		}
		out = append(out, ArtistStat{
			Artist:     artist,
			Albums:     len(acc.ratings),
			MeanRating: round2(mean),
			TotalVotes: acc.votes,
		})
	}

	slices.SortStableFunc(out, func(a, b ArtistStat) int {
		return b.Albums - a.Albums
	})
	return out
}
