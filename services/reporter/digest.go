package reporter

import (
	"fmt"
	"strings"
	"time"

	"albumboard/lib/albumtable"

	"github.com/jedib0t/go-pretty/v6/table"
)

const digestTopAlbums = 10
const digestTopArtists = 10

// BuildDigest renders a plain-text summary of the loaded table: the
// overall stats, the top rated albums and the most-listened artists.
func BuildDigest(groupURL string, t albumtable.Table, lastUpdated time.Time) string {
	var out strings.Builder

	overview := albumtable.Summarize(t)
	fmt.Fprintf(&out, "Album digest for %s\n", groupURL)
	fmt.Fprintf(&out, "Updated %s\n\n", lastUpdated.Format("Mon Jan 2 15:04"))
	fmt.Fprintf(&out, "Albums rated: %d\n", overview.Count)
	fmt.Fprintf(&out, "Average rating: %.2f\n", overview.MeanRating)
	fmt.Fprintf(&out, "Total votes: %d\n", overview.TotalVotes)
	if overview.Top != nil {
		fmt.Fprintf(&out, "Highest rated: %s by %s (%.2f)\n", overview.Top.Album, overview.Top.Artist, overview.Top.Rating)
	}
	out.WriteString("\n")

	byRating := t.SortBy(albumtable.SortSpec{
		Column:     albumtable.ColumnRating,
		Descending: true,
	}, &albumtable.SortSpec{
		Column:     albumtable.ColumnVotes,
		Descending: true,
	})

	albums := table.NewWriter()
	albums.SetStyle(table.StyleRounded)
	albums.AppendHeader(table.Row{"Album", "Artist", "Rating", "Votes"})
	for i, row := range byRating.Rows {
		if i >= digestTopAlbums {
			break
		}
		albums.AppendRow(table.Row{row.Album, row.Artist, fmt.Sprintf("%.2f", row.Rating), row.Votes})
	}
	out.WriteString(albums.Render())
	out.WriteString("\n\n")

	artists := table.NewWriter()
	artists.SetStyle(table.StyleRounded)
	artists.AppendHeader(table.Row{"Artist", "Albums", "Avg Rating", "Votes"})
	for i, stat := range albumtable.ByArtist(t) {
		if i >= digestTopArtists {
			break
		}
		artists.AppendRow(table.Row{stat.Artist, stat.Albums, fmt.Sprintf("%.2f", stat.MeanRating), stat.TotalVotes})
	}
	out.WriteString(artists.Render())
	out.WriteString("\n")

	return out.String()
}
