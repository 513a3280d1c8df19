package albumtable

import (
	"testing"
	"time"

	"albumboard/lib/scrapers/albumsgen"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	loaded := twoRecordTable()

	f := DefaultFilter(loaded)
	f.Rating = Range{3.0, 5.0}
	filtered := loaded.Apply(f)

	overview := Summarize(filtered)
	require.Equal(t, 1, overview.Count)
	require.Equal(t, 4.0, overview.MeanRating)
	require.Equal(t, 10, overview.TotalVotes)
	require.NotNil(t, overview.Top)
	require.Equal(t, "A", overview.Top.Album)
}

func TestSummarizeTieKeepsFirstOccurrence(t *testing.T) {
	now := time.Now()
	loaded := Build([]albumsgen.AlbumRecord{
		record("First", "X", 4.0, 1, now),
		record("Second", "Y", 4.0, 2, now),
	})

	overview := Summarize(loaded)
	require.Equal(t, "First", overview.Top.Album)
}

func TestSummarizeEmpty(t *testing.T) {
	overview := Summarize(Build(nil))
	require.Equal(t, 0, overview.Count)
	require.Equal(t, 0.0, overview.MeanRating)
	require.Nil(t, overview.Top)
}

func TestByArtist(t *testing.T) {
	now := time.Now()
	loaded := Build([]albumsgen.AlbumRecord{
		record("A1", "Prolific", 4.0, 10, now),
		record("A2", "Prolific", 3.0, 5, now),
		record("A3", "Prolific", 3.1, 1, now),
		record("B1", "OneHit", 5.0, 2, now),
	})

	artists := ByArtist(loaded)
	require.Len(t, artists, 2)

	require.Equal(t, "Prolific", artists[0].Artist)
	require.Equal(t, 3, artists[0].Albums)
	// (4.0 + 3.0 + 3.1) / 3 rounded to 2 decimals
	require.Equal(t, 3.37, artists[0].MeanRating)
	require.Equal(t, 16, artists[0].TotalVotes)

	require.Equal(t, "OneHit", artists[1].Artist)
	require.Equal(t, 1, artists[1].Albums)
	require.Equal(t, 5.0, artists[1].MeanRating)
	require.Equal(t, 2, artists[1].TotalVotes)
}

func TestByArtistTiesKeepTableOrder(t *testing.T) {
	now := time.Now()
	loaded := Build([]albumsgen.AlbumRecord{
		record("A", "Zeta", 4.0, 1, now),
		record("B", "Alpha", 3.0, 1, now),
	})

	artists := ByArtist(loaded)
	require.Equal(t, "Zeta", artists[0].Artist)
	require.Equal(t, "Alpha", artists[1].Artist)
}
