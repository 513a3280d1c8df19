package albumtable

import (
	"math"
	"testing"
	"time"

	"albumboard/lib/scrapers/albumsgen"

	"github.com/stretchr/testify/require"
)

func record(album, artist string, rating float64, votes int, date time.Time) albumsgen.AlbumRecord {
	return albumsgen.AlbumRecord{
		Album:  album,
		Artist: artist,
		Rating: rating,
		Votes:  votes,
		Date:   date,
	}
}

func TestBuildDerivedFields(t *testing.T) {
	loaded := Build([]albumsgen.AlbumRecord{
		record("A", "X", 4.0, 10, time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)),
		record("B", "Y", 2.0, 1, time.Date(1969, 11, 30, 0, 0, 0, 0, time.UTC)),
		record("C", "Z", 3.0, 5, time.Time{}),
	})

	require.Len(t, loaded.Rows, 3)

	require.Equal(t, 2023, loaded.Rows[0].Year)
	require.Equal(t, 1, loaded.Rows[0].Month)
	require.Equal(t, 2020, loaded.Rows[0].Decade)

	require.Equal(t, 1969, loaded.Rows[1].Year)
	require.Equal(t, 11, loaded.Rows[1].Month)
	require.Equal(t, 1960, loaded.Rows[1].Decade)

	// an unparsed date leaves the calendar fields zeroed
	require.False(t, loaded.Rows[2].HasDate())
	require.Equal(t, 0, loaded.Rows[2].Year)
	require.Equal(t, 0, loaded.Rows[2].Month)
	require.Equal(t, 0, loaded.Rows[2].Decade)
}

func TestBuildGroupStdDev(t *testing.T) {
	now := time.Now()
	loaded := Build([]albumsgen.AlbumRecord{
		record("Repeated", "X", 4.0, 1, now),
		record("Repeated", "X", 2.0, 1, now),
		record("Single", "Y", 3.0, 1, now),
	})

	// sample standard deviation of {4, 2}
	require.InDelta(t, math.Sqrt2, loaded.Rows[0].GroupStdDev, 1e-9)
	require.InDelta(t, math.Sqrt2, loaded.Rows[1].GroupStdDev, 1e-9)
	require.Equal(t, 0.0, loaded.Rows[2].GroupStdDev)
}

func TestBuildKeepsDuplicates(t *testing.T) {
	now := time.Now()
	loaded := Build([]albumsgen.AlbumRecord{
		record("Same", "X", 4.0, 1, now),
		record("Same", "X", 4.0, 1, now),
	})
	require.Equal(t, 2, loaded.Len())
}
