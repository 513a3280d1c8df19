package albumtable

import (
	"testing"
	"time"

	"albumboard/lib/scrapers/albumsgen"

	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	now := time.Now()
	loaded := Build([]albumsgen.AlbumRecord{
		record("OK Computer", "Radiohead", 4.4, 10, now),
		record("Kid A", "Radiohead", 4.2, 8, now),
		record("Blue", "Joni Mitchell", 4.8, 7, now),
	})

	matches := Search(loaded, "radiohead", 10)
	require.NotEmpty(t, matches)
	require.Equal(t, "Radiohead", matches[0].Row.Artist)

	matches = Search(loaded, "ok computer", 1)
	require.Len(t, matches, 1)
	require.Equal(t, "OK Computer", matches[0].Row.Album)
}

func TestSearchEmptyQuery(t *testing.T) {
	loaded := twoRecordTable()
	require.Nil(t, Search(loaded, "  ", 10))
	require.Nil(t, Search(loaded, "something", 0))
}
