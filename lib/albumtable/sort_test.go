package albumtable

import (
	"testing"
	"time"

	"albumboard/lib/scrapers/albumsgen"

	"github.com/stretchr/testify/require"
)

func sortFixture() Table {
	now := time.Now()
	return Build([]albumsgen.AlbumRecord{
		record("C", "X", 4.0, 1, now),
		record("A", "Y", 4.0, 3, now),
		record("B", "Z", 2.0, 2, now),
	})
}

func albumOrder(t Table) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row.Album)
	}
	return out
}

func TestSortByPrimary(t *testing.T) {
	sorted := sortFixture().SortBy(SortSpec{Column: ColumnVotes, Descending: true}, nil)
	require.Equal(t, []string{"A", "B", "C"}, albumOrder(sorted))
}

func TestSortByTiesKeepTableOrder(t *testing.T) {
	// C and A tie on rating, without a secondary spec they keep
	// their original relative order
	sorted := sortFixture().SortBy(SortSpec{Column: ColumnRating, Descending: true}, nil)
	require.Equal(t, []string{"C", "A", "B"}, albumOrder(sorted))
}

func TestSortBySecondaryBreaksTies(t *testing.T) {
	sorted := sortFixture().SortBy(
		SortSpec{Column: ColumnRating, Descending: true},
		&SortSpec{Column: ColumnAlbum},
	)
	require.Equal(t, []string{"A", "C", "B"}, albumOrder(sorted))
}

func TestSortByDoesNotMutate(t *testing.T) {
	loaded := sortFixture()
	loaded.SortBy(SortSpec{Column: ColumnAlbum}, nil)
	require.Equal(t, []string{"C", "A", "B"}, albumOrder(loaded))
}

func TestParseColumn(t *testing.T) {
	column, err := ParseColumn("Rating")
	require.NoError(t, err)
	require.Equal(t, ColumnRating, column)

	_, err = ParseColumn("listens")
	require.Error(t, err)
}
