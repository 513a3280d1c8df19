package albumtable

import (
	"testing"
	"time"

	"albumboard/lib/scrapers/albumsgen"

	"github.com/stretchr/testify/require"
)

func twoRecordTable() Table {
	now := time.Now()
	return Build([]albumsgen.AlbumRecord{
		record("A", "X", 4.0, 10, now),
		record("B", "Y", 2.0, 1, now),
	})
}

func TestApplyRatingRange(t *testing.T) {
	loaded := twoRecordTable()

	f := DefaultFilter(loaded)
	f.Rating = Range{3.0, 5.0}

	filtered := loaded.Apply(f)
	require.Len(t, filtered.Rows, 1)
	require.Equal(t, "A", filtered.Rows[0].Album)

	// the source table is untouched
	require.Len(t, loaded.Rows, 2)
}

func TestRangeBoundsAreInclusive(t *testing.T) {
	loaded := twoRecordTable()

	f := DefaultFilter(loaded)
	f.Rating = Range{2.0, 4.0}

	filtered := loaded.Apply(f)
	require.Len(t, filtered.Rows, 2)
}

func TestDefaultFilterIsIdentity(t *testing.T) {
	loaded := twoRecordTable()
	filtered := loaded.Apply(DefaultFilter(loaded))
	require.Equal(t, loaded.Rows, filtered.Rows)
}

func TestFilterIdempotent(t *testing.T) {
	loaded := twoRecordTable()

	f := DefaultFilter(loaded)
	f.Rating = Range{3.0, 5.0}

	once := loaded.Apply(f)
	twice := once.Apply(f)
	require.Equal(t, once.Rows, twice.Rows)
}

func TestFilterMonotonic(t *testing.T) {
	loaded := twoRecordTable()

	narrow := DefaultFilter(loaded)
	narrow.Rating = Range{3.0, 5.0}
	narrowed := loaded.Apply(narrow)

	wide := narrow
	wide.Rating = Range{1.0, 5.0}
	widened := loaded.Apply(wide)

	// widening a range never removes a previously included record
	for _, row := range narrowed.Rows {
		require.Contains(t, widened.Rows, row)
	}
}

func TestDefaultFilterSpansObservedRanges(t *testing.T) {
	loaded := twoRecordTable()
	f := DefaultFilter(loaded)

	require.Equal(t, Range{2.0, 4.0}, f.Rating)
	require.Equal(t, Range{1.0, 10.0}, f.Votes)
}

func TestFilterEmptyTable(t *testing.T) {
	empty := Build(nil)
	filtered := empty.Apply(DefaultFilter(empty))
	require.Empty(t, filtered.Rows)
}
