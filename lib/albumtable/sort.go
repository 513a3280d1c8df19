package albumtable

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type Column string

const (
	ColumnAlbum       Column = "album"
	ColumnArtist      Column = "artist"
	ColumnRating      Column = "rating"
	ColumnVotes       Column = "votes"
	ColumnControversy Column = "controversy"
	ColumnDate        Column = "date"
)

func ParseColumn(s string) (Column, error) {
	switch Column(strings.ToLower(s)) {
	case ColumnAlbum, ColumnArtist, ColumnRating, ColumnVotes, ColumnControversy, ColumnDate:
		return Column(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

type SortSpec struct {
	Column     Column
	Descending bool
}

func (s SortSpec) compare(a, b Row) int {
	order := 1
	if s.Descending {
		order = -1
	}
	return order * compareColumn(a, b, s.Column)
}

func compareColumn(a, b Row, column Column) int {
	switch column {
	case ColumnAlbum:
		return strings.Compare(a.Album, b.Album)
	case ColumnArtist:
		return strings.Compare(a.Artist, b.Artist)
	case ColumnRating:
		return cmp.Compare(a.Rating, b.Rating)
	case ColumnVotes:
		return cmp.Compare(a.Votes, b.Votes)
	case ColumnControversy:
		return cmp.Compare(a.Controversy, b.Controversy)
	case ColumnDate:
		return a.Date.Compare(b.Date)
	}
	return 0
}

// SortBy orders rows by a primary column and optionally breaks ties
// with a secondary one. With no secondary spec, ties keep table order.
// The receiver is never mutated.
func (t Table) SortBy(primary SortSpec, secondary *SortSpec) Table {
	rows := slices.Clone(t.Rows)
	slices.SortStableFunc(rows, func(a, b Row) int {
		result := primary.compare(a, b)
		if result == 0 && secondary != nil {
			result = secondary.compare(a, b)
		}
		return result
	})
	return Table{Rows: rows}
}
