package albumtable

// Range is a closed interval, both bounds inclusive.
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Lo && v <= r.Hi
}

type Filter struct {
	Rating      Range `json:"rating"`
	Votes       Range `json:"votes"`
	Controversy Range `json:"controversy"`
}

func (f Filter) Matches(row Row) bool {
	return f.Rating.Contains(row.Rating) &&
		f.Votes.Contains(float64(row.Votes)) &&
		f.Controversy.Contains(row.Controversy)
}

// DefaultFilter spans the full observed range of the table, so
// applying it is a no-op until the user narrows something down. It is
// recomputed from scratch whenever new data loads.
func DefaultFilter(t Table) Filter {
	if len(t.Rows) == 0 {
		return Filter{}
	}

	first := t.Rows[0]
	f := Filter{
		Rating:      Range{first.Rating, first.Rating},
		Votes:       Range{float64(first.Votes), float64(first.Votes)},
		Controversy: Range{first.Controversy, first.Controversy},
	}
	for _, row := range t.Rows[1:] {
		f.Rating = f.Rating.widen(row.Rating)
		f.Votes = f.Votes.widen(float64(row.Votes))
		f.Controversy = f.Controversy.widen(row.Controversy)
	}
	return f
}

func (r Range) widen(v float64) Range {
	if v < r.Lo {
		r.Lo = v
	}
	if v > r.Hi {
		r.Hi = v
	}
	return r
}

// Apply returns the subsequence of rows matching the filter, in table
// order. The receiver is never mutated.
func (t Table) Apply(f Filter) Table {
	out := Table{Rows: []Row{}}
	for _, row := range t.Rows {
		if f.Matches(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
