package albumtable

import (
	"albumboard/lib/scrapers/albumsgen"

	"github.com/montanaflynn/stats"
)

// Row is one album record plus calendar fields derived once at build
// time. Calendar fields are zero when the record's date is unparsed,
// HasDate guards their use.
type Row struct {
	albumsgen.AlbumRecord
	Year   int `json:"year"`
	Month  int `json:"month"`
	Decade int `json:"decade"`
	// GroupStdDev is the older controversy definition: the sample
	// standard deviation of ratings across rows sharing an album name.
	// The site later started publishing its own controversy value,
	// which is what Controversy carries, so both stay available.
	GroupStdDev float64 `json:"group_stddev"`
}

// Table is an immutable snapshot of one scrape. Every operation on it
// returns a fresh Table, a loaded snapshot is only ever replaced
// wholesale.
type Table struct {
	Rows []Row
}

func Build(records []albumsgen.AlbumRecord) Table {
	ratingsByAlbum := map[string][]float64{}
	for _, record := range records {
		ratingsByAlbum[record.Album] = append(ratingsByAlbum[record.Album], record.Rating)
	}

	stddevByAlbum := map[string]float64{}
	for album, ratings := range ratingsByAlbum {
		if len(ratings) < 2 {
			continue
		}
		stddev, err := stats.StandardDeviationSample(ratings)
		if err != nil {
			continue
		}
		stddevByAlbum[album] = stddev
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := Row{
			AlbumRecord: record,
			GroupStdDev: stddevByAlbum[record.Album],
		}
		if record.HasDate() {
			row.Year = record.Date.Year()
			row.Month = int(record.Date.Month())
			row.Decade = (row.Year / 10) * 10
		}
		rows = append(rows, row)
	}
	return Table{Rows: rows}
}

func (t Table) Len() int {
	return len(t.Rows)
}
