package commands

import (
	"fmt"
	"os"

	"albumboard/lib/albumtable"
	"albumboard/lib/scrapers/albumsgen"
	"albumboard/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var fetchFlags struct {
	url            string
	minRating      float64
	maxRating      float64
	minVotes       float64
	maxVotes       float64
	minControversy float64
	maxControversy float64
	sort           string
	order          string
	sort2          string
	order2         string
}

func init() {
	flags := fetchCmd.Flags()
	flags.StringVar(&fetchFlags.url, "url", "", "Group page URL (defaults to the configured group).")
	flags.Float64Var(&fetchFlags.minRating, "min-rating", 0, "Lower rating bound, inclusive.")
	flags.Float64Var(&fetchFlags.maxRating, "max-rating", 0, "Upper rating bound, inclusive.")
	flags.Float64Var(&fetchFlags.minVotes, "min-votes", 0, "Lower votes bound, inclusive.")
	flags.Float64Var(&fetchFlags.maxVotes, "max-votes", 0, "Upper votes bound, inclusive.")
	flags.Float64Var(&fetchFlags.minControversy, "min-controversy", 0, "Lower controversy bound, inclusive.")
	flags.Float64Var(&fetchFlags.maxControversy, "max-controversy", 0, "Upper controversy bound, inclusive.")
	flags.StringVar(&fetchFlags.sort, "sort", "rating", "Primary sort column: album, artist, rating, votes, controversy or date.")
	flags.StringVar(&fetchFlags.order, "order", "desc", "Primary sort direction: asc or desc.")
	flags.StringVar(&fetchFlags.sort2, "sort2", "", "Secondary sort column for breaking ties.")
	flags.StringVar(&fetchFlags.order2, "order2", "asc", "Secondary sort direction: asc or desc.")
	rootCmd.AddCommand(fetchCmd)
}

// filterFromFlags starts from the full observed range and narrows
// whichever bounds were set explicitly on the command line.
func filterFromFlags(cmd *cobra.Command, t albumtable.Table) albumtable.Filter {
	f := albumtable.DefaultFilter(t)
	flags := cmd.Flags()
	if flags.Changed("min-rating") {
		f.Rating.Lo = fetchFlags.minRating
	}
	if flags.Changed("max-rating") {
		f.Rating.Hi = fetchFlags.maxRating
	}
	if flags.Changed("min-votes") {
		f.Votes.Lo = fetchFlags.minVotes
	}
	if flags.Changed("max-votes") {
		f.Votes.Hi = fetchFlags.maxVotes
	}
	if flags.Changed("min-controversy") {
		f.Controversy.Lo = fetchFlags.minControversy
	}
	if flags.Changed("max-controversy") {
		f.Controversy.Hi = fetchFlags.maxControversy
	}
	return f
}

func sortFromFlags() (albumtable.SortSpec, *albumtable.SortSpec, error) {
	primaryColumn, err := albumtable.ParseColumn(fetchFlags.sort)
	if err != nil {
		return albumtable.SortSpec{}, nil, err
	}
	primary := albumtable.SortSpec{
		Column:     primaryColumn,
		Descending: fetchFlags.order == "desc",
	}

	if fetchFlags.sort2 == "" {
		return primary, nil, nil
	}
	secondaryColumn, err := albumtable.ParseColumn(fetchFlags.sort2)
	if err != nil {
		return albumtable.SortSpec{}, nil, err
	}
	return primary, &albumtable.SortSpec{
		Column:     secondaryColumn,
		Descending: fetchFlags.order2 == "desc",
	}, nil
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--url <group page>]",
	Short: "Scrapes a group page once and prints rankings and stats.",
	Run: func(cmd *cobra.Command, args []string) {
		groupURL := fetchFlags.url
		if groupURL == "" {
			groupURL = readConfig().GroupURL
		}

		client := albumsgen.NewClient()
		records, warnings, err := client.ScrapeGroup(cmd.Context(), groupURL)
		if err != nil {
			serviceutil.Fatal("failed to scrape group page", err)
		}
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warning:", w.String())
		}

		loaded := albumtable.Build(records)
		filtered := loaded.Apply(filterFromFlags(cmd, loaded))

		primary, secondary, err := sortFromFlags()
		if err != nil {
			serviceutil.Fatal("bad sort flags", err)
		}
		filtered = filtered.SortBy(primary, secondary)

		renderAlbums(filtered)
		renderOverview(filtered)
		renderArtists(filtered)
	},
}

func newStdoutTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func renderAlbums(t albumtable.Table) {
	out := newStdoutTable()
	out.AppendHeader(table.Row{"Album", "Artist", "Rating", "Votes", "Controversy", "Date"})
	for _, row := range t.Rows {
		date := ""
		if row.HasDate() {
			date = row.Date.Format("2006-01-02")
		}
		out.AppendRow(table.Row{
			row.Album,
			row.Artist,
			fmt.Sprintf("%.2f", row.Rating),
			row.Votes,
			fmt.Sprintf("%.2f", row.Controversy),
			date,
		})
	}
	out.Render()
}

func renderOverview(t albumtable.Table) {
	overview := albumtable.Summarize(t)
	fmt.Printf("\n%d albums, mean rating %.2f, %d votes\n",
		overview.Count, overview.MeanRating, overview.TotalVotes)
	if overview.Top != nil {
		fmt.Printf("highest rated: %s by %s (%.2f)\n",
			overview.Top.Album, overview.Top.Artist, overview.Top.Rating)
	}
	fmt.Println()
}

func renderArtists(t albumtable.Table) {
	out := newStdoutTable()
	out.AppendHeader(table.Row{"Artist", "Albums", "Avg Rating", "Votes"})
	for _, stat := range albumtable.ByArtist(t) {
		out.AppendRow(table.Row{
			stat.Artist,
			stat.Albums,
			fmt.Sprintf("%.2f", stat.MeanRating),
			stat.TotalVotes,
		})
	}
	out.Render()
}
