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

var searchFlags struct {
	url   string
	limit int
}

func init() {
	searchCmd.Flags().StringVar(&searchFlags.url, "url", "", "Group page URL (defaults to the configured group).")
	searchCmd.Flags().IntVar(&searchFlags.limit, "limit", 10, "Maximum number of matches to print.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-searches the group's rated albums by album or artist name.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		groupURL := searchFlags.url
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

		matches := albumtable.Search(albumtable.Build(records), args[0], searchFlags.limit)

		out := newStdoutTable()
		out.AppendHeader(table.Row{"Album", "Artist", "Rating", "Score"})
		for _, match := range matches {
			out.AppendRow(table.Row{
				match.Row.Album,
				match.Row.Artist,
				fmt.Sprintf("%.2f", match.Row.Rating),
				fmt.Sprintf("%.3f", match.Score),
			})
		}
		out.Render()
	},
}
