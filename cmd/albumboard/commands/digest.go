package commands

import (
	"fmt"

	"albumboard/lib/scrapers/albumsgen"
	"albumboard/lib/serviceutil"
	"albumboard/services/groupboard"
	"albumboard/services/reporter"

	"github.com/spf13/cobra"
)

var digestSend *bool

func init() {
	digestSend = digestCmd.Flags().Bool("send", false, "Email the digest to the configured recipients instead of printing it.")
	rootCmd.AddCommand(digestCmd)
}

var digestCmd = &cobra.Command{
	Use:   "digest [--send]",
	Short: "Renders the group's summary digest, optionally emailing it.",
	Run: func(cmd *cobra.Command, args []string) {
		config := readConfig()
		session := groupboard.NewSession(albumsgen.NewClient(), config.GroupURL)

		if *digestSend {
			err := reporter.New(config.Reporter, session).SendDigest(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to send digest", err)
			}
			return
		}

		_, err := session.Refresh(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to scrape group page", err)
		}
		fmt.Print(reporter.BuildDigest(session.GroupURL(), session.Table(), session.LastUpdated()))
	},
}
