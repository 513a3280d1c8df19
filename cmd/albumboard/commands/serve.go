package commands

import (
	"log/slog"

	"albumboard/lib/scrapers/albumsgen"
	"albumboard/lib/serviceutil"
	"albumboard/lib/telemetry"
	"albumboard/services/groupboard"
	"albumboard/services/reporter"

	"github.com/spf13/cobra"
)

var servePort *int

func init() {
	servePort = serveCmd.Flags().Int("port", 0, "Port to serve the API on (defaults to the configured port).")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--port <port>]",
	Short: "Serves the group's album table as a JSON API.",
	Run: func(cmd *cobra.Command, args []string) {
		config := readConfig()
		port := *servePort
		if port == 0 {
			port = config.Port
		}

		ctx := serviceutil.SignalContext()
		telemetry.InstrumentPerfStats(ctx)

		session := groupboard.NewSession(albumsgen.NewClient(), config.GroupURL)

		// the API stays up on a failed initial load, POST /refresh
		// retries it
		warnings, err := session.Refresh(ctx)
		if err != nil {
			slog.Error("initial scrape failed", "err", err)
		}
		for _, w := range warnings {
			slog.Warn("album row warning", "warning", w.String())
		}

		reporter.New(config.Reporter, session).Start(ctx)

		serviceutil.StartHttpServer(port, groupboard.NewRouter(session))
	},
}
