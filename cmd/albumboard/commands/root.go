package commands

import (
	"context"
	"fmt"
	"os"

	"albumboard/lib/configutil"
	"albumboard/lib/telemetry"
	"albumboard/services/reporter"

	"github.com/spf13/cobra"
)

// DefaultGroupURL is used when neither the config file nor the --url
// flag provides a group page.
const DefaultGroupURL = "https://1001albumsgenerator.com/groups/pompey-pixel-pals"

type Config struct {
	GroupURL string          `json:"group_url"`
	Port     int             `json:"port"`
	Reporter reporter.Config `json:"reporter"`
}

// readConfig loads config.json5, missing files just mean defaults.
func readConfig() Config {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "failed to read config:", err)
		os.Exit(1)
	}
	if config.GroupURL == "" {
		config.GroupURL = DefaultGroupURL
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	return config
}

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "albumboard",
	Short: "albumboard scrapes a 1001albumsgenerator group page and serves rating analytics.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
