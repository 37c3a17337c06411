// Command seed loads a YAML wheel catalog into the catalog database and runs
// fitment resolutions against a catalog file without a server.
//
//	go run ./cmd/seed seed --file catalog.yaml --migrate
//	go run ./cmd/seed resolve --file catalog.yaml --vehicle civic-2019 --axle front
//	go run ./cmd/seed token --email ops@rimsurge.test
package main

import (
	"os"

	"github.com/Mininormi/mininormi1210/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

var rootCmd = &cobra.Command{
	Use:           "seed",
	Short:         "RimSurge catalog seeder and fitment tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.InitLogger("seed")
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		config.Log.Error().Err(err).Msg("❌ " + rootCmd.Name() + " failed")
		os.Exit(1)
	}
}
