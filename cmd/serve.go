package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtrackr/subscan/api"
	"github.com/subtrackr/subscan/extractor/rules"
)

var (
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long:  `Starts the HTTP API server that accepts statement uploads and returns extracted candidates as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure logging for server mode
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		r, err := rules.FromViper()
		if err != nil {
			log.Fatalf("error: invalid rules config: %v", err)
		}

		cfg := api.DefaultConfig()
		if servePort != "" {
			cfg.Port = ":" + servePort
		}
		cfg.LogPrefix = "SERVER: "

		server := api.New(cfg, r)
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to run the API server on")
}
