package commands

import (
	"github.com/spf13/cobra"

	"reviewlens-backend/internal/api"
	"reviewlens-backend/lib/util/serviceutil"
	"reviewlens-backend/services/reviews"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the review analytics HTTP API.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		b := openBackend()
		defer b.sqlite.Close()

		port := b.config.Port
		if port == 0 {
			port = 8200
		}

		server := api.NewServer(api.ServerParams{
			Reviews:   b.reviews,
			Analytics: b.analytics,
			Keywords:  b.keywords,
			Reports:   b.reports,
			Registry:  reviews.NewRegistry(),
		})
		serviceutil.StartHttpServer(port, server)
	},
}
