package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"reviewlens-backend/lib/util/serviceutil"
	"reviewlens-backend/services/reviews"
)

var (
	scrapeMaxPages  *int
	scrapeStartPage *int
	scrapeNewBrand  *bool
)

func init() {
	scrapeMaxPages = scrapeCmd.Flags().Int("max-pages", 0, "Stop after this many listing pages (0 = no cap).")
	scrapeStartPage = scrapeCmd.Flags().Int("start-page", 1, "Listing page to resume from.")
	scrapeNewBrand = scrapeCmd.Flags().Bool("new", false, "First crawl of this brand: skip duplicate filtering.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <brand>",
	Short: "Crawls a brand's review listing and stores the new reviews.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		b := openBackend()
		defer b.sqlite.Close()

		brand, err := b.reviews.ResolveBrand(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to resolve brand", err)
		}

		t1 := time.Now()
		count, err := b.reviews.CrawlBrand(cmd.Context(), reviews.CrawlRequest{
			Brand:      brand,
			MaxPages:   *scrapeMaxPages,
			StartPage:  *scrapeStartPage,
			IsNewBrand: *scrapeNewBrand,
		})
		if err != nil {
			serviceutil.Fatal("crawl failed", err)
		}

		slog.Info("crawl finished",
			"brand", brand,
			"new_reviews", count,
			"seconds", time.Since(t1).Seconds())
	},
}
