package commands

import (
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"reviewlens-backend/lib/util/serviceutil"
)

var keywordsBrand *string

func init() {
	keywordsBrand = keywordsCmd.PersistentFlags().String("brand", "", "Scope to one brand instead of the global keyword set.")
	keywordsCmd.AddCommand(keywordsGetCmd)
	keywordsCmd.AddCommand(keywordsSetCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(retagCmd)
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manages the keyword categories used to tag reviews.",
}

var keywordsGetCmd = &cobra.Command{
	Use:   "get [--brand <brand>]",
	Short: "Prints the configured keyword categories.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		b := openBackend()
		defer b.sqlite.Close()

		var (
			kws map[string][]string
			err error
		)
		if *keywordsBrand != "" {
			brand, rerr := b.reviews.ResolveBrand(cmd.Context(), *keywordsBrand)
			if rerr != nil {
				serviceutil.Fatal("failed to resolve brand", rerr)
			}
			kws, err = b.keywords.BrandKeywords(cmd.Context(), brand)
		} else {
			kws, err = b.keywords.GlobalKeywords(cmd.Context())
		}
		if err != nil {
			serviceutil.Fatal("failed to read keywords", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Category", "Keywords"})
		for category, words := range kws {
			t.AppendRow(table.Row{category, strings.Join(words, ", ")})
		}
		t.Render()
	},
}

var keywordsSetCmd = &cobra.Command{
	Use:   "set <category> <keyword>... [--brand <brand>]",
	Short: "Sets a keyword category, replacing its previous keyword list.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		b := openBackend()
		defer b.sqlite.Close()

		category, words := args[0], args[1:]

		var err error
		if *keywordsBrand != "" {
			brand, rerr := b.reviews.ResolveBrand(cmd.Context(), *keywordsBrand)
			if rerr != nil {
				serviceutil.Fatal("failed to resolve brand", rerr)
			}
			err = b.keywords.SetBrandCategory(cmd.Context(), brand, category, words)
		} else {
			err = b.keywords.SetGlobalCategory(cmd.Context(), category, words)
		}
		if err != nil {
			serviceutil.Fatal("failed to set keywords", err)
		}
	},
}

var retagBrand *string

func init() {
	retagBrand = retagCmd.Flags().String("brand", "", "Only re-tag this brand's stored reviews.")
}

var retagCmd = &cobra.Command{
	Use:   "retag <category> <keyword>... [--brand <brand>]",
	Short: "Re-tags stored reviews against a keyword list without re-crawling.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		b := openBackend()
		defer b.sqlite.Close()

		brand := ""
		if *retagBrand != "" {
			resolved, err := b.reviews.ResolveBrand(cmd.Context(), *retagBrand)
			if err != nil {
				serviceutil.Fatal("failed to resolve brand", err)
			}
			brand = resolved
		}

		updated, err := b.keywords.Retag(cmd.Context(), brand, args[0], args[1:])
		if err != nil {
			serviceutil.Fatal("failed to re-tag reviews", err)
		}
		slog.Info("re-tagged reviews", "updated", updated)
	},
}
