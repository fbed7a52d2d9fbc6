package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"reviewlens-backend/lib/util/serviceutil"
)

func init() {
	brandsCmd.AddCommand(brandsListCmd)
	brandsCmd.AddCommand(brandsAddCmd)
	brandsCmd.AddCommand(brandsRemoveCmd)
	rootCmd.AddCommand(brandsCmd)
}

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "Manages the brands the crawler knows about.",
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var brandsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists configured brands and their review counts.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		b := openBackend()
		defer b.sqlite.Close()

		brands, err := b.reviews.ListBrands(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list brands", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Brand", "Display Name", "Source URL", "Reviews"})
		for _, brand := range brands {
			count, err := b.reviews.CountReviews(cmd.Context(), brand.ID)
			if err != nil {
				serviceutil.Fatal("failed to count reviews", err)
			}
			t.AppendRow(table.Row{brand.ID, brand.DisplayName, brand.SourceUrl, count})
		}
		t.Render()
	},
}

var brandsAddCmd = &cobra.Command{
	Use:   "add <brand> <source-url>",
	Short: "Registers a brand with its review listing URL.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		b := openBackend()
		defer b.sqlite.Close()

		err := b.reviews.SetBrandSource(cmd.Context(), args[0], args[1], "")
		if err != nil {
			serviceutil.Fatal("failed to register brand", err)
		}
	},
}

var brandsRemoveCmd = &cobra.Command{
	Use:   "remove <brand>",
	Short: "Deletes a brand along with its reviews and keywords.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		b := openBackend()
		defer b.sqlite.Close()

		brand, err := b.reviews.ResolveBrand(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to resolve brand", err)
		}
		if err := b.reviews.DeleteBrand(cmd.Context(), brand); err != nil {
			serviceutil.Fatal("failed to delete brand", err)
		}
	},
}
