package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "giftrank",
		Short: "Score, rank and browse a gift catalogue by value for money",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(importCmd())
	root.AddCommand(listCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(serveCmd())

	return root
}

func importCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a corpus JSON file into the catalogue store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "corpus JSON file (default: from config)")
	return cmd
}

func listCmd() *cobra.Command {
	var opts listOpts

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Query the catalogue and print ranked rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "query a corpus JSON file directly, bypassing the store")
	cmd.Flags().StringVar(&opts.category, "category", "", "filter by exact category (\"all\" keeps everything)")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "filter by taxonomy tag id")
	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive substring over title and category")
	cmd.Flags().StringVar(&opts.maxPrice, "max-price", "", "price ceiling (non-numeric input is ignored)")
	cmd.Flags().StringVar(&opts.minRating, "min-rating", "", "stars floor (non-numeric input is ignored)")
	cmd.Flags().StringVar(&opts.sortKey, "sort", "", "sort key: title|category|price|stars|days|reviews|popularity|score|value|priority")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "sort descending")
	cmd.Flags().BoolVar(&opts.bestValue, "best-value", false, "quick sort by value descending (overrides --sort)")
	cmd.Flags().BoolVar(&opts.mostPopular, "most-popular", false, "quick sort by popularity descending (overrides --sort)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "max rows to print (0 = all)")
	return cmd
}

func statsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus aggregates and per-category counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
