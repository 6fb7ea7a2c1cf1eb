package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	keyFlag string
	rootCmd = &cobra.Command{
		Use:   "dayhubctl",
		Short: "CLI client for the dayhub REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Dayhub service base URL")
	rootCmd.PersistentFlags().StringVarP(&keyFlag, "key", "k", "sk_local_dayhub_dev_key", "API key")

	// search subcommand
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search across journal, tasks, calendar, emails and contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")
			types, _ := cmd.Flags().GetString("types")
			limit, _ := cmd.Flags().GetInt("limit")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			return runSearch(newClient(apiFlag, keyFlag), query, types, limit, from, to, os.Stdout)
		},
	}
	searchCmd.Flags().StringP("query", "q", "", "Search query text (required)")
	searchCmd.Flags().StringP("types", "t", "journal,tasks,calendar,emails,contacts", "Comma-separated record kinds")
	searchCmd.Flags().IntP("limit", "l", 20, "Maximum number of results")
	searchCmd.Flags().String("from", "", "Only records on or after this date (yyyy-MM-dd)")
	searchCmd.Flags().String("to", "", "Only records on or before this date (yyyy-MM-dd)")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)

	// metrics subcommand
	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "Fetch analytics metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, _ := cmd.Flags().GetString("types")
			granularity, _ := cmd.Flags().GetString("granularity")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			return runMetrics(newClient(apiFlag, keyFlag), types, granularity, from, to, os.Stdout)
		},
	}
	metricsCmd.Flags().StringP("types", "t", "", "Comma-separated metric categories (default all)")
	metricsCmd.Flags().StringP("granularity", "g", "day", "Bucket width: day, week or month")
	metricsCmd.Flags().String("from", "", "Range start (yyyy-MM-dd, default 30 days ago)")
	metricsCmd.Flags().String("to", "", "Range end (yyyy-MM-dd, default now)")
	rootCmd.AddCommand(metricsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
