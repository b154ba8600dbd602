package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var query string
	searchCmd := &cobra.Command{
		Use:   "search TELEGRAM_ID",
		Short: "Search a user's items by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query required")
			}
			u := fmt.Sprintf("%s/api/users/%s/search?q=%s", apiFlag, args[0], url.QueryEscape(query))
			data, err := doGet(u)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	searchCmd.Flags().StringVarP(&query, "query", "q", "", "Search query text (required)")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)
}
