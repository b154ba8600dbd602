package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	boardsCmd := &cobra.Command{Use: "boards", Short: "Board operations"}

	// list
	listCmd := &cobra.Command{
		Use:   "list TELEGRAM_ID",
		Short: "List a user's boards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/boards", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	boardsCmd.AddCommand(listCmd)

	// items
	itemsCmd := &cobra.Command{
		Use:   "items BOARD_ID",
		Short: "List items on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/boards/%s/items", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	boardsCmd.AddCommand(itemsCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete BOARD_ID",
		Short: "Delete a board (its items become unsorted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doDelete(fmt.Sprintf("%s/api/boards/%s", apiFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	boardsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(boardsCmd)
}
