package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// create
	var telegramID int64
	var username string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if telegramID == 0 {
				return fmt.Errorf("--telegram-id required")
			}
			payload := map[string]interface{}{"telegramId": telegramID}
			if username != "" {
				payload["username"] = username
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/users", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().Int64VarP(&telegramID, "telegram-id", "t", 0, "Telegram user id (required)")
	createCmd.Flags().StringVarP(&username, "username", "u", "", "Display name")
	_ = createCmd.MarkFlagRequired("telegram-id")
	usersCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get TELEGRAM_ID",
		Short: "Get user by Telegram id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/users/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(getCmd)

	// resolve
	resolveCmd := &cobra.Command{
		Use:   "resolve USERNAME",
		Short: "Resolve a public username to a Telegram id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimPrefix(args[0], "@")
			data, err := doGet(fmt.Sprintf("%s/api/resolve-username/%s", apiFlag, username))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(resolveCmd)

	rootCmd.AddCommand(usersCmd)
}
